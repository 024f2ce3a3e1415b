package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

// orderedID gera ids que ordenam como a inserção (ObjectID em hex: segundos +
// contador do processo). Vagas e candidaturas são listadas ordenando por _id.
func orderedID() string {
	return primitive.NewObjectID().Hex()
}

func isDuplicateKey(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	return false
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// ensureIndex cria o índice; se já existir com outras opções, dropa e recria.
func ensureIndex(ctx context.Context, coll *mongo.Collection, model mongo.IndexModel, name string) error {
	_, err := coll.Indexes().CreateOne(ctx, model)
	if err == nil {
		return nil
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 85 { // IndexOptionsConflict
		if _, dropErr := coll.Indexes().DropOne(ctx, name); dropErr != nil {
			return fmt.Errorf("drop index %s: %w", name, dropErr)
		}
		_, createErr := coll.Indexes().CreateOne(ctx, model)
		return createErr
	}
	return fmt.Errorf("create index %s: %w", name, err)
}

func decodeAll[T any](ctx context.Context, cur *mongo.Cursor) ([]T, error) {
	defer cur.Close(ctx)

	list := []T{}
	for cur.Next(ctx) {
		var v T
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, cur.Err()
}

// EnsureIndexes cria os índices de todas as coleções.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return errors.Join(
		NewCompanyRepository(db).EnsureIndexes(ctx),
		NewJobRepository(db).EnsureIndexes(ctx),
		NewApplicationRepository(db).EnsureIndexes(ctx),
		NewUserRepository(db).EnsureIndexes(ctx),
	)
}
