package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/job-portal/internal/models"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection("users")}
}

func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email"),
	}
	return ensureIndex(ctx, r.coll, model, "email")
}

// Upsert cria ou atualiza o perfil sem tocar no currículo já enviado.
func (r *UserRepository) Upsert(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	_, err := r.coll.UpdateByID(ctx, u.ID, bson.M{
		"$set": bson.M{
			"name":       u.Name,
			"email":      u.Email,
			"image":      u.Image,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{"resume": ""},
	}, options.Update().SetUpsert(true))
	return err
}

// Delete é idempotente: remover um usuário inexistente não é erro.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepository) GetMany(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.User](ctx, cur)
}

func (r *UserRepository) SetResume(ctx context.Context, id, ref string) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"resume": ref, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
