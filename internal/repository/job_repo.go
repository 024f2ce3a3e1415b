package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/job-portal/internal/models"
)

type JobRepository struct {
	coll *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{coll: db.Collection("jobs")}
}

func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	byCompany := mongo.IndexModel{
		Keys:    bson.D{{Key: "company_id", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("company_order"),
	}
	byVisible := mongo.IndexModel{
		Keys:    bson.D{{Key: "visible", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("visible_order"),
	}
	if err := ensureIndex(ctx, r.coll, byCompany, "company_order"); err != nil {
		return err
	}
	return ensureIndex(ctx, r.coll, byVisible, "visible_order")
}

func (r *JobRepository) Create(ctx context.Context, j *models.Job) (string, error) {
	if j.ID == "" {
		j.ID = orderedID()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, j); err != nil {
		if isDuplicateKey(err) {
			return "", ErrDuplicate
		}
		return "", err
	}
	return j.ID, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&j); err != nil {
		return nil, notFound(err)
	}
	return &j, nil
}

func (r *JobRepository) GetMany(ctx context.Context, ids []string) ([]models.Job, error) {
	if len(ids) == 0 {
		return []models.Job{}, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Job](ctx, cur)
}

// ListVisible devolve as vagas visíveis em ordem de inserção (mais antiga primeiro).
// created_at tem precisão de milissegundo, por isso a ordem vem do _id.
func (r *JobRepository) ListVisible(ctx context.Context) ([]models.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"visible": true}, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Job](ctx, cur)
}

func (r *JobRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"company_id": companyID}, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Job](ctx, cur)
}

// ToggleVisibility inverte o flag numa única operação condicionada ao dono.
// Se nenhum documento casar, devolve ErrNotFound (vaga inexistente ou de outra empresa).
func (r *JobRepository) ToggleVisibility(ctx context.Context, jobID, companyID string) (*models.Job, error) {
	filter := bson.M{"_id": jobID, "company_id": companyID}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "visible", Value: bson.D{{Key: "$not", Value: bson.A{"$visible"}}}}}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var j models.Job
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&j); err != nil {
		return nil, notFound(err)
	}
	return &j, nil
}
