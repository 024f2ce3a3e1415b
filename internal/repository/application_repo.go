package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/job-portal/internal/models"
)

type ApplicationRepository struct {
	coll *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{coll: db.Collection("applications")}
}

func (r *ApplicationRepository) EnsureIndexes(ctx context.Context) error {
	uniq := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "job_id", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_user_job"),
	}
	byCompany := mongo.IndexModel{
		Keys:    bson.D{{Key: "company_id", Value: 1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("company_order"),
	}
	if err := ensureIndex(ctx, r.coll, uniq, "uniq_user_job"); err != nil {
		return err
	}
	return ensureIndex(ctx, r.coll, byCompany, "company_order")
}

// Create grava a candidatura; o índice único (user_id, job_id) devolve ErrDuplicate.
func (r *ApplicationRepository) Create(ctx context.Context, a *models.Application) (string, error) {
	if a.ID == "" {
		a.ID = orderedID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		if isDuplicateKey(err) {
			return "", ErrDuplicate
		}
		return "", err
	}
	return a.ID, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var a models.Application
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *ApplicationRepository) Exists(ctx context.Context, userID, jobID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID, "job_id": jobID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ApplicationRepository) ListByUser(ctx context.Context, userID string) ([]models.Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Application](ctx, cur)
}

func (r *ApplicationRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"company_id": companyID}, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Application](ctx, cur)
}

// CountByJob agrega o número de candidaturas por vaga de uma empresa.
func (r *ApplicationRepository) CountByJob(ctx context.Context, companyID string) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "company_id", Value: companyID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$job_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	type row struct {
		JobID string `bson:"_id"`
		Count int    `bson:"count"`
	}
	rows, err := decodeAll[row](ctx, cur)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, it := range rows {
		out[it.JobID] = it.Count
	}
	return out, nil
}

// UpdateStatus só altera se o status atual ainda for `from` (compare-and-swap).
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, from, to models.ApplicationStatus) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
