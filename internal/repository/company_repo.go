package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/job-portal/internal/models"
)

type CompanyRepository struct {
	coll *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{coll: db.Collection("companies")}
}

func (r *CompanyRepository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_email"),
	}
	return ensureIndex(ctx, r.coll, model, "uniq_email")
}

func (r *CompanyRepository) Create(ctx context.Context, c *models.Company) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now().UTC()
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		if isDuplicateKey(err) {
			return "", ErrDuplicate
		}
		return "", err
	}
	return c.ID, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	var c models.Company
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *CompanyRepository) GetByEmail(ctx context.Context, email string) (*models.Company, error) {
	var c models.Company
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&c); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// GetMany devolve as empresas encontradas; ids ausentes são simplesmente omitidos.
func (r *CompanyRepository) GetMany(ctx context.Context, ids []string) ([]models.Company, error) {
	if len(ids) == 0 {
		return []models.Company{}, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Company](ctx, cur)
}
