// File: database/repository/provider/mongo.go
package providerRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotwise/database"
	"slotwise/models"
)

const storeTimeout = 8 * time.Second

type mongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo constructs the MongoDB-backed ProviderRepository.
func NewMongoProviderRepo() ProviderRepository {
	db := database.MongoClient.Database("slotwise")
	return &mongoProviderRepo{coll: db.Collection("providers")}
}

func (r *mongoProviderRepo) Insert(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	now := time.Now()
	provider.CreatedAt = now
	provider.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, provider)
	return err
}

func (r *mongoProviderRepo) GetByID(ctx context.Context, providerID string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var provider models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"id": providerID}).Decode(&provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *mongoProviderRepo) GetByEmail(ctx context.Context, email string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var provider models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *mongoProviderRepo) GetByIDWithProjection(ctx context.Context, providerID string, projection bson.M) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	opts := options.FindOne().SetProjection(projection)
	var provider models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"id": providerID}, opts).Decode(&provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *mongoProviderRepo) UpdateTokenHash(ctx context.Context, providerID, tokenHash string) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"token_hash": tokenHash, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": providerID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
