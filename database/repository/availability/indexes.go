// File: database/repository/availability/indexes.go
package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes backing the engine's query patterns:
// everything is fetched per provider (or per base for exceptions) on each
// resolution or conflict check.
func (r *mongoAvailabilityRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	baseIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}},
			Options: options.Index().SetName("provider_idx"),
		},
	}
	if _, err := r.bases.Indexes().CreateMany(ctx, baseIndexes); err != nil {
		return fmt.Errorf("failed to create base indexes: %w", err)
	}

	excIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "base_id", Value: 1}},
			Options: options.Index().SetName("base_idx"),
		},
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}},
			Options: options.Index().SetName("provider_idx"),
		},
	}
	if _, err := r.exceptions.Indexes().CreateMany(ctx, excIndexes); err != nil {
		return fmt.Errorf("failed to create exception indexes: %w", err)
	}

	timeOffIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}},
			Options: options.Index().SetName("provider_idx"),
		},
	}
	if _, err := r.timeOff.Indexes().CreateMany(ctx, timeOffIndexes); err != nil {
		return fmt.Errorf("failed to create time-off indexes: %w", err)
	}

	return nil
}
