// File: database/repository/availability/mongo.go
package availabilityRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"slotwise/database"
	"slotwise/utils"
)

// storeTimeout is the per-call budget for every store operation. A call that
// blows this budget surfaces as a deadline error, which the service layer
// treats as "conflict status unknown" — never as "no conflict".
const storeTimeout = 8 * time.Second

type mongoAvailabilityRepo struct {
	bases      *mongo.Collection
	exceptions *mongo.Collection
	timeOff    *mongo.Collection
}

// NewMongoAvailabilityRepo constructs the MongoDB-backed AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.MongoClient.Database("slotwise")
	repo := &mongoAvailabilityRepo{
		bases:      db.Collection("availability_bases"),
		exceptions: db.Collection("availability_exceptions"),
		timeOff:    db.Collection("time_off"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("availability repo: failed to ensure indexes", zap.Error(err))
	}
	return repo
}

func withBudget(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}
