// File: database/repository/availability/crud.go
package availabilityRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slotwise/models"
)

func (r *mongoAvailabilityRepo) InsertBase(ctx context.Context, base *models.AvailabilityBase) error {
	ctx, cancel := withBudget(ctx)
	defer cancel()

	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	now := time.Now()
	base.CreatedAt = now
	base.UpdatedAt = now

	_, err := r.bases.InsertOne(ctx, base)
	return err
}

func (r *mongoAvailabilityRepo) UpdateBase(ctx context.Context, base *models.AvailabilityBase) error {
	ctx, cancel := withBudget(ctx)
	defer cancel()

	base.UpdatedAt = time.Now()
	filter := bson.M{"id": base.ID, "provider_id": base.ProviderID}
	res, err := r.bases.ReplaceOne(ctx, filter, base)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoAvailabilityRepo) DeleteBase(ctx context.Context, providerID, baseID string) error {
	ctx, cancel := withBudget(ctx)
	defer cancel()

	filter := bson.M{"id": baseID, "provider_id": providerID}
	res, err := r.bases.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoAvailabilityRepo) InsertException(ctx context.Context, exc *models.AvailabilityException) error {
	ctx, cancel := withBudget(ctx)
	defer cancel()

	if exc.ID == "" {
		exc.ID = uuid.New().String()
	}
	exc.CreatedAt = time.Now()

	_, err := r.exceptions.InsertOne(ctx, exc)
	return err
}

func (r *mongoAvailabilityRepo) DeleteException(ctx context.Context, baseID, excID string) error {
	ctx, cancel := withBudget(ctx)
	defer cancel()

	filter := bson.M{"id": excID, "base_id": baseID}
	res, err := r.exceptions.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteExceptionsByBase removes every exception owned by a base. Called when
// the base itself is deleted; exceptions never outlive their base.
func (r *mongoAvailabilityRepo) DeleteExceptionsByBase(ctx context.Context, baseID string) error {
	ctx, cancel := withBudget(ctx)
	defer cancel()

	_, err := r.exceptions.DeleteMany(ctx, bson.M{"base_id": baseID})
	return err
}

func (r *mongoAvailabilityRepo) InsertTimeOff(ctx context.Context, off *models.TimeOff) error {
	ctx, cancel := withBudget(ctx)
	defer cancel()

	if off.ID == "" {
		off.ID = uuid.New().String()
	}
	off.CreatedAt = time.Now()

	_, err := r.timeOff.InsertOne(ctx, off)
	return err
}

func (r *mongoAvailabilityRepo) DeleteTimeOff(ctx context.Context, providerID, timeOffID string) error {
	ctx, cancel := withBudget(ctx)
	defer cancel()

	filter := bson.M{"id": timeOffID, "provider_id": providerID}
	res, err := r.timeOff.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteElapsedTimeOff prunes one-time time-off entries whose date range
// ended before the given date. Recurring entries carry no end_date and are
// never touched.
func (r *mongoAvailabilityRepo) DeleteElapsedTimeOff(ctx context.Context, before string) (int64, error) {
	ctx, cancel := withBudget(ctx)
	defer cancel()

	filter := bson.M{
		"recurrence": bson.M{"$in": bson.A{nil, ""}},
		"end_date":   bson.M{"$gt": "", "$lt": before},
	}
	res, err := r.timeOff.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
