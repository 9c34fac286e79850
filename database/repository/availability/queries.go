// File: database/repository/availability/queries.go
package availabilityRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"slotwise/models"
)

func (r *mongoAvailabilityRepo) ListBases(ctx context.Context, providerID string) ([]models.AvailabilityBase, error) {
	ctx, cancel := withBudget(ctx)
	defer cancel()

	cursor, err := r.bases.Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bases []models.AvailabilityBase
	if err := cursor.All(ctx, &bases); err != nil {
		return nil, err
	}
	return bases, nil
}

func (r *mongoAvailabilityRepo) GetBase(ctx context.Context, providerID, baseID string) (*models.AvailabilityBase, error) {
	ctx, cancel := withBudget(ctx)
	defer cancel()

	var base models.AvailabilityBase
	filter := bson.M{"id": baseID, "provider_id": providerID}
	if err := r.bases.FindOne(ctx, filter).Decode(&base); err != nil {
		return nil, err
	}
	return &base, nil
}

func (r *mongoAvailabilityRepo) ListExceptions(ctx context.Context, baseID string) ([]models.AvailabilityException, error) {
	ctx, cancel := withBudget(ctx)
	defer cancel()

	cursor, err := r.exceptions.Find(ctx, bson.M{"base_id": baseID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var excs []models.AvailabilityException
	if err := cursor.All(ctx, &excs); err != nil {
		return nil, err
	}
	return excs, nil
}

func (r *mongoAvailabilityRepo) ListExceptionsByProvider(ctx context.Context, providerID string) ([]models.AvailabilityException, error) {
	ctx, cancel := withBudget(ctx)
	defer cancel()

	cursor, err := r.exceptions.Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var excs []models.AvailabilityException
	if err := cursor.All(ctx, &excs); err != nil {
		return nil, err
	}
	return excs, nil
}

func (r *mongoAvailabilityRepo) ListTimeOff(ctx context.Context, providerID string) ([]models.TimeOff, error) {
	ctx, cancel := withBudget(ctx)
	defer cancel()

	cursor, err := r.timeOff.Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var offs []models.TimeOff
	if err := cursor.All(ctx, &offs); err != nil {
		return nil, err
	}
	return offs, nil
}
