// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"

	"slotwise/models"
)

// AvailabilityRepository is the store collaborator for availability rules.
// The resolution engine never talks to Mongo directly; it receives this
// interface so tests can inject an in-memory fake.
type AvailabilityRepository interface {
	ListBases(ctx context.Context, providerID string) ([]models.AvailabilityBase, error)
	GetBase(ctx context.Context, providerID, baseID string) (*models.AvailabilityBase, error)
	InsertBase(ctx context.Context, base *models.AvailabilityBase) error
	UpdateBase(ctx context.Context, base *models.AvailabilityBase) error
	DeleteBase(ctx context.Context, providerID, baseID string) error

	ListExceptions(ctx context.Context, baseID string) ([]models.AvailabilityException, error)
	ListExceptionsByProvider(ctx context.Context, providerID string) ([]models.AvailabilityException, error)
	InsertException(ctx context.Context, exc *models.AvailabilityException) error
	DeleteException(ctx context.Context, baseID, excID string) error
	DeleteExceptionsByBase(ctx context.Context, baseID string) error

	ListTimeOff(ctx context.Context, providerID string) ([]models.TimeOff, error)
	InsertTimeOff(ctx context.Context, off *models.TimeOff) error
	DeleteTimeOff(ctx context.Context, providerID, timeOffID string) error
	DeleteElapsedTimeOff(ctx context.Context, before string) (int64, error)
}
