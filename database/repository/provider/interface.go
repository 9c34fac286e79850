// File: database/repository/provider/interface.go
package providerRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"slotwise/models"
)

// ProviderRepository is the store collaborator for provider accounts.
type ProviderRepository interface {
	Insert(ctx context.Context, provider *models.Provider) error
	GetByID(ctx context.Context, providerID string) (*models.Provider, error)
	GetByEmail(ctx context.Context, email string) (*models.Provider, error)
	// GetByIDWithProjection fetches only the requested fields; the auth
	// middleware uses it to avoid pulling full documents on every request.
	GetByIDWithProjection(ctx context.Context, providerID string, projection bson.M) (*models.Provider, error)
	UpdateTokenHash(ctx context.Context, providerID, tokenHash string) error
}
