package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	providerRepo "slotwise/database/repository/provider"
	"slotwise/models"
	"slotwise/utils"
)

const tokenDuration = 72 * time.Hour

// ErrInvalidCredentials is returned when email or password do not match.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrNotFound is returned when the requested provider does not exist.
var ErrNotFound = errors.New("provider not found")

// ProviderService defines the business logic for provider accounts.
type ProviderService interface {
	// Register creates a new provider record with a hashed password.
	Register(ctx context.Context, provider models.Provider) (*models.Provider, error)
	// Authenticate verifies credentials and returns the provider with a
	// fresh session token.
	Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error)
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, providerID string) (*models.Provider, error)
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo providerRepo.ProviderRepository
}

func (s *DefaultProviderService) Register(ctx context.Context, provider models.Provider) (*models.Provider, error) {
	if provider.Email == "" || provider.Name == "" {
		return nil, fmt.Errorf("provider email and name are required")
	}
	if provider.Password == "" {
		return nil, fmt.Errorf("provider password is required")
	}

	existing, err := s.Repo.GetByEmail(ctx, provider.Email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check for existing provider: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("provider with email %s already exists", provider.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(provider.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	provider.PasswordHash = string(hashed)
	provider.Password = ""

	if err := s.Repo.Insert(ctx, &provider); err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}
	return &provider, nil
}

func (s *DefaultProviderService) Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	prov, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(prov.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(prov.ID, prov.Email, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	// The stored hash lets the auth middleware reject revoked tokens.
	if err := s.Repo.UpdateTokenHash(ctx, prov.ID, utils.HashToken(token)); err != nil {
		return nil, fmt.Errorf("failed to persist token hash: %w", err)
	}

	prov.PasswordHash = ""
	return &models.AuthResponse{Provider: *prov, Token: token}, nil
}

func (s *DefaultProviderService) GetByID(ctx context.Context, providerID string) (*models.Provider, error) {
	prov, err := s.Repo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}
	prov.PasswordHash = ""
	return prov, nil
}
