package models

import "time"

// Provider is a service provider account. All availability rules hang off a
// provider by ID. Wall-clock comparisons assume the provider's single time
// zone; the engine itself never converts between zones.
type Provider struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Password     string    `bson:"-" json:"password,omitempty"` // plain text, request only
	PasswordHash string    `bson:"password_hash" json:"-"`
	TokenHash    string    `bson:"token_hash,omitempty" json:"-"`
	Timezone     string    `bson:"timezone,omitempty" json:"timezone,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// AuthRequest is the login payload.
type AuthRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the signed session token back to the client.
type AuthResponse struct {
	Provider Provider `json:"provider"`
	Token    string   `json:"token"`
}
