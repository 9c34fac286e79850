package handlers

import (
	providerRepo "slotwise/database/repository/provider"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all route handlers and the repositories the
// auth middleware needs, so route registration takes a single value.
type HandlerBundle struct {
	ProviderRepo providerRepo.ProviderRepository

	// Provider account endpoints.
	RegisterProviderHandler     gin.HandlerFunc
	AuthenticateProviderHandler gin.HandlerFunc
	GetMeHandler                gin.HandlerFunc

	// Availability rule endpoints.
	CreateBaseHandler gin.HandlerFunc
	ListBasesHandler  gin.HandlerFunc
	UpdateBaseHandler gin.HandlerFunc
	DeleteBaseHandler gin.HandlerFunc

	// Exception endpoints.
	CreateExceptionHandler gin.HandlerFunc
	DeleteExceptionHandler gin.HandlerFunc

	// Time off endpoints.
	CreateTimeOffHandler gin.HandlerFunc
	ListTimeOffHandler   gin.HandlerFunc
	DeleteTimeOffHandler gin.HandlerFunc

	// Resolution endpoints.
	CheckAvailabilityHandler  gin.HandlerFunc
	GetDayAvailabilityHandler gin.HandlerFunc
}
