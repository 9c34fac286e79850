package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotwise/models"
	"slotwise/services/provider"
)

// ProviderHandler exposes provider account endpoints.
type ProviderHandler struct {
	Service provider.ProviderService
}

// NewProviderHandler constructs the handler with its injected service.
func NewProviderHandler(svc provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Service: svc}
}

func (h *ProviderHandler) RegisterProviderHandler(c *gin.Context) {
	logger := getLogger(c)

	var prov models.Provider
	if err := c.ShouldBindJSON(&prov); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	created, err := h.Service.Register(c.Request.Context(), prov)
	if err != nil {
		logger.Error("Failed to register provider", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to register provider", "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"provider": created})
}

func (h *ProviderHandler) AuthenticateProviderHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	resp, err := h.Service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, provider.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		logger.Error("Failed to authenticate provider", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetMeHandler returns the authenticated provider's profile.
func (h *ProviderHandler) GetMeHandler(c *gin.Context) {
	providerID, ok := providerFromContext(c)
	if !ok {
		return
	}

	prov, err := h.Service.GetByID(c.Request.Context(), providerID)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
			return
		}
		getLogger(c).Error("Failed to load provider", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load provider"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": prov})
}
