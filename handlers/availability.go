package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotwise/models"
	"slotwise/services/availability"
	"slotwise/utils"
)

// AvailabilityHandler exposes the availability engine over HTTP.
type AvailabilityHandler struct {
	Service availability.Service
}

// NewAvailabilityHandler constructs the handler with its injected service.
func NewAvailabilityHandler(svc availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// statusForError maps engine error kinds onto the API status contract:
// validation and conflict errors are the caller's fault (400), missing
// entities are 404, store failures are 500, and a blown store budget is 504.
func statusForError(err error) int {
	e := availability.AsError(err)
	if e == nil {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case availability.KindInvalidInput, availability.KindMalformedTime,
		availability.KindInvalidRange, availability.KindConflict:
		return http.StatusBadRequest
	case availability.KindNotFound:
		return http.StatusNotFound
	case availability.KindStoreUnavailable:
		if e.Timeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error, fallback string) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		getLogger(c).Error(fallback, zap.Error(err))
		utils.JSONError(c, status, fallback, "")
		return
	}
	utils.JSONError(c, status, err.Error(), "")
}

// providerFromContext reads the provider ID that the auth middleware stored.
func providerFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get("providerID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Provider not authenticated"})
		return "", false
	}
	providerID, ok := v.(string)
	if !ok || providerID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid provider ID in context"})
		return "", false
	}
	return providerID, true
}

// CreateBaseHandler inserts a new standing availability rule. Any of the
// three legacy payload shapes is accepted.
func (h *AvailabilityHandler) CreateBaseHandler(c *gin.Context) {
	providerID, ok := providerFromContext(c)
	if !ok {
		return
	}

	var in models.ScheduleRuleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	base, err := h.Service.CreateBase(c.Request.Context(), providerID, in)
	if err != nil {
		respondError(c, err, "Failed to create availability")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"availability": base})
}

func (h *AvailabilityHandler) ListBasesHandler(c *gin.Context) {
	providerID, ok := providerFromContext(c)
	if !ok {
		return
	}

	bases, err := h.Service.ListBases(c.Request.Context(), providerID)
	if err != nil {
		respondError(c, err, "Failed to list availability")
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": bases})
}

func (h *AvailabilityHandler) UpdateBaseHandler(c *gin.Context) {
	providerID, ok := providerFromContext(c)
	if !ok {
		return
	}
	baseID := c.Param("id")

	var in models.ScheduleRuleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	base, err := h.Service.UpdateBase(c.Request.Context(), providerID, baseID, in)
	if err != nil {
		respondError(c, err, "Failed to update availability")
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": base})
}

func (h *AvailabilityHandler) DeleteBaseHandler(c *gin.Context) {
	providerID, ok := providerFromContext(c)
	if !ok {
		return
	}
	baseID := c.Param("id")

	if err := h.Service.DeleteBase(c.Request.Context(), providerID, baseID); err != nil {
		respondError(c, err, "Failed to delete availability")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability deleted"})
}

func (h *AvailabilityHandler) CreateExceptionHandler(c *gin.Context) {
	providerID, ok := providerFromContext(c)
	if !ok {
		return
	}
	baseID := c.Param("id")

	var in models.ExceptionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	exc, err := h.Service.CreateException(c.Request.Context(), providerID, baseID, in)
	if err != nil {
		respondError(c, err, "Failed to create exception")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"exception": exc})
}

func (h *AvailabilityHandler) DeleteExceptionHandler(c *gin.Context) {
	providerID, ok := providerFromContext(c)
	if !ok {
		return
	}
	baseID := c.Param("id")
	excID := c.Param("excID")

	if err := h.Service.DeleteException(c.Request.Context(), providerID, baseID, excID); err != nil {
		respondError(c, err, "Failed to delete exception")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exception deleted"})
}

func (h *AvailabilityHandler) CreateTimeOffHandler(c *gin.Context) {
	providerID, ok := providerFromContext(c)
	if !ok {
		return
	}

	var in models.ScheduleRuleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	off, err := h.Service.CreateTimeOff(c.Request.Context(), providerID, in)
	if err != nil {
		respondError(c, err, "Failed to create time off")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"time_off": off})
}

func (h *AvailabilityHandler) ListTimeOffHandler(c *gin.Context) {
	providerID, ok := providerFromContext(c)
	if !ok {
		return
	}

	offs, err := h.Service.ListTimeOff(c.Request.Context(), providerID)
	if err != nil {
		respondError(c, err, "Failed to list time off")
		return
	}
	c.JSON(http.StatusOK, gin.H{"time_off": offs})
}

func (h *AvailabilityHandler) DeleteTimeOffHandler(c *gin.Context) {
	providerID, ok := providerFromContext(c)
	if !ok {
		return
	}
	timeOffID := c.Param("id")

	if err := h.Service.DeleteTimeOff(c.Request.Context(), providerID, timeOffID); err != nil {
		respondError(c, err, "Failed to delete time off")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time off deleted"})
}

// CheckAvailabilityHandler answers "is this provider free at instant T".
func (h *AvailabilityHandler) CheckAvailabilityHandler(c *gin.Context) {
	providerID, ok := providerFromContext(c)
	if !ok {
		return
	}

	at, err := time.Parse(time.RFC3339, c.Query("at"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid 'at' query parameter, want RFC3339"})
		return
	}

	open, err := h.Service.IsAvailable(c.Request.Context(), providerID, at)
	if err != nil {
		respondError(c, err, "Failed to check availability")
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": open, "at": at.Format(time.RFC3339)})
}

// GetDayAvailabilityHandler returns the merged open intervals for one day.
func (h *AvailabilityHandler) GetDayAvailabilityHandler(c *gin.Context) {
	providerID, ok := providerFromContext(c)
	if !ok {
		return
	}

	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid 'date' query parameter, want YYYY-MM-DD"})
		return
	}

	intervals, err := h.Service.GetDayAvailability(c.Request.Context(), providerID, day)
	if err != nil {
		respondError(c, err, "Failed to resolve day availability")
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": c.Query("date"), "intervals": intervals})
}
