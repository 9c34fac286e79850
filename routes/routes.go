package routes

import (
	"net/http"
	"time"

	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProviderRoutes registers provider account endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.POST("/register", hb.RegisterProviderHandler)
		api.POST("/login", hb.AuthenticateProviderHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		api.GET("/me", hb.GetMeHandler)
	}
}

// RegisterAvailabilityRoutes registers schedule management and resolution endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))

		// Recurring and one-time availability windows.
		api.POST("", hb.CreateBaseHandler)
		api.GET("", hb.ListBasesHandler)
		api.PATCH("/:id", hb.UpdateBaseHandler)
		api.DELETE("/:id", hb.DeleteBaseHandler)

		// Exceptions carve unavailable gaps out of a specific window.
		api.POST("/:id/exceptions", hb.CreateExceptionHandler)
		api.DELETE("/:id/exceptions/:excID", hb.DeleteExceptionHandler)

		// Resolution queries.
		api.GET("/check", hb.CheckAvailabilityHandler)
		api.GET("/day", hb.GetDayAvailabilityHandler)
	}

	// Time off always wins over open windows.
	timeOff := r.Group("/api/timeoff")
	{
		timeOff.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		timeOff.POST("", hb.CreateTimeOffHandler)
		timeOff.GET("", hb.ListTimeOffHandler)
		timeOff.DELETE("/:id", hb.DeleteTimeOffHandler)
	}
}

// RegisterHealthRoute exposes the latest stored health snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Mongo || !status.Redis {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterProviderRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterHealthRoute(r)
}
