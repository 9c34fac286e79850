package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotwise/config"
	"slotwise/cron"
	"slotwise/database"
	availabilityRepo "slotwise/database/repository/availability"
	providerRepo "slotwise/database/repository/provider"
	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/routes"
	"slotwise/services/availability"
	"slotwise/services/provider"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()

	// services.
	providerService := &provider.DefaultProviderService{
		Repo: provRepo,
	}
	availabilityService := availability.NewService(availRepo, provRepo)

	providerHandler := handlers.NewProviderHandler(providerService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ProviderRepo: provRepo,

		RegisterProviderHandler:     providerHandler.RegisterProviderHandler,
		AuthenticateProviderHandler: providerHandler.AuthenticateProviderHandler,
		GetMeHandler:                providerHandler.GetMeHandler,

		CreateBaseHandler: availabilityHandler.CreateBaseHandler,
		ListBasesHandler:  availabilityHandler.ListBasesHandler,
		UpdateBaseHandler: availabilityHandler.UpdateBaseHandler,
		DeleteBaseHandler: availabilityHandler.DeleteBaseHandler,

		CreateExceptionHandler: availabilityHandler.CreateExceptionHandler,
		DeleteExceptionHandler: availabilityHandler.DeleteExceptionHandler,

		CreateTimeOffHandler: availabilityHandler.CreateTimeOffHandler,
		ListTimeOffHandler:   availabilityHandler.ListTimeOffHandler,
		DeleteTimeOffHandler: availabilityHandler.DeleteTimeOffHandler,

		CheckAvailabilityHandler:  availabilityHandler.CheckAvailabilityHandler,
		GetDayAvailabilityHandler: availabilityHandler.GetDayAvailabilityHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background workers and health monitoring.
	cron.InitPruneWorker(availRepo)
	utils.StartHealthMonitor(utils.GetAuthCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
