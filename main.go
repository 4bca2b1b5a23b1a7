package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"locart/config"
	"locart/cron"
	"locart/database"
	bookingRepo "locart/database/repository/booking"
	catalogRepo "locart/database/repository/catalog"
	orderRepo "locart/database/repository/order"
	"locart/handlers"
	"locart/middleware"
	"locart/routes"
	"locart/services/booking"
	"locart/services/notification"
	"locart/services/payment"
	"locart/services/reconcile"
	"locart/services/scheduling"
	"locart/services/stylist"
	"locart/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	catalog := catalogRepo.NewMongoCatalogRepo()
	orders := orderRepo.NewMongoOrderRepo()

	// Services.
	notifier := notification.NewRecordNotifier(catalog)
	availability := scheduling.NewAvailabilityEngine(bookings, catalog)
	conflicts := scheduling.NewConflictValidator(bookings, catalog)
	gateway := payment.NewStripeGateway()
	bookingService := booking.NewBookingService(bookings, catalog, conflicts, gateway, notifier)
	stylistService := stylist.NewService(catalog, availability, notifier)
	listener := reconcile.NewListener(bookings, orders)

	// Background reminder worker.
	cron.InitReminderWorker(notifier)

	// Handlers and routes.
	routes.Register(router, &routes.Handlers{
		Auth:    handlers.NewAuthHandler(catalog),
		Booking: handlers.NewBookingHandler(bookingService),
		Stylist: handlers.NewStylistHandler(stylistService),
		Webhook: handlers.NewWebhookHandler(listener),
	})

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("Server forced to shutdown: %v", err)
	}
	logger.Info("Server exited")
}
