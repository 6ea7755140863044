// File: lendvault/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lendvault/config"
	"lendvault/cron"
	"lendvault/database"
	billingRepoPkg "lendvault/database/repository/billing"
	userRepoPkg "lendvault/database/repository/user"
	vaultRepoPkg "lendvault/database/repository/vault"
	"lendvault/handlers"
	"lendvault/middleware"
	"lendvault/routes"
	"lendvault/services/billing"
	"lendvault/services/crm"
	"lendvault/services/notification"
	"lendvault/services/tasks"
	"lendvault/services/user"
	"lendvault/services/vault"
	"lendvault/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	requirementRepo := vaultRepoPkg.NewMongoRequirementRepo()
	documentRepo := vaultRepoPkg.NewMongoClientDocumentRepo()
	invoiceRepo := billingRepoPkg.NewMongoInvoiceRepo()

	// outbound clients.
	crmClient := crm.NewRESTClient(config.AppConfig.CRMBaseURL, config.AppConfig.CRMAPIKey)
	dispatcher := tasks.NewAsynqDispatcher(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	pushService := notification.NewFCMPushService()

	// services.
	userService := &user.DefaultUserService{
		Repo:       userRepo,
		CRM:        crmClient,
		Dispatcher: dispatcher,
	}

	vaultService := &vault.DefaultVaultService{
		Requirements: requirementRepo,
		Documents:    documentRepo,
		Storage:      cloudinaryStorageService,
		Dispatcher:   dispatcher,
	}

	billingService := &billing.DefaultBillingService{
		Invoices: invoiceRepo,
		Users:    userService,
	}

	handlers.InitHandlers(userService, vaultService, billingService)
	webhookHandler := handlers.NewCRMWebhookHandler(userRepo, vaultService)

	// Seed the fixed core requirement set on first boot.
	if err := vaultService.EnsureCoreRequirements(); err != nil {
		logger.Sugar().Fatalf("main: failed to seed core requirements: %v", err)
	}

	// Register routes.
	routes.RegisterRoutes(router, userRepo, webhookHandler)

	// Start the async side-call worker.
	cron.InitTaskWorker(userRepo, crmClient, pushService)

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
