// File: vowflow/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vowflow/config"
	"vowflow/cron"
	"vowflow/database"
	blockedRepo "vowflow/database/repository/blocked"
	bookingRepo "vowflow/database/repository/booking"
	contractRepo "vowflow/database/repository/contract"
	deviceRepo "vowflow/database/repository/device"
	paymentRepo "vowflow/database/repository/payment"
	quoteRepo "vowflow/database/repository/quote"
	statelogRepo "vowflow/database/repository/statelog"
	taskRepo "vowflow/database/repository/task"
	workflowRepo "vowflow/database/repository/workflow"
	"vowflow/handlers"
	"vowflow/routes"
	"vowflow/services/notification"
	"vowflow/services/payment"
	"vowflow/services/workflow"
	"vowflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitWorkflowCache()
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	wfRepo := workflowRepo.NewMongoWorkflowRepo()
	logRepo := statelogRepo.NewMongoStateLogRepo()
	bkRepo := bookingRepo.NewMongoBookingRepo()
	qtRepo := quoteRepo.NewMongoQuoteRepo()
	ctRepo := contractRepo.NewMongoContractRepo()
	tkRepo := taskRepo.NewMongoTaskRepo()
	payRepo := paymentRepo.NewMongoPaymentRepo()
	blkRepo := blockedRepo.NewMongoBlockedRepo()
	devRepo := deviceRepo.NewMongoDeviceRepo()

	if err := wfRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure workflow indexes: %v", err)
	}
	if err := bkRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}
	if err := payRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure payment indexes: %v", err)
	}

	// Notification channel: push via FCM when credentials are configured,
	// log-only otherwise (local development).
	var notifier notification.Dispatcher
	if config.AppConfig.FirebaseCredentialsFile != "" {
		utils.FirebaseInit()
		fcm, err := notification.NewFCMDispatcher(devRepo)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize FCM dispatcher: %v", err)
		}
		notifier = fcm
	} else {
		notifier = &notification.LogDispatcher{}
	}

	reminderClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer reminderClient.Close()

	// services.
	engine := &workflow.DefaultWorkflowService{
		Workflows: wfRepo,
		StateLogs: logRepo,
		Bookings:  bkRepo,
		Quotes:    qtRepo,
		Contracts: ctRepo,
		Tasks:     tkRepo,
		Payments:  payRepo,
		Blocked:   blkRepo,

		Gateway:   payment.NewStripeGateway(),
		Notifier:  notifier,
		Reminders: workflow.NewAsynqReminderScheduler(reminderClient),
		Registry:  workflow.NewRegistry(utils.GetWorkflowCacheClient(), 10*time.Minute),

		Currency: config.AppConfig.Currency,
	}

	cron.InitReminderWorker(wfRepo, notifier)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Logger())

	workflowHandler := handlers.NewWorkflowHandler(engine, logger)
	webhookHandler := handlers.NewPaymentWebhookHandler(engine, logger)
	deviceHandler := handlers.NewDeviceHandler(devRepo)
	routes.RegisterRoutes(router, workflowHandler, webhookHandler, deviceHandler)

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
