// File: app/app.go
package app

import (
	"context"
	"go-bank-ledger/config"
	"go-bank-ledger/db"
	"go-bank-ledger/handler"
	"go-bank-ledger/logger"
	"go-bank-ledger/repository"
	"go-bank-ledger/router"
	"go-bank-ledger/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	maxTxnLimit, err := decimal.NewFromString(config.AppConfig.Bank.MaxTxnLimit)
	if err != nil {
		logger.Log.Fatalf("Invalid max_txn_limit in config: %v", err)
	}

	// --- Wiring All Layers Together ---
	// Repositories own the durable state, the cache mirrors every account
	// in memory, and the services orchestrate the two.

	accountRepo := repository.NewAccountRepository(database)
	transactionRepo := repository.NewTransactionRepository(database)
	txManager := repository.NewTxManager(database)

	accountCache := service.NewAccountCache()
	if err := accountCache.Load(accountRepo); err != nil {
		logger.Log.Fatalf("Error loading accounts into cache: %v", err)
	}

	emailSender := service.NewFileEmailSender(config.AppConfig.Bank.EmailLogFile)
	alertService := service.NewAlertService(accountCache, emailSender)
	// Catch accounts that were already below their threshold before startup.
	alertService.CheckAllAccounts()

	accountService := service.NewAccountService(accountRepo, accountCache)
	transactionService := service.NewTransactionService(
		txManager, accountRepo, transactionRepo, accountCache,
		alertService, redisClient, maxTxnLimit,
	)
	reportingService := service.NewReportingService(accountCache, transactionRepo, redisClient, config.AppConfig.Bank.ReportsDir)

	accountHandler := handler.NewAccountHandler(accountService)
	transactionHandler := handler.NewTransactionHandler(transactionService, reportingService)
	reportHandler := handler.NewReportHandler(reportingService)

	r := router.NewRouter(accountHandler, transactionHandler, reportHandler)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
