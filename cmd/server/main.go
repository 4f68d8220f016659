package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	alertapp "github.com/flower8718/backend/internal/application/alert"
	backupapp "github.com/flower8718/backend/internal/application/backup"
	billingapp "github.com/flower8718/backend/internal/application/billing"
	catalogapp "github.com/flower8718/backend/internal/application/catalog"
	financeapp "github.com/flower8718/backend/internal/application/finance"
	importerapp "github.com/flower8718/backend/internal/application/importer"
	inventoryapp "github.com/flower8718/backend/internal/application/inventory"
	partnerapp "github.com/flower8718/backend/internal/application/partner"
	reportapp "github.com/flower8718/backend/internal/application/report"
	settingsapp "github.com/flower8718/backend/internal/application/settings"
	"github.com/flower8718/backend/internal/domain/shared"
	"github.com/flower8718/backend/internal/infrastructure/cache"
	"github.com/flower8718/backend/internal/infrastructure/config"
	"github.com/flower8718/backend/internal/infrastructure/logger"
	"github.com/flower8718/backend/internal/infrastructure/persistence"
	"github.com/flower8718/backend/internal/infrastructure/storage"
	"github.com/flower8718/backend/internal/interfaces/http/handler"
	"github.com/flower8718/backend/internal/interfaces/http/middleware"
	"github.com/flower8718/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Hana Flower System",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("driver", cfg.Database.Driver),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database ready")

	// Repositories
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	priceChangeRepo := persistence.NewGormPriceChangeRepository(db.DB)
	supplyRepo := persistence.NewGormSupplyRepository(db.DB)
	supplyPriceChangeRepo := persistence.NewGormSupplyPriceChangeRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)
	arrivalRepo := persistence.NewGormArrivalRepository(db.DB)
	transferRepo := persistence.NewGormTransferRepository(db.DB)
	supplyTransferRepo := persistence.NewGormSupplyTransferRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	alertRepo := persistence.NewGormAlertRepository(db.DB)
	settingRepo := persistence.NewGormSettingRepository(db.DB)
	taxRateRepo := persistence.NewGormTaxRateRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	tableExporter := persistence.NewGormTableExporter(db.DB)

	// Transaction scopes
	catalogScope := persistence.NewGormCatalogTransactionScope(db.DB)
	supplyScope := persistence.NewGormSupplyTransactionScope(db.DB)
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	billingScope := persistence.NewGormBillingTransactionScope(db.DB)
	importerScope := persistence.NewGormImporterTransactionScope(db.DB)

	// Application services
	settingsService := settingsapp.NewSettingsService(settingRepo)
	taxRateService := settingsapp.NewTaxRateService(taxRateRepo)
	storeService := partnerapp.NewStoreService(storeRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	itemService := catalogapp.NewItemService(itemRepo, priceChangeRepo, catalogScope)
	supplyService := catalogapp.NewSupplyService(supplyRepo, supplyPriceChangeRepo, supplyScope)
	inventoryService := inventoryapp.NewInventoryService(inventoryRepo, arrivalRepo, transferRepo, inventoryScope)
	invoiceService := billingapp.NewInvoiceService(
		storeRepo, transferRepo, supplyTransferRepo, itemRepo, supplyRepo,
		invoiceRepo, paymentRepo, settingsService, billingScope,
	)
	paymentService := billingapp.NewPaymentService(invoiceRepo, paymentRepo)
	expenseService := financeapp.NewExpenseService(expenseRepo)
	reportService := reportapp.NewReportService(reportRepo, expenseRepo)
	alertService := alertapp.NewAlertService(alertRepo)
	importService := importerapp.NewImportService(supplierRepo, itemRepo, importerScope, alertService)

	// Off-site archive storage is optional; without a bucket the
	// archives stay on the local disk.
	var archiveStorage backupapp.ArchiveStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ArchiveStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize archive storage", zap.Error(err))
		}
		archiveStorage = s3Storage
		log.Info("Archive upload enabled", zap.String("bucket", cfg.Storage.Bucket))
	}
	backupService := backupapp.NewBackupService(
		tableExporter, archiveStorage, settingsService,
		db.FilePath(), cfg.Backup.Dir, log,
	)

	// Idempotency store: Redis when configured, in-process otherwise
	var idempotencyStore shared.IdempotencyStore
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		idempotencyStore = redisStore
		log.Info("Idempotency keys backed by Redis", zap.String("addr", cfg.Redis.Addr()))
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Auth(middleware.AuthConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		SkipPaths: []string{
			"/api/v1/system/health",
			"/api/v1/system/info",
		},
	}))
	engine.Use(middleware.Idempotency(idempotencyStore))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(db)).
		Register(handler.NewStoreHandler(storeService)).
		Register(handler.NewSupplierHandler(supplierService)).
		Register(handler.NewItemHandler(itemService)).
		Register(handler.NewSupplyHandler(supplyService)).
		Register(handler.NewInventoryHandler(inventoryService, settingsService)).
		Register(handler.NewInvoiceHandler(invoiceService)).
		Register(handler.NewPaymentHandler(paymentService)).
		Register(handler.NewExpenseHandler(expenseService)).
		Register(handler.NewReportHandler(reportService)).
		Register(handler.NewSettingsHandler(settingsService, taxRateService)).
		Register(handler.NewAlertHandler(alertService)).
		Register(handler.NewImportHandler(importService)).
		Register(handler.NewBackupHandler(backupService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
