package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	inventoryapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/inventory"
	invoiceapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/invoice"
	ledgerapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/ledger"
	partnerapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/partner"
	reportapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/report"
	tradeapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/trade"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/auth"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/cache"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/config"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/event"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/logger"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/storage"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/telemetry"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/interfaces/http/handler"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/interfaces/http/middleware"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logCfg := &logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}

	// The OTLP log exporter reports its own setup through a plain logger; the
	// application logger is rebuilt with the exporter core once it exists.
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	logProvider, err := telemetry.NewLoggerProvider(ctx, &cfg.Telemetry, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	log, err := logger.New(logCfg, logProvider.Core(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting GST ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("seller_state", cfg.App.SellerStateCode),
	)

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, &cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, &cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(&cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Database
	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, &cfg.Telemetry, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	dbMetrics, err := telemetry.RegisterDBMetrics(ctx, db.DB, meterProvider, &cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}

	// Repositories
	entityRepo := persistence.NewGormBusinessEntityRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	reportSource := persistence.NewGormReportSource(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Idempotency keys live in Redis when it is configured
	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	// Report snapshots
	var snapshots reportapp.SnapshotStore = storage.NewMemorySnapshotStore()
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3SnapshotStore(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to create snapshot store", zap.Error(err))
		}
		if err := s3Store.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare snapshot bucket", zap.Error(err))
		}
		snapshots = s3Store
		log.Info("Report snapshots stored in object storage", zap.String("bucket", cfg.Storage.Bucket))
	}

	// Domain events
	eventBus := event.NewInMemoryEventBus(log)
	stockSkipped := inventoryapp.NewStockSkippedHandler(log).
		WithNotifier(inventoryapp.NewLoggingStockAlertNotifier(log))
	eventBus.Subscribe(stockSkipped, stockSkipped.EventTypes()...)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Business metrics
	var businessMetrics *telemetry.BusinessMetrics
	if meterProvider.IsEnabled() {
		businessMetrics, err = telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:           meterProvider.Meter("gst-ledger"),
			Logger:          log,
			CollectInterval: cfg.Telemetry.MetricsInterval,
			StockProvider:   telemetry.NewGormStockMetricsProvider(db.DB),
		})
		if err != nil {
			log.Fatal("Failed to create business metrics", zap.Error(err))
		}
		businessMetrics.StartPeriodicCollection(ctx, telemetry.NewGormTenantProvider(db.DB), cfg.Telemetry.MetricsInterval)
	}

	// Services
	entityService := partnerapp.NewEntityService(entityRepo, log)

	productService := inventoryapp.NewProductService(productRepo, log)
	productService.SetEventPublisher(eventBus)

	invoiceService := invoiceapp.NewInvoiceService(invoiceRepo, entityRepo, txScope.ForInvoices(), cfg.App.SellerStateCode, log)
	invoiceService.SetEventPublisher(eventBus)
	invoiceService.SetIdempotencyStore(idempotencyStore, cfg.Redis.IdempotencyTTL)

	orderService := tradeapp.NewPurchaseOrderService(orderRepo, entityRepo, txScope.ForPurchaseOrders(), cfg.App.SellerStateCode, log)
	orderService.SetEventPublisher(eventBus)

	ledgerService := ledgerapp.NewLedgerService(ledgerRepo, log)

	reportService := reportapp.NewReportService(reportSource, snapshots, log)
	reportService.SetFetchTimeout(cfg.Report.FetchTimeout)

	if businessMetrics != nil {
		invoiceService.SetBusinessMetrics(businessMetrics)
		orderService.SetBusinessMetrics(businessMetrics)
		reportService.SetBusinessMetrics(businessMetrics)
	}

	// HTTP
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

	// Engine middleware order:
	// 1. RequestID - generate/propagate request ID
	// 2. Recovery - catch panics
	// 3. Logger - log requests
	// 4. Tracing and metrics
	// 5. Security headers, CORS, body limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, tracerProvider.IsEnabled()))
	httpMetrics, err := middleware.HTTPMetrics(meterProvider)
	if err != nil {
		log.Fatal("Failed to create HTTP metrics middleware", zap.Error(err))
	}
	engine.Use(httpMetrics)
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// API middleware: the caller's identity comes from a bearer token when
	// JWT is enabled, otherwise from the tenant headers set by the gateway
	var apiMiddleware []gin.HandlerFunc
	var jwtAuth gin.HandlerFunc
	if cfg.JWT.Enabled {
		jwtService, err := auth.NewJWTService(cfg.JWT)
		if err != nil {
			log.Fatal("Failed to create JWT service", zap.Error(err))
		}
		jwtAuth = middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
			Validator: jwtService,
			Logger:    log,
		})
		apiMiddleware = append(apiMiddleware, jwtAuth)
		log.Info("JWT authentication enabled", zap.String("issuer", cfg.JWT.Issuer))
	}
	apiMiddleware = append(apiMiddleware,
		middleware.Identity(),
		middleware.Profiling(profiler.IsEnabled()),
	)

	handlers := router.Handlers{
		System: handler.NewSystemHandler(cfg.App.Name, version, map[string]handler.Pinger{
			"database": db,
		}),
		Partners:       handler.NewPartnerHandler(entityService),
		Products:       handler.NewProductHandler(productService),
		Invoices:       handler.NewInvoiceHandler(invoiceService),
		PurchaseOrders: handler.NewPurchaseOrderHandler(orderService),
		Ledgers:        handler.NewLedgerHandler(ledgerService),
		Reports:        handler.NewReportHandler(reportService),
	}
	router.Setup(engine, handlers, router.WithMiddleware(apiMiddleware...))
	router.RegisterSwagger(engine, middleware.SwaggerProtection(middleware.SwaggerConfig{
		Enabled:     cfg.Swagger.Enabled,
		RequireAuth: cfg.Swagger.RequireAuth,
		AllowedIPs:  cfg.Swagger.AllowedIPs,
	}, jwtAuth))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Stop background work before closing the things it reads from
	if businessMetrics != nil {
		businessMetrics.Stop()
	}
	if dbMetrics != nil {
		dbMetrics.Stop()
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Warn("Error stopping event bus", zap.Error(err))
	}
	if err := idempotencyStore.Close(); err != nil {
		log.Warn("Error closing idempotency store", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Error stopping profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down tracer provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
	_ = logProvider.Shutdown(shutdownCtx)
}
