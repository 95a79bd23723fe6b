package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	auditapp "github.com/dairyops/backend/internal/application/audit"
	billingapp "github.com/dairyops/backend/internal/application/billing"
	catalogapp "github.com/dairyops/backend/internal/application/catalog"
	dayopsapp "github.com/dairyops/backend/internal/application/dayops"
	identityapp "github.com/dairyops/backend/internal/application/identity"
	reportapp "github.com/dairyops/backend/internal/application/report"
	auditdomain "github.com/dairyops/backend/internal/domain/audit"
	auditinfra "github.com/dairyops/backend/internal/infrastructure/audit"
	"github.com/dairyops/backend/internal/infrastructure/auth"
	"github.com/dairyops/backend/internal/infrastructure/config"
	"github.com/dairyops/backend/internal/infrastructure/logger"
	"github.com/dairyops/backend/internal/infrastructure/persistence"
	"github.com/dairyops/backend/internal/interfaces/http/handler"
	"github.com/dairyops/backend/internal/interfaces/http/middleware"
	"github.com/dairyops/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting dairy backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
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
	log.Info("Database connected")

	// Token blacklist: Redis when reachable, in-memory otherwise. The
	// in-memory fallback loses revocations on restart, which is acceptable
	// for a single-node deployment.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected")
	}

	// Repositories
	dayRepo := persistence.NewGormBusinessDayRepository(db.DB)
	_ = persistence.NewGormProductDailyStockRepository(db.DB)
	_ = persistence.NewGormStockShortageReasonRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerEventRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	priceRepo := persistence.NewGormCustomerProductPriceRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	auditLogRepo := persistence.NewGormAuditLogRepository(db.DB)

	// Async audit recorder
	var auditSink auditdomain.Sink = auditdomain.NopSink{}
	var recorder *auditinfra.Recorder
	if cfg.Audit.Enabled {
		recorderCfg := auditinfra.DefaultRecorderConfig()
		if cfg.Audit.BufferSize > 0 {
			recorderCfg.BufferSize = cfg.Audit.BufferSize
		}
		recorder = auditinfra.NewRecorder(auditLogRepo, recorderCfg, log)
		auditSink = recorder
		defer recorder.Close()
	}

	// Transaction scopes
	dayScope := persistence.NewGormDayTransactionScope(db.DB)
	billingScope := persistence.NewGormBillingTransactionScope(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, auditSink, log)
	userService := identityapp.NewUserService(userRepo, auditSink)
	dayService := dayopsapp.NewDayService(dayScope, auditSink, log)
	stockService := dayopsapp.NewStockService(dayScope, auditSink, log)
	shortageService := dayopsapp.NewShortageService(dayScope, auditSink, log)
	billingService := billingapp.NewBillingService(billingScope, auditSink, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, saleRepo, paymentRepo, productRepo)
	ledgerService := billingapp.NewLedgerService(ledgerRepo, customerRepo)
	productService := catalogapp.NewProductService(productRepo, auditSink)
	customerService := catalogapp.NewCustomerService(customerRepo, priceRepo, productRepo, dayRepo, auditSink)
	reportService := reportapp.NewReportService(dayRepo, invoiceRepo, saleRepo, paymentRepo, ledgerRepo)
	auditService := auditapp.NewAuditService(auditLogRepo)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	dayHandler := handler.NewDayHandler(dayService)
	stockHandler := handler.NewStockHandler(stockService, shortageService)
	billingHandler := handler.NewBillingHandler(billingService, invoiceService, ledgerService)
	catalogHandler := handler.NewCatalogHandler(productService, customerService)
	userHandler := handler.NewUserHandler(userService)
	reportHandler := handler.NewReportHandler(reportService, auditService)
	healthHandler := handler.NewHealthHandler(db)

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

	engine.Use(logger.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	// Health probe lives outside the versioned API and skips authentication
	healthHandler.RegisterRoutes(&engine.RouterGroup)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.Auth(middleware.AuthConfig{
		JWTService: jwtService,
		Blacklist:  blacklist,
		SkipPaths:  middleware.DefaultSkipPaths(),
		Logger:     log,
	}))

	r.Register(authHandler).
		Register(dayHandler).
		Register(stockHandler).
		Register(billingHandler).
		Register(catalogHandler).
		Register(userHandler).
		Register(reportHandler)
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
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
