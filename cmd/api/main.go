package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "backoffice/api/swagger" // swagger docs
	"backoffice/internal/cache"
	"backoffice/internal/config"
	"backoffice/internal/currency"
	"backoffice/internal/database"
	"backoffice/internal/handler"
	"backoffice/internal/lock"
	"backoffice/internal/logger"
	"backoffice/internal/middleware"
	"backoffice/internal/repository"
	"backoffice/internal/service"
	"backoffice/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Back-Office Lifecycle API
// @version         1.0
// @description     Projects, purchase order revisions, invoice sequencing and vendor billing.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(ctx, cfg.Database, log)
	if err != nil {
		log.WithField("module", "main").Fatal("Database connection failed: " + err.Error())
	}
	log.WithField("module", "main").Info("Connected to PostgreSQL successfully.")

	// Redis is optional; without it caches and locks stay in-process.
	var (
		store  cache.Store
		locker lock.Locker
	)
	if cfg.Redis.Address != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithField("module", "main").Fatal("Redis ping failed: " + err.Error())
		}
		store = cache.NewRedisStore(rdb, "backoffice:")
		locker = lock.NewRedisLocker(rdb)
		log.WithField("module", "main").Info("Using Redis for cache and locks.")
	} else {
		store = cache.NewMemoryStore()
		locker = lock.NewLocalLocker()
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(log)
	go wsHub.Run()
	defer wsHub.Stop()

	converter := currency.NewConverter(
		currency.NewHTTPRateProvider(cfg.Exchange.BaseURL, cfg.Exchange.Timeout),
		cfg.Exchange.Timeout,
		log,
	)

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	projectRepo := repository.NewProjectRepository(db)
	poRepo := repository.NewPurchaseOrderRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	issuedRepo := repository.NewIssuedPORepository(db)
	receivedRepo := repository.NewReceivedInvoiceRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	statsRepo := repository.NewStatisticsRepository(db)

	deriver := service.NewStatusDeriver(projectRepo, poRepo, invoiceRepo)
	permissionService := service.NewPermissionService(roleRepo, txManager, store)
	settingsService := service.NewSettingsService(settingsRepo, auditRepo, store, log)
	projectService := service.NewProjectService(projectRepo, poRepo, invoiceRepo, companyRepo, userRepo, auditRepo, txManager, deriver, locker, wsHub, log)
	poService := service.NewPurchaseOrderService(poRepo, projectRepo, auditRepo, txManager, converter, deriver, wsHub)
	invoiceService := service.NewInvoiceService(invoiceRepo, projectRepo, auditRepo, txManager, converter, deriver, settingsService, locker, cfg.Invoice.LockTTL, wsHub, log)
	issuedPOService := service.NewIssuedPOService(issuedRepo, projectRepo, companyRepo, auditRepo, txManager, converter)
	receivedInvoiceService := service.NewReceivedInvoiceService(receivedRepo, issuedRepo, auditRepo, txManager, converter)
	companyService := service.NewCompanyService(companyRepo, txManager)
	exportService := service.NewExportService(projectRepo, poRepo, invoiceRepo)
	auditService := service.NewAuditService(auditRepo)
	userService := service.NewUserService(userRepo)
	statisticsService := service.NewStatisticsService(statsRepo)

	if err := permissionService.SeedDefaultRolesAndPermissions(ctx); err != nil {
		log.WithField("module", "main").Warn("Failed to seed roles and permissions: " + err.Error())
	}

	auth := middleware.NewAuth(cfg.JWT.Secret, permissionService, log)

	// Initialize Handlers
	handlers := handler.Handlers{
		Project:       handler.NewProjectHandler(projectService, exportService),
		PurchaseOrder: handler.NewPurchaseOrderHandler(poService),
		Invoice:       handler.NewInvoiceHandler(invoiceService),
		Vendor:        handler.NewVendorHandler(issuedPOService, receivedInvoiceService),
		Company:       handler.NewCompanyHandler(companyService),
		Settings:      handler.NewSettingsHandler(settingsService),
		Audit:         handler.NewAuditHandler(auditService),
		User:          handler.NewUserHandler(userService),
		Statistics:    handler.NewStatisticsHandler(statisticsService),
	}

	// Set up Gin Router
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Request-ID"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, auth)
	})

	handlers.RegisterRoutes(router, auth)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithField("module", "main").Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithField("module", "main").Fatal("Server failed: " + err.Error())
		}
	}()

	<-ctx.Done()
	shutdown(srv, cfg.Server.ShutdownTimeout, log)
}

func shutdown(srv *http.Server, timeout time.Duration, log *logrus.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithField("module", "main").Error("Graceful shutdown failed: " + err.Error())
		return
	}
	log.WithField("module", "main").Info("Server stopped.")
}
