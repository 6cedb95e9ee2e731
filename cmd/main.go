package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	echojwt "github.com/labstack/echo-jwt/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"

	"roomly/internal/caching"
	"roomly/internal/config"
	"roomly/internal/handlers"
	"roomly/internal/jobs"
	"roomly/internal/middleware"
	"roomly/internal/models"
	"roomly/internal/repositories"
	"roomly/internal/services"
	"roomly/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := database.NewPool(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := cfg.Server.JWTSecret
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret")
	}

	// Tenant cache: Redis when configured, in-process otherwise.
	var tenantCache caching.TenantCache
	if cfg.Redis.Addr != "" {
		tenantCache = caching.NewRedisTenantCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	} else {
		log.Printf("REDIS_ADDR not set, using in-process tenant cache")
		tenantCache = caching.NewMemoryTenantCache()
	}

	// Object storage for tenant branding assets
	assetSvc, err := services.NewAssetService(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.UseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize asset storage: %v", err)
	}
	if err := assetSvc.EnsureBucket(context.Background()); err != nil {
		log.Printf("WARNING: failed to ensure branding bucket: %v", err)
	}

	// Repositories
	tenantRepo := repositories.NewTenantRepo(pool)
	featureRepo := repositories.NewFeatureRepo(pool)
	tenantFeatureRepo := repositories.NewTenantFeatureRepo(pool)
	auditLogsRepo := repositories.NewAuditLogsRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	roomRepo := repositories.NewRoomRepo(pool)
	bookingRepo := repositories.NewBookingRepo(pool)

	// Services
	auditSvc := services.NewAuditService(auditLogsRepo)
	featureSvc := services.NewFeatureService(featureRepo, tenantFeatureRepo)
	resolver := services.NewTenantResolver(tenantRepo, tenantFeatureRepo, tenantCache, cfg.Tenancy.BaseDomain, cfg.CacheTTL())
	tenantSvc := services.NewTenantService(tenantRepo, featureSvc, resolver, auditSvc)
	roomSvc := services.NewRoomService(roomRepo, auditSvc)
	bookingSvc := services.NewBookingService(bookingRepo, roomRepo, auditSvc)

	if err := featureSvc.SeedCatalog(context.Background()); err != nil {
		log.Fatalf("Failed to seed feature catalog: %v", err)
	}

	// Middleware
	tenantMiddleware := middleware.NewTenantMiddleware(resolver)
	featureMiddleware := middleware.NewFeatureMiddleware(featureSvc, auditSvc)
	auditMiddleware := middleware.NewAuditMiddleware(auditSvc)

	// Handlers
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	featureHandlers := handlers.NewFeatureHandlers(featureSvc, auditSvc)
	auditHandlers := handlers.NewAuditLogsHandlers(auditSvc)
	roomHandlers := handlers.NewRoomHandlers(roomSvc)
	bookingHandlers := handlers.NewBookingHandlers(bookingSvc)
	brandingHandlers := handlers.NewBrandingHandlers(assetSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Background jobs
	scheduler := jobs.NewJobScheduler(auditSvc, tenantRepo, cfg.Audit.RetentionDays)
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop scheduler: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth, no tenant)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	v1 := e.Group("/v1")

	// Platform-level tenant administration (no tenant resolution)
	v1.POST("/tenants", tenantHandlers.CreateTenant)
	v1.GET("/tenants", tenantHandlers.ListTenants)
	v1.GET("/tenants/:id", tenantHandlers.GetTenant)
	v1.PUT("/tenants/:id", tenantHandlers.UpdateTenant)
	v1.GET("/features", featureHandlers.ListDefinedFeatures)

	// Tenant-scoped routes: every request resolves a tenant first.
	scoped := v1.Group("")
	scoped.Use(tenantMiddleware.Resolve())
	scoped.Use(echojwt.WithConfig(middleware.JWTConfig(jwtSecret)))
	scoped.Use(middleware.UserContext(userRepo))
	scoped.Use(auditMiddleware.AuditRequest())

	scoped.GET("/tenant", tenantHandlers.GetCurrentTenant)

	scoped.GET("/tenant/features", featureHandlers.ListTenantFeatures)
	scoped.GET("/tenant/features/:name", featureHandlers.CheckFeature)
	scoped.PUT("/tenant/features/:name", featureHandlers.EnableFeature)
	scoped.DELETE("/tenant/features/:name", featureHandlers.DisableFeature)

	scoped.GET("/audit-logs", auditHandlers.ListAuditLogs)
	scoped.GET("/audit-logs/suspicious", auditHandlers.GetSuspiciousActivity)

	scoped.GET("/rooms", roomHandlers.ListRooms)
	scoped.GET("/rooms/:id", roomHandlers.GetRoom)
	scoped.POST("/rooms", roomHandlers.CreateRoom)
	scoped.PUT("/rooms/:id", roomHandlers.UpdateRoom)
	scoped.DELETE("/rooms/:id", roomHandlers.DeleteRoom)

	// Booking endpoints are plan-gated.
	bookings := scoped.Group("/bookings")
	bookings.Use(featureMiddleware.RequireFeature(models.FeatureRoomBooking))
	bookings.GET("", bookingHandlers.ListBookings)
	bookings.POST("", bookingHandlers.CreateBooking)
	bookings.GET("/:id", bookingHandlers.GetBooking)
	bookings.DELETE("/:id", bookingHandlers.CancelBooking)

	// Branding assets require the custom_branding feature.
	branding := scoped.Group("/tenant/branding")
	branding.Use(featureMiddleware.RequireFeature(models.FeatureCustomBranding))
	branding.GET("/logo", brandingHandlers.GetLogo)
	branding.POST("/logo", brandingHandlers.UploadLogo)
	branding.DELETE("/logo", brandingHandlers.DeleteLogo)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Printf("Shutting down server")
		if err := e.Shutdown(context.Background()); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Roomly server v%s starting on port %d (base domain %s)", version, cfg.Server.Port, cfg.Tenancy.BaseDomain)
	if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
