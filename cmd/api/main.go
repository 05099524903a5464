package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shah-aaseesh/outsmash-connect-grow/config"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/cache"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/database/postgres"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/handlers"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/middleware"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/onboarding"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/repository"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/services"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/db"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/httpclient"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/jwt"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/logger"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/metrics"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/profiling"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/recaptcha"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/retry"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/storage"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// registerAuthRoutes registers signup, login and session routes
func registerAuthRoutes(
	router *gin.Engine,
	cfg *config.Config,
	authRateLimiter *middleware.RateLimiter,
	authHandler *handlers.AuthHandler,
	tokenManager *jwt.TokenManager,
) {
	auth := router.Group("/api/v1/auth")
	auth.POST("/signup", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), authHandler.SignUp)
	auth.POST("/login", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", middleware.SessionMiddleware(tokenManager, cfg.Session.CookieDomain, cfg.Session.CookieSecure), authHandler.GetSession)
}

// registerOnboardingRoutes registers the profile setup wizard routes.
// All of them require a valid session and an incomplete profile.
func registerOnboardingRoutes(
	router *gin.Engine,
	cfg *config.Config,
	uploadRateLimiter *middleware.RateLimiter,
	onboardingHandler *handlers.OnboardingHandler,
	authService services.AuthServiceInterface,
	tokenManager *jwt.TokenManager,
) {
	wizard := router.Group("/api/v1/onboarding")
	wizard.Use(middleware.SessionMiddleware(tokenManager, cfg.Session.CookieDomain, cfg.Session.CookieSecure))
	wizard.Use(middleware.RequireProfileIncomplete(authService))

	wizard.GET("", onboardingHandler.GetState)
	wizard.PATCH("/draft", middleware.BodySizeLimitMiddleware(100*1024), onboardingHandler.UpdateDraft)
	wizard.POST("/next", onboardingHandler.Next)
	wizard.POST("/previous", onboardingHandler.Previous)

	// Photo uploads carry multipart bodies, so the limit covers a full
	// batch of images at the configured per-file maximum
	maxUploadBytes := int64(cfg.Onboarding.MaxPhotos) * int64(cfg.Onboarding.MaxPhotoSizeMB) * 1024 * 1024
	wizard.POST("/photos", uploadRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(maxUploadBytes), onboardingHandler.UploadPhotos)
	wizard.DELETE("/photos/:index", onboardingHandler.RemovePhoto)
}

// registerProfileRoutes registers public profile pages and the
// authenticated owner view
func registerProfileRoutes(
	router *gin.Engine,
	cfg *config.Config,
	generalRateLimiter *middleware.RateLimiter,
	profileHandler *handlers.ProfileHandler,
	authService services.AuthServiceInterface,
	tokenManager *jwt.TokenManager,
) {
	router.GET("/api/v1/profiles/:slug", generalRateLimiter.Middleware(), profileHandler.GetBySlug)

	me := router.Group("/api/v1/me")
	me.Use(middleware.SessionMiddleware(tokenManager, cfg.Session.CookieDomain, cfg.Session.CookieSecure))
	me.Use(middleware.RequireProfileComplete(authService))
	me.GET("/profile", profileHandler.GetOwn)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Outsmash API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Start continuous profiling when configured
	stopProfiler, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer pool.Close()

	// NOTE: Database migrations are run separately via the migrate command
	// before the app starts: ./migrate or docker-compose run migrate

	dbClient := postgres.NewClient(pool)

	// Initialize object storage for user photos
	storageClient, err := storage.NewClient(
		cfg.Storage.AccessKeyID,
		cfg.Storage.SecretAccessKey,
		cfg.Storage.BucketName,
		cfg.Storage.Endpoint,
		cfg.Storage.Region,
	)
	if err != nil {
		logger.Fatal("Failed to initialize storage client", zap.Error(err))
	}
	err = retry.Do(context.Background(), retry.StartupConfig(), "ensure storage bucket", func() error {
		return storageClient.EnsureBucket(context.Background())
	})
	if err != nil {
		logger.Fatal("Failed to ensure storage bucket", zap.Error(err))
	}

	// Initialize repositories
	profileRepo := repository.NewPostgresProfileDataSource(dbClient)
	photoRepo := repository.NewPostgresPhotoDataSource(dbClient)
	preferencesRepo := repository.NewPostgresPreferencesDataSource(dbClient)
	interestsRepo := repository.NewPostgresInterestsDataSource(dbClient)

	// Warm the interest catalog synchronously before accepting requests
	// so the container is only marked healthy with a usable catalog
	interestsCache := cache.NewInterestsCache(interestsRepo)
	if err := interestsCache.Initialize(context.Background()); err != nil {
		logger.Fatal("Failed to initialize interests cache", zap.Error(err))
	}

	draftStore := cache.NewDraftStore(time.Duration(cfg.Onboarding.DraftTTLMinutes) * time.Minute)
	completionCache := cache.NewCompletionCache(time.Duration(cfg.Onboarding.CompletedTTLSecs) * time.Second)

	// Initialize HTTP client for external calls
	httpClient := httpclient.NewStandardClient()

	// Bot protection is optional in local development
	var recaptchaVerifier services.RecaptchaVerifier
	if cfg.ReCAPTCHA.SecretKey != "" {
		recaptchaVerifier = recaptcha.NewVerifier(cfg.ReCAPTCHA.SecretKey, httpClient)
	} else {
		logger.Warn("reCAPTCHA verification disabled: RECAPTCHA_V2_SECRET_KEY not configured")
	}

	tokenManager := jwt.NewTokenManager(cfg.Session.JWTSecret, cfg.Session.JWTIssuer, cfg.Session.SessionTTLHours)

	// Initialize services
	schema := onboarding.NewSchema(onboarding.SchemaConfig{
		MaxPhotos: cfg.Onboarding.MaxPhotos,
		MinAge:    cfg.Onboarding.MinAge,
	})
	authService := services.NewAuthService(profileRepo, tokenManager, recaptchaVerifier, completionCache, cfg)
	submissionService := services.NewSubmissionService(profileRepo, photoRepo, preferencesRepo, interestsRepo, interestsCache, httpClient, cfg)
	onboardingService := services.NewOnboardingService(draftStore, schema, submissionService, authService, cfg)
	photoService := services.NewPhotoService(onboardingService, storageClient, cfg)
	profileService := services.NewProfileService(profileRepo, photoRepo, interestsRepo, cfg)
	interestsService := services.NewInterestsService(interestsCache)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService, photoService)
	profileHandler := handlers.NewProfileHandler(profileService)
	interestsHandler := handlers.NewInterestsHandler(interestsService)
	healthHandler := handlers.NewHealthHandler(interestsCache.IsReady)
	logsHandler := handlers.NewLogsHandler(cfg.Logging.Dir)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - SECURITY: Only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	// Allow localhost in development
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-CSRF-Token", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // Required for session cookies
		MaxAge:           12 * time.Hour,
	}))

	// SECURITY: Rate limiters to prevent abuse and DoS attacks
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	authRateLimiter := middleware.NewRateLimiter(1, 5)        // 1 req/sec, burst of 5 (credential abuse prevention)
	uploadRateLimiter := middleware.NewRateLimiter(2, 6)      // 2 req/sec, burst of 6 (photo upload batches)
	defer generalRateLimiter.Stop()
	defer authRateLimiter.Stop()
	defer uploadRateLimiter.Stop()

	// Utility endpoints (not versioned - operational endpoints)
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Public catalog and client log ingestion
	router.GET("/api/v1/interests", generalRateLimiter.Middleware(), interestsHandler.GetCatalog)
	router.POST("/api/v1/logs", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(1*1024*1024), logsHandler.ReceiveClientLogs)

	registerAuthRoutes(router, cfg, authRateLimiter, authHandler, tokenManager)
	registerOnboardingRoutes(router, cfg, uploadRateLimiter, onboardingHandler, authService, tokenManager)
	registerProfileRoutes(router, cfg, generalRateLimiter, profileHandler, authService, tokenManager)

	// Create HTTP server
	// SECURITY: Bind to all interfaces for Docker Compose networking.
	// Network isolation is enforced by Docker Compose (backend has no public ports)
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // SECURITY: 1 MB max header size
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
