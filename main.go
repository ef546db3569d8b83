package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HSouheill/lostfound_backend/config"
	"github.com/HSouheill/lostfound_backend/controllers"
	"github.com/HSouheill/lostfound_backend/logger"
	"github.com/HSouheill/lostfound_backend/metrics"
	"github.com/HSouheill/lostfound_backend/middleware"
	"github.com/HSouheill/lostfound_backend/repositories"
	"github.com/HSouheill/lostfound_backend/routes"
	"github.com/HSouheill/lostfound_backend/services"
	"github.com/HSouheill/lostfound_backend/storage"
	"github.com/HSouheill/lostfound_backend/utils"
	"github.com/HSouheill/lostfound_backend/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewLogger("info").Fatal("Invalid configuration", "error", err)
	}

	log := logger.NewLogger(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	client, err := config.ConnectDB(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	db := client.Database(cfg.DBName)
	config.EnsureIndexes(ctx, db, log)

	// Connect to Redis
	var attempts services.AttemptLimiter = services.NoopAttemptLimiter{}
	if rdb := config.ConnectRedis(ctx, cfg, log); rdb != nil {
		defer rdb.Close()
		attempts = services.NewRedisAttemptLimiter(rdb, cfg.VerifyMaxAttempts, cfg.VerifyAttemptWindow)
	}

	store, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialise image storage", "driver", cfg.StorageDriver, "error", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Create WebSocket hub
	wsHub := websocket.NewHub(log)
	go wsHub.Run(ctx)

	// Initialize repositories
	seats := repositories.NewSeatRepository(db)
	notifications := repositories.NewNotificationRepository(db)

	mailer := services.NewMailer(cfg)
	qr := services.NewQRGenerator(cfg.BaseURL)
	emails := services.NewEmailSender(mailer, qr, cfg)

	deps := services.Deps{
		Config:        cfg,
		Log:           log,
		Flights:       repositories.NewFlightRepository(db),
		Seats:         seats,
		Items:         repositories.NewLostItemRepository(db),
		Claims:        repositories.NewClaimRepository(db),
		Notifications: notifications,
		AuditLogs:     repositories.NewAuditLogRepository(db),
		Reports:       repositories.NewReportRepository(db),
		Store:         store,
		QR:            qr,
		Emails:        emails,
		Notifier:      services.NewRowNotifier(seats, notifications, emails, m, log),
		Payments:      services.NewMockPaymentProcessor(cfg.PaymentMockDelay, cfg.ShippingFeeCents),
		Attempts:      attempts,
		Events:        wsHub,
		Metrics:       m,
	}
	if analyzer := services.NewGroqAnalyzer(cfg); analyzer != nil {
		deps.Analyzer = analyzer
	} else {
		log.Info("GROQ_API_KEY not set, AI analysis disabled")
	}

	auth := services.NewAuthService(cfg)
	if !auth.Enabled() {
		log.Warn("JWT_SECRET not set, staff routes are unauthenticated")
	}

	// Initialize controllers
	handlers := routes.Handlers{
		LostItems:  controllers.NewLostItemController(services.NewItemService(deps), cfg.MaxUploadBytes),
		Collection: controllers.NewCollectionController(services.NewCollectionService(deps)),
		Flights:    controllers.NewFlightController(services.NewFlightService(deps), services.NewSeatService(deps)),
		Claims:     controllers.NewClaimController(services.NewClaimService(deps), services.NewReportService(deps)),
		Admin: controllers.NewAdminController(
			services.NewRecordService(deps),
			services.NewSeedService(deps),
			services.NewAIService(deps),
			auth,
		),
		Hub:  wsHub,
		Auth: auth,
	}

	e := newServer(ctx, cfg, log, m)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	e.Match([]string{http.MethodGet, http.MethodHead}, "/health", func(c echo.Context) error {
		pctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := client.Ping(pctx, nil); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status":   "unhealthy",
				"database": "disconnected",
			})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":     "healthy",
			"database":   "connected",
			"dashboards": wsHub.ClientCount(),
		})
	})
	if cfg.StorageDriver != "s3" {
		e.Static("/uploads", cfg.UploadDir)
	}
	routes.SetupRoutes(e, handlers)

	// Start server
	go func() {
		log.Info("Starting server", "port", cfg.Port, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")
	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}
}

func newServer(ctx context.Context, cfg *config.Config, log logger.Logger, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = utils.NewValidator()
	e.HTTPErrorHandler = controllers.HTTPErrorHandler(log)
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(ctx)

	// Middleware
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.Metrics(m))
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		AllowedDomains: cfg.CORSAllowedOrigins,
		HSTS:           !cfg.IsDevelopment(),
	}))
	e.Use(middleware.CORSWithConfig(middleware.NewCORSConfig(cfg.CORSAllowedOrigins)))
	// Multipart photo uploads plus form overhead
	e.Use(echoMiddleware.BodyLimit(bodyLimit(cfg.MaxUploadBytes)))
	e.Use(rateLimiter.RateLimit())

	return e
}

func bodyLimit(maxUpload int64) string {
	mb := maxUpload/(1024*1024) + 2
	return strconv.FormatInt(mb, 10) + "M"
}
