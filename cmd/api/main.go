// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/admin"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/auth"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/cart"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/category"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/config"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/contact"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/faq"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/health"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/middleware"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/order"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/product"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/server"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)
	core.ExposeErrorDetail(cfg.App.ExposeErrors)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.MigrateOnStart {
		if err := db.Migrate(); err != nil {
			return err
		}
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	tokens, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		return err
	}

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	if cfg.SeedAdmin() {
		created, seedErr := userSvc.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.UserName)
		if seedErr != nil {
			return seedErr
		}
		logger.Info("admin account checked", "email", cfg.Admin.Email, "created", created)
	}

	authSvc := auth.NewService(tokens, userSvc, redis.Client)
	authHandler := auth.NewHandler(authSvc)

	categorySvc := category.NewService(category.NewRepository(db.DB))
	categoryHandler := category.NewHandler(categorySvc)

	images, err := product.NewDiskImageStore(cfg.Upload.Dir, cfg.Upload.MaxSize)
	if err != nil {
		return err
	}
	productSvc := product.NewService(
		product.NewRepository(db.DB),
		categorySvc,
		product.NewRedisCache(redis.Client, cfg.Cache.ProductTTL),
		images,
	)
	productHandler := product.NewHandler(productSvc, images.MaxSize(), cfg.App.PublicURL)

	cartHandler := cart.NewHandler(cart.NewService(cart.NewRepository(db.DB), productSvc))

	orderSvc := order.NewService(order.NewRepository(db.DB), productSvc)
	orderHandler := order.NewHandler(orderSvc)

	contactHandler := contact.NewHandler(contact.NewService(contact.NewRepository(db.DB)))
	faqHandler := faq.NewHandler(faq.NewService(faq.NewRepository(db.DB)))

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Catalog:    admin.NewCatalogCounter(db.DB),
		Orders:     orderSvc,
	})

	srvCfg := server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	}
	if telemetry != nil {
		srvCfg.Wrap = func(h http.Handler) http.Handler {
			return otelhttp.NewHandler(h, cfg.App.Name)
		}
	}
	srv := server.New(srvCfg)

	router := srv.Router()

	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.Logger(logger))
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(cfg.Server.RequestTimeout))
	router.Use(
		middleware.NewRateLimiter(ctx, redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Upload.Dir)))
	router.Handle("/uploads/*", uploads)

	authenticator := middleware.Authenticator(authSvc)
	adminOnly := middleware.RequireAdmin
	authLimiter := middleware.NewRateLimiter(ctx, redis.Client, middleware.RateLimitConfig{
		Limit: middleware.PerWindow(
			cfg.RateLimit.AuthRequests,
			cfg.RateLimit.AuthBurst,
			cfg.RateLimit.Window,
		),
		KeyFunc:  middleware.KeyByIPAndEndpoint,
		FailOpen: true,
	}).Handler

	router.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			authHandler.RegisterRoutes(r, authenticator, authLimiter)
			userHandler.RegisterRoutes(r, authenticator, adminOnly)
		})
		r.Route("/products", func(r chi.Router) {
			productHandler.RegisterRoutes(r, authenticator, adminOnly)
		})
		r.Route("/category", func(r chi.Router) {
			categoryHandler.RegisterRoutes(r, authenticator, adminOnly)
		})
		r.Route("/cart", func(r chi.Router) {
			cartHandler.RegisterRoutes(r, authenticator, adminOnly)
		})
		r.Route("/orders", func(r chi.Router) {
			orderHandler.RegisterRoutes(r, authenticator, adminOnly)
		})
		r.Route("/contact", func(r chi.Router) {
			contactHandler.RegisterRoutes(r, authenticator, adminOnly)
		})
		r.Route("/faq", func(r chi.Router) {
			faqHandler.RegisterRoutes(r, authenticator, adminOnly)
		})
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
