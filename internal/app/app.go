package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/temcen/songmatch/internal/catalog"
	"github.com/temcen/songmatch/internal/config"
	"github.com/temcen/songmatch/internal/handlers"
	"github.com/temcen/songmatch/internal/middleware"
	"github.com/temcen/songmatch/internal/services"
	"github.com/temcen/songmatch/internal/spotify"
)

const systemMetricsInterval = 15 * time.Second

type App struct {
	config   *config.Config
	logger   *logrus.Logger
	core     *Core
	handlers *handlers.Handlers
	router   *gin.Engine
	cancel   context.CancelFunc
}

// Core is the recommendation stack without the HTTP layer. The CLI uses it
// directly.
type Core struct {
	Services *services.Services
	loader   *catalog.Loader
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := SetupLogger(cfg)

	core, err := NewCore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return newApp(cfg, logger, core), nil
}

func newApp(cfg *config.Config, logger *logrus.Logger, core *Core) *App {
	runCtx, cancel := context.WithCancel(context.Background())
	app := &App{
		config:   cfg,
		logger:   logger,
		core:     core,
		handlers: handlers.New(logger, core.Services),
		cancel:   cancel,
	}

	if cfg.Monitoring.Enabled {
		go core.Services.Health.Run(runCtx, systemMetricsInterval)
	}

	app.setupRouter()
	return app
}

// NewCore opens the configured catalog source, builds the services and
// loads the catalog once.
func NewCore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Core, error) {
	source, err := catalog.Open(ctx, cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	loader := catalog.NewLoader(source, cfg.Catalog.MinPopularity, logger)

	var live services.LiveLookup
	if cfg.Spotify.Enabled {
		live = spotify.NewFromConfig(context.Background(), cfg.Spotify, logger)
		logger.WithField("base_url", cfg.Spotify.BaseURL).Info("Live lookup enabled")
	}

	svcs := services.New(cfg, logger, loader, live)
	if _, err := svcs.Recommendation.Reload(ctx); err != nil {
		_ = loader.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return &Core{Services: svcs, loader: loader}, nil
}

func (c *Core) Close() error {
	if c.loader == nil {
		return nil
	}
	return c.loader.Close()
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Logger() *logrus.Logger {
	return a.logger
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")
	a.cancel()

	if err := a.core.Close(); err != nil {
		a.logger.WithError(err).Error("Error closing catalog source")
		return err
	}

	return nil
}

func SetupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func (a *App) setupRouter() {
	if a.config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.CORS(a.config))

	if a.config.Monitoring.Enabled {
		router.Use(middleware.Metrics())
		router.GET(a.config.Monitoring.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	router.GET("/health", a.handlers.Health.Check)

	api := router.Group("/api/v1")
	{
		api.GET("/songs/similar", a.handlers.Recommendation.Similar)

		recommendations := api.Group("/recommendations")
		{
			recommendations.GET("/mood", a.handlers.Recommendation.Mood)
			recommendations.POST("/features", a.handlers.Recommendation.Features)
			recommendations.GET("/live", a.handlers.Recommendation.Live)
		}

		genres := api.Group("/genres")
		{
			genres.GET("", a.handlers.Catalog.Genres)
			genres.GET("/:genre/top", a.handlers.Catalog.TopInGenre)
		}

		api.GET("/moods", a.handlers.Catalog.Moods)

		catalogRoutes := api.Group("/catalog")
		{
			catalogRoutes.GET("/stats", a.handlers.Catalog.Stats)
			catalogRoutes.GET("/sample", a.handlers.Catalog.Sample)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(a.config.Security.JWTSecret, a.logger))
		{
			admin.POST("/reload", a.handlers.Admin.Reload)
		}
	}

	a.router = router
}
