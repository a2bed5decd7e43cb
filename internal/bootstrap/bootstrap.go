package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/iuermili/LeCourse/internal/app/controllers"
	appMigrations "github.com/iuermili/LeCourse/internal/app/migrations"
	appRepos "github.com/iuermili/LeCourse/internal/app/repositories"
	appRoutes "github.com/iuermili/LeCourse/internal/app/routes"
	appServices "github.com/iuermili/LeCourse/internal/app/services"
	"github.com/iuermili/LeCourse/internal/app/sessions"
	"github.com/iuermili/LeCourse/internal/config"
	"github.com/iuermili/LeCourse/internal/db"
	appMiddleware "github.com/iuermili/LeCourse/internal/middleware"
	pkgAuth "github.com/iuermili/LeCourse/internal/pkg/auth"
	"github.com/iuermili/LeCourse/internal/pkg/helpers"
	"github.com/iuermili/LeCourse/internal/pkg/llm"
	"github.com/iuermili/LeCourse/internal/pkg/logger"
	"github.com/iuermili/LeCourse/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AdvisingService    appServices.AdvisingService // Interface type
	CatalogService     appServices.CatalogService  // Interface type
	AdvisingController *appControllers.AdvisingController
	CatalogController  *appControllers.CatalogController
	Repos              *appRepos.Repositories
	SessionStore       *sessions.Store
	TokenService       *pkgAuth.TokenService
	ModelClient        *llm.Client
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations, and
// seeds the course catalog from the configured CSV files.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Seed the catalog after migrations
	if err := seed.LoadCatalogData(context.Background(), dbPool, cfg, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to seed catalog data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.ModelClient = llm.NewClient(llm.Config{
		BaseURL:     cfg.Ollama.URL,
		Model:       cfg.Ollama.Model,
		Temperature: cfg.Ollama.Temperature,
		Timeout:     helpers.ParseDuration(cfg.Ollama.Timeout, 120*time.Second),
	}, lgr)

	deps.SessionStore = sessions.NewStore(helpers.ParseDuration(cfg.Session.TTL, 12*time.Hour))

	deps.TokenService = pkgAuth.NewTokenService(pkgAuth.TokenConfig{
		SecretKey: cfg.Session.Secret,
		TTL:       helpers.ParseDuration(cfg.Session.TTL, 12*time.Hour),
		Issuer:    cfg.Session.Issuer,
	})

	deps.AdvisingService = appServices.NewAdvisingService(
		deps.Repos.CourseRepository,
		deps.Repos.RequirementRepository,
		deps.ModelClient,
		deps.SessionStore,
		deps.TokenService,
		cfg.Advising.SurfaceUnmatched,
		lgr,
	)
	deps.CatalogService = appServices.NewCatalogService(deps.Repos.CourseRepository)

	deps.AdvisingController = appControllers.NewAdvisingController(deps.AdvisingService, lgr)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS())

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AdvisingController,
		deps.CatalogController,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
