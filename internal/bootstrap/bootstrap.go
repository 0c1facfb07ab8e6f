package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/akshat/campushub/internal/app/controllers"
	appMigrations "github.com/akshat/campushub/internal/app/migrations"
	appRepos "github.com/akshat/campushub/internal/app/repositories"
	appRoutes "github.com/akshat/campushub/internal/app/routes"
	appServices "github.com/akshat/campushub/internal/app/services"
	"github.com/akshat/campushub/internal/config"
	"github.com/akshat/campushub/internal/db"
	appMiddleware "github.com/akshat/campushub/internal/middleware"
	"github.com/akshat/campushub/internal/pkg/cache"
	"github.com/akshat/campushub/internal/pkg/helpers"
	"github.com/akshat/campushub/internal/pkg/logger"
	"github.com/akshat/campushub/internal/pkg/realtime"
	"github.com/akshat/campushub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Hub                    *realtime.Hub
	Cache                  *cache.Cache
	AttendanceService      *appServices.AttendanceService
	EventService           *appServices.EventService
	StudentService         *appServices.StudentService
	RegistrationService    *appServices.RegistrationService
	FeedbackService        *appServices.FeedbackService
	AnalyticsService       *appServices.AnalyticsService
	InstituteService       *appServices.InstituteService
	EventController        *appControllers.EventController
	StudentController      *appControllers.StudentController
	RegistrationController *appControllers.RegistrationController
	AttendanceController   *appControllers.AttendanceController
	FeedbackController     *appControllers.FeedbackController
	AnalyticsController    *appControllers.AnalyticsController
	InstituteController    *appControllers.InstituteController
	RealtimeHandler        *realtime.Handler
	Repos                  *appRepos.Repositories
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"
	logger.Configure(logger.Config{
		Level:  strings.ToLower(cfg.Logging.Level),
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
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

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CleanOrphanedData(context.Background(), dbPool, lgr); err != nil {
		// Stale rows are not fatal; the cleanup runs again next start
		lgr.Error().Err(err).Msg("Failed to clean orphaned data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and the
// realtime hub.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	cacheTTL := helpers.ParseDuration(cfg.Redis.CacheTTL, 30*time.Second)
	analyticsCache, err := cache.New(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	deps.Cache = analyticsCache

	deps.Hub = realtime.NewHub(lgr)
	deps.RealtimeHandler = realtime.NewHandler(deps.Hub, lgr)

	deps.AttendanceService = appServices.NewAttendanceService(deps.Repos.AttendanceRepository, deps.Hub, lgr)
	deps.EventService = appServices.NewEventService(deps.Repos.EventRepository, deps.Hub, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.Hub, lgr)
	deps.RegistrationService = appServices.NewRegistrationService(deps.Repos.RegistrationRepository, deps.Hub, lgr)
	deps.FeedbackService = appServices.NewFeedbackService(deps.Repos.FeedbackRepository, deps.Hub, lgr)
	deps.AnalyticsService = appServices.NewAnalyticsService(deps.Repos.AnalyticsRepository, deps.Cache, nil, lgr)
	deps.InstituteService = appServices.NewInstituteService()

	deps.EventController = appControllers.NewEventController(deps.EventService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.RegistrationController = appControllers.NewRegistrationController(deps.RegistrationService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService)
	deps.FeedbackController = appControllers.NewFeedbackController(deps.FeedbackService)
	deps.AnalyticsController = appControllers.NewAnalyticsController(deps.AnalyticsService)
	deps.InstituteController = appControllers.NewInstituteController(deps.InstituteService)

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
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.Metrics())
	router.Use(appMiddleware.CORS())

	appRoutes.SetupRouter(router,
		deps.EventController,
		deps.StudentController,
		deps.RegistrationController,
		deps.AttendanceController,
		deps.FeedbackController,
		deps.AnalyticsController,
		deps.InstituteController,
		deps.RealtimeHandler,
	)

	return router
}
