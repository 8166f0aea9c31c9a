// Package bootstrap wires configuration, storage, services and HTTP routing
// into a runnable application.
package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/emrekoc/campushire/internal/app/controllers"
	appMigrations "github.com/emrekoc/campushire/internal/app/migrations"
	appRepos "github.com/emrekoc/campushire/internal/app/repositories"
	appRoutes "github.com/emrekoc/campushire/internal/app/routes"
	appServices "github.com/emrekoc/campushire/internal/app/services"
	"github.com/emrekoc/campushire/internal/config"
	"github.com/emrekoc/campushire/internal/db"
	appMiddleware "github.com/emrekoc/campushire/internal/middleware"
	pkgAuth "github.com/emrekoc/campushire/internal/pkg/auth"
	"github.com/emrekoc/campushire/internal/pkg/logger"
	"github.com/emrekoc/campushire/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	CollegeService      *appServices.CollegeService
	JobService          *appServices.JobService
	PlacementService    *appServices.PlacementService
	StudentService      *appServices.StudentService
	AuthController      *appControllers.AuthController
	CollegeController   *appControllers.CollegeController
	JobController       *appControllers.JobController
	PlacementController *appControllers.PlacementController
	StudentController   *appControllers.StudentController
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the bootstrap data
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(database.Pool, lgr); err != nil {
		database.Close()
		return nil, fmt.Errorf("seeding default data failed: %w", err)
	}

	return database, nil
}

// BuildDependencies constructs repositories, services and controllers
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	sessionTTL, err := time.ParseDuration(cfg.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}
	idleTimeout, err := time.ParseDuration(cfg.Session.IdleTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid session idle timeout: %w", err)
	}

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.Session.Secret,
		SessionTTL:  sessionTTL,
		TokenIssuer: cfg.Session.Issuer,
	})

	repos := appRepos.NewRepositories(database.Pool)

	authService := appServices.NewAuthService(
		repos.UserRepository,
		repos.StudentRepository,
		repos.SessionRepository,
		jwtService,
		idleTimeout,
		lgr.With().Str("service", "auth").Logger(),
	)
	collegeService := appServices.NewCollegeService(
		repos.CollegeRepository,
		repos.UserRepository,
		database,
		lgr.With().Str("service", "college").Logger(),
	)
	jobService := appServices.NewJobService(
		repos.JobRepository,
		lgr.With().Str("service", "job").Logger(),
	)
	placementService := appServices.NewPlacementService(
		repos.JobRepository,
		repos.ApplicationRepository,
		repos.InterviewRepository,
		repos.StudentRepository,
		lgr.With().Str("service", "placement").Logger(),
	)
	studentService := appServices.NewStudentService(
		repos.StudentRepository,
		lgr.With().Str("service", "student").Logger(),
	)

	return &Dependencies{
		AuthService:         authService,
		CollegeService:      collegeService,
		JobService:          jobService,
		PlacementService:    placementService,
		StudentService:      studentService,
		AuthController:      appControllers.NewAuthController(authService, lgr),
		CollegeController:   appControllers.NewCollegeController(collegeService, lgr),
		JobController:       appControllers.NewJobController(jobService, lgr),
		PlacementController: appControllers.NewPlacementController(placementService, lgr),
		StudentController:   appControllers.NewStudentController(studentService, lgr),
		Repos:               repos,
		JWTService:          jwtService,
		Logger:              lgr,
	}, nil
}

// SetupRouter creates the gin engine and registers all routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), appMiddleware.Recovery())

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.CollegeController,
		deps.JobController,
		deps.PlacementController,
		deps.StudentController,
		deps.AuthService,
	)

	return router
}
