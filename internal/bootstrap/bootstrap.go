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

	appControllers "github.com/emirkaya/schoolhub/internal/app/controllers"
	appMigrations "github.com/emirkaya/schoolhub/internal/app/migrations"
	appRepos "github.com/emirkaya/schoolhub/internal/app/repositories"
	appRoutes "github.com/emirkaya/schoolhub/internal/app/routes"
	appServices "github.com/emirkaya/schoolhub/internal/app/services"
	"github.com/emirkaya/schoolhub/internal/config"
	"github.com/emirkaya/schoolhub/internal/db"
	appMiddleware "github.com/emirkaya/schoolhub/internal/middleware"
	"github.com/emirkaya/schoolhub/internal/pkg/logger"
	"github.com/emirkaya/schoolhub/internal/pkg/metrics"
	"github.com/emirkaya/schoolhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	SessionService       *appServices.SessionService
	AccountService       *appServices.AccountService
	ClassService         *appServices.ClassService
	EnrollmentService    *appServices.EnrollmentService
	GradeService         *appServices.GradeService
	SubjectService       *appServices.SubjectService
	AuthController       *appControllers.AuthController
	UserController       *appControllers.UserController
	StudentController    *appControllers.StudentController
	TeacherController    *appControllers.TeacherController
	ClassController      *appControllers.ClassController
	EnrollmentController *appControllers.EnrollmentController
	GradeController      *appControllers.GradeController
	SubjectController    *appControllers.SubjectController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	Logger               zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the bootstrap admin account.
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

	// Account creation requires an authenticated admin, so the very first
	// admin has to come from configuration.
	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.SessionService = appServices.NewSessionService(
		deps.Repos.SessionRepository,
		cfg.SessionTTL(),
		cfg.SessionRenewalWindow(),
		lgr,
	)

	deps.AccountService = appServices.NewAccountService(
		dbPool,
		deps.Repos.UserRepository,
		deps.SessionService,
		lgr,
	)

	deps.ClassService = appServices.NewClassService(deps.Repos.ClassRepository, lgr)

	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.EnrollmentRepository,
		deps.Repos.ClassRepository,
		deps.Repos.UserRepository,
		lgr,
	)

	deps.GradeService = appServices.NewGradeService(
		deps.Repos.GradeRepository,
		deps.Repos.EnrollmentRepository,
		deps.Repos.ClassRepository,
		deps.Repos.UserRepository,
		appServices.GradeBounds{Min: cfg.Grades.MinValue, Max: cfg.Grades.MaxValue},
		lgr,
	)

	deps.SubjectService = appServices.NewSubjectService(deps.Repos.SubjectRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.SessionService)

	deps.AuthController = appControllers.NewAuthController(deps.AccountService, deps.SessionService)
	deps.UserController = appControllers.NewUserController(deps.AccountService)
	deps.StudentController = appControllers.NewStudentController(deps.AccountService, deps.EnrollmentService, deps.GradeService)
	deps.TeacherController = appControllers.NewTeacherController(deps.AccountService, deps.ClassService)
	deps.ClassController = appControllers.NewClassController(deps.ClassService, deps.EnrollmentService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService)
	deps.GradeController = appControllers.NewGradeController(deps.GradeService)
	deps.SubjectController = appControllers.NewSubjectController(deps.SubjectService)

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
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.StudentController,
		deps.TeacherController,
		deps.ClassController,
		deps.EnrollmentController,
		deps.GradeController,
		deps.SubjectController,
		deps.AuthMiddleware,
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return router
}
