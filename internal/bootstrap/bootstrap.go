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

	appControllers "github.com/MiiguelHG/escolar-api/internal/app/controllers"
	appMigrations "github.com/MiiguelHG/escolar-api/internal/app/migrations"
	appRepos "github.com/MiiguelHG/escolar-api/internal/app/repositories"
	appRoutes "github.com/MiiguelHG/escolar-api/internal/app/routes"
	appServices "github.com/MiiguelHG/escolar-api/internal/app/services"
	"github.com/MiiguelHG/escolar-api/internal/config"
	"github.com/MiiguelHG/escolar-api/internal/db"
	appMiddleware "github.com/MiiguelHG/escolar-api/internal/middleware"
	pkgAuth "github.com/MiiguelHG/escolar-api/internal/pkg/auth"
	"github.com/MiiguelHG/escolar-api/internal/pkg/filestorage"
	"github.com/MiiguelHG/escolar-api/internal/pkg/logger"
	"github.com/MiiguelHG/escolar-api/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           *appServices.AuthService
	AlumnoService         *appServices.AlumnoService
	ProfesorService       *appServices.ProfesorService
	MateriaService        *appServices.MateriaService
	AsignacionService     *appServices.AsignacionService
	InscripcionService    *appServices.InscripcionService
	AuthController        *appControllers.AuthController
	AlumnoController      *appControllers.AlumnoController
	ProfesorController    *appControllers.ProfesorController
	MateriaController     *appControllers.MateriaController
	AsignacionController  *appControllers.AsignacionController
	InscripcionController *appControllers.InscripcionController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	FileStorage           *filestorage.LocalStorage
	Logger                zerolog.Logger
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
// seeds the default login account.
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

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Photos are served at /uploads, so stored URLs must point there.
	var err error
	baseURL := cfg.GetPublicURL() + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// Validated at load time, so the parse cannot fail here.
	accessTokenExp, _ := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: accessTokenExp,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, lgr)
	deps.AlumnoService = appServices.NewAlumnoService(deps.Repos.AlumnoRepository, deps.FileStorage, lgr)
	deps.ProfesorService = appServices.NewProfesorService(deps.Repos.ProfesorRepository, lgr)
	deps.MateriaService = appServices.NewMateriaService(deps.Repos.MateriaRepository, lgr)
	deps.AsignacionService = appServices.NewAsignacionService(
		deps.Repos.AsignacionRepository,
		deps.Repos.ProfesorRepository,
		deps.Repos.MateriaRepository,
		lgr,
	)
	deps.InscripcionService = appServices.NewInscripcionService(
		deps.Repos.InscripcionRepository,
		deps.Repos.AlumnoRepository,
		deps.Repos.MateriaRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.AuthService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.AlumnoController = appControllers.NewAlumnoController(deps.AlumnoService)
	deps.ProfesorController = appControllers.NewProfesorController(deps.ProfesorService)
	deps.MateriaController = appControllers.NewMateriaController(deps.MateriaService)
	deps.AsignacionController = appControllers.NewAsignacionController(deps.AsignacionService)
	deps.InscripcionController = appControllers.NewInscripcionController(deps.InscripcionService)

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

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.AlumnoController,
		deps.ProfesorController,
		deps.MateriaController,
		deps.AsignacionController,
		deps.InscripcionController,
		deps.AuthMiddleware,
		cfg.Server.StoragePath,
	)

	return router
}
