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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/otabek/davomat/docs" // generated swagger docs
	appControllers "github.com/otabek/davomat/internal/app/controllers"
	appMigrations "github.com/otabek/davomat/internal/app/migrations"
	appRepos "github.com/otabek/davomat/internal/app/repositories"
	appRoutes "github.com/otabek/davomat/internal/app/routes"
	appServices "github.com/otabek/davomat/internal/app/services"
	"github.com/otabek/davomat/internal/config"
	"github.com/otabek/davomat/internal/db"
	appMiddleware "github.com/otabek/davomat/internal/middleware"
	pkgAuth "github.com/otabek/davomat/internal/pkg/auth"
	"github.com/otabek/davomat/internal/pkg/cache"
	"github.com/otabek/davomat/internal/pkg/certpdf"
	"github.com/otabek/davomat/internal/pkg/filestorage"
	"github.com/otabek/davomat/internal/pkg/helpers"
	"github.com/otabek/davomat/internal/pkg/logger"
	"github.com/otabek/davomat/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           appServices.AuthService
	AttendanceService     appServices.AttendanceService
	StatsService          appServices.StatsService
	CertificateService    appServices.CertificateService
	GroupService          appServices.GroupService
	AuthController        *appControllers.AuthController
	AttendanceController  *appControllers.AttendanceController
	GroupController       *appControllers.GroupController
	UserController        *appControllers.UserController
	CertificateController *appControllers.CertificateController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	FileStorage           *filestorage.LocalStorage
	Cache                 *cache.Cache
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

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.Path)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Cache = cache.New(cfg.Redis.Addr, cfg.Redis.Password, helpers.ParseDuration(cfg.Redis.CacheTTL, 2*time.Minute))

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	// The renderer checks its template and font at construction so a broken
	// deployment fails here, not on the first issue request.
	renderer, err := certpdf.NewRenderer(cfg.Storage.TemplatePath, cfg.Storage.FontPath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize certificate renderer")
		return nil, fmt.Errorf("failed to initialize certificate renderer: %w", err)
	}

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService)
	deps.AttendanceService = appServices.NewAttendanceService(
		deps.Repos.AttendanceRepository,
		deps.Repos.GroupRepository,
		deps.Cache,
	)
	deps.StatsService = appServices.NewStatsService(
		deps.Repos.AttendanceRepository,
		deps.Repos.GroupRepository,
		deps.Repos.UserRepository,
		deps.Cache,
	)
	deps.CertificateService = appServices.NewCertificateService(
		deps.Repos.CertificateRepository,
		deps.Repos.UserRepository,
		renderer,
		deps.FileStorage,
		cfg.Server.PublicBaseURL,
	)
	deps.GroupService = appServices.NewGroupService(deps.Repos.GroupRepository, deps.FileStorage, deps.Cache)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService)
	deps.GroupController = appControllers.NewGroupController(deps.StatsService, deps.GroupService)
	deps.UserController = appControllers.NewUserController(deps.StatsService)
	deps.CertificateController = appControllers.NewCertificateController(deps.CertificateService, cfg.Server.PublicBaseURL)

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

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.AttendanceController,
		deps.GroupController,
		deps.UserController,
		deps.CertificateController,
		deps.AuthMiddleware,
		cfg.Storage.Path,
	)

	return router
}
