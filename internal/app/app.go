package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/stashbin/stashbin/internal/cache"
	"github.com/stashbin/stashbin/internal/config"
	"github.com/stashbin/stashbin/internal/db"
	"github.com/stashbin/stashbin/internal/repository"
	"github.com/stashbin/stashbin/internal/service"
	"github.com/stashbin/stashbin/internal/storage"
	"go.uber.org/multierr"
)

type App struct {
	Cfg   *config.Config
	DB    *sqlx.DB
	Cache cache.Cache

	UserRepository repository.UserRepository
	FileRepository repository.FileRepository

	AuthService *service.AuthService
	UserService *service.UserService
	FileService *service.FileService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Token cache
	tokenCache, err := cache.Open(cfg.TokenCachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token cache: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	fileRepository := repository.NewFileRepository(database)

	// Storage
	contentStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	authService := service.NewAuthService(userRepository, tokenCache, cfg.TokenExpiry)
	userService := service.NewUserService(userRepository)
	fileService := service.NewFileService(fileRepository, contentStorage)

	return &App{
		Cfg:            cfg,
		DB:             database,
		Cache:          tokenCache,
		UserRepository: userRepository,
		FileRepository: fileRepository,
		AuthService:    authService,
		UserService:    userService,
		FileService:    fileService,
	}, nil
}

func (a *App) Close() error {
	var err error
	if a.Cache != nil {
		err = multierr.Append(err, a.Cache.Close())
	}
	if a.DB != nil {
		err = multierr.Append(err, a.DB.Close())
	}
	return err
}
