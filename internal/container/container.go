package container

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/saulo-duarte/goalie-lambda/internal/auth"
	"github.com/saulo-duarte/goalie-lambda/internal/config"
	"github.com/saulo-duarte/goalie-lambda/internal/goal"
	"github.com/saulo-duarte/goalie-lambda/internal/router"
	"github.com/saulo-duarte/goalie-lambda/internal/user"
)

type Container struct {
	Settings      *config.Settings
	UserContainer *user.Container
	GoalContainer *goal.Container
	Router        *chi.Mux

	db    *gorm.DB
	redis *redis.Client
}

func New(ctx context.Context, settings *config.Settings) (*Container, error) {
	config.Init(settings.LogLevel)
	log := config.WithContext(ctx)

	issuer, err := auth.NewTokenIssuer(settings.JWTSecret, settings.AccessTokenTTL, settings.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	cipher, err := config.NewCipher(settings.CryptoKey)
	if err != nil {
		return nil, err
	}

	c := &Container{Settings: settings}

	var (
		goalRepo goal.Repository
		userRepo user.UserRepository
	)
	switch settings.StoreBackend {
	case config.StoreBackendMemory:
		log.Warn("Using in-memory store; data is lost on restart")
		goalRepo = goal.NewMemoryRepository()
		userRepo = user.NewMemoryRepository()
	default:
		db, err := config.Connect(ctx, settings.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to DB: %w", err)
		}
		c.db = db
		goalRepo = goal.NewRepository(db)
		userRepo = user.NewRepository(db)
	}

	refreshStore := auth.NewMemoryRefreshTokenStore()
	if settings.RedisAddr != "" {
		c.redis = redis.NewClient(&redis.Options{
			Addr:     settings.RedisAddr,
			Password: settings.RedisPassword,
			DB:       settings.RedisDB,
		})
		if err := c.redis.Ping(ctx).Err(); err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		refreshStore = auth.NewRedisRefreshTokenStore(c.redis)
	}

	sessions := auth.NewSessionManager(issuer, refreshStore)
	cookies := auth.CookieConfig{
		Domain: settings.CookieDomain,
		Secure: settings.IsProduction(),
	}

	c.UserContainer = user.NewContainer(user.ContainerDeps{
		Repo:        userRepo,
		Google:      user.NewGoogleProvider(settings.GoogleClientID, settings.GoogleClientSecret, settings.GoogleRedirectURL),
		Sessions:    sessions,
		Cipher:      cipher,
		Cookies:     cookies,
		FrontendURL: settings.FrontendURL,
	})
	c.GoalContainer = goal.NewContainer(goalRepo)

	c.Router = router.New(router.RouterConfig{
		UserHandler:    c.UserContainer.Handler,
		GoalHandler:    c.GoalContainer.Handler,
		AuthHandler:    auth.NewHandler(sessions, cookies),
		Issuer:         issuer,
		AllowedOrigins: settings.AllowedOrigins(),
	})

	log.WithField("store", settings.StoreBackend).Info("Container initialised")
	return c, nil
}

// Close releases the database pool and redis client, if any.
func (c *Container) Close() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			config.Logger.WithError(err).Warn("Failed to close redis client")
		}
	}
	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				config.Logger.WithError(err).Warn("Failed to close database")
			}
		}
	}
}
