package main

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"garage-be/internal/cache"
	"garage-be/internal/config"
	"garage-be/internal/controllers"
	"garage-be/internal/database"
	"garage-be/internal/repository"
	"garage-be/internal/router"
	"garage-be/internal/service"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			newLogger,
			newDatabase,
			newCache,
			newResponseCache,

			repository.NewUserRepository,
			repository.NewProfileRepository,
			repository.NewCarRepository,
			repository.NewFavouriteRepository,

			service.NewRelations,
			newUserService,
			service.NewProfileService,
			service.NewCarService,
			service.NewFavouriteService,

			controllers.NewUserController,
			controllers.NewProfileController,
			controllers.NewCarController,
			controllers.NewFavouriteController,

			newRouter,
			router.NewServer,
		),
		fx.WithLogger(func(logger *zap.SugaredLogger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Desugar()}
		}),
		fx.Invoke(func(*http.Server) {}),
	).Run()
}

func newLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.SugaredLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	lc.Append(fx.StopHook(func() {
		_ = logger.Sync()
	}))
	return logger.Sugar(), nil
}

func newDatabase(lc fx.Lifecycle, cfg *config.Config, logger *zap.SugaredLogger) (*sql.DB, error) {
	db, err := database.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(db.Close))
	return db, nil
}

// newCache connects to Redis when configured. The API keeps working without it.
func newCache(lc fx.Lifecycle, cfg *config.Config, logger *zap.SugaredLogger) cache.Cache {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, response cache disabled")
		return nil
	}

	c, err := cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		logger.Warnw("failed to connect to Redis, continuing without cache", "error", err)
		return nil
	}
	logger.Info("connected to Redis cache")

	if closer, ok := c.(interface{ Close() error }); ok {
		lc.Append(fx.StopHook(closer.Close))
	}
	return c
}

func newResponseCache(c cache.Cache, cfg *config.Config, logger *zap.SugaredLogger) *service.ResponseCache {
	return service.NewResponseCache(c, cfg.CacheTTL(), logger)
}

func newUserService(users repository.UserRepository, rel *service.Relations, rc *service.ResponseCache, cfg *config.Config) service.UserService {
	return service.NewUserService(users, rel, rc, cfg.BcryptCost)
}

func newRouter(
	users *controllers.UserController,
	profiles *controllers.ProfileController,
	cars *controllers.CarController,
	favourites *controllers.FavouriteController,
	logger *zap.SugaredLogger,
) *gin.Engine {
	return router.NewRouter(router.Controllers{
		Users:      users,
		Profiles:   profiles,
		Cars:       cars,
		Favourites: favourites,
	}, logger)
}

