// @title           Locust Farm Management API
// @version         1.0
// @description     User accounts, authentication and administration for the Locust Farm platform.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/locustfarm/farm-accounts/internal/api"
	"github.com/locustfarm/farm-accounts/internal/core/ports"
	"github.com/locustfarm/farm-accounts/internal/core/service"
	"github.com/locustfarm/farm-accounts/internal/infrastructure/config"
	"github.com/locustfarm/farm-accounts/internal/infrastructure/db"
	"github.com/locustfarm/farm-accounts/internal/infrastructure/db/redis"
	httpserver "github.com/locustfarm/farm-accounts/internal/infrastructure/http"
	"github.com/locustfarm/farm-accounts/internal/pkg/password"
	"github.com/locustfarm/farm-accounts/internal/pkg/token"
	"github.com/locustfarm/farm-accounts/pkg/logger"
)

const startupTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty || cfg.IsDevelopment(),
		Service: "farm-accounts",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	store, err := db.OpenStore(startCtx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("closing user store")
		}
	}()
	log.Info().Str("driver", cfg.StoreDriver).Msg("user store connected")

	if err := store.Migrate(startCtx); err != nil {
		return err
	}

	var repo ports.UserRepository = store
	checkers := []ports.HealthChecker{store}
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(startCtx, redis.Config{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			Password: cfg.Redis.Password,
		})
		if err != nil {
			return err
		}
		defer client.Close()

		cache := redis.NewCachedUserRepository(store, client, cfg.Redis.CacheTTL, log)
		repo = cache
		checkers = append(checkers, cache)
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CacheTTL).Msg("user cache enabled")
	}

	tokens, err := token.NewService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	if err != nil {
		return err
	}
	hasher := password.NewBcryptHasher(cfg.Auth.BcryptCost)

	userService := service.NewUserService(repo, hasher, log)
	authService := service.NewAuthService(repo, userService, hasher, tokens, log)

	e := api.NewRouter(api.Deps{
		AuthService: authService,
		UserService: userService,
		Checkers:    checkers,
		ServiceName: cfg.ServiceName,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log,
	})

	return httpserver.NewServer(e, cfg.Port, cfg.ShutdownTimeout, log).Run(ctx)
}
