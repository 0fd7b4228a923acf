// Command usertool prepares the user store: schema creation, reset and demo
// data.
//
//	usertool migrate   create the schema or indexes
//	usertool reset     drop all users and recreate the schema
//	usertool seed      create the demo accounts, skipping existing ones
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/locustfarm/farm-accounts/internal/core/ports"
	"github.com/locustfarm/farm-accounts/internal/core/service"
	"github.com/locustfarm/farm-accounts/internal/infrastructure/config"
	"github.com/locustfarm/farm-accounts/internal/infrastructure/db"
	"github.com/locustfarm/farm-accounts/internal/infrastructure/db/redis"
	"github.com/locustfarm/farm-accounts/internal/pkg/password"
	"github.com/locustfarm/farm-accounts/pkg/logger"
)

const timeout = time.Minute

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-yes] migrate|reset|seed\n", os.Args[0])
		flag.PrintDefaults()
	}
	yes := flag.Bool("yes", false, "skip the confirmation prompt for reset")
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "usertool"})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := run(ctx, flag.Arg(0), *yes, cfg, log); err != nil {
		log.Error().Err(err).Str("command", flag.Arg(0)).Msg("usertool failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, yes bool, cfg *config.Config, log zerolog.Logger) error {
	switch cmd {
	case "migrate", "reset", "seed":
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	store, err := db.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(store, log)

	switch cmd {
	case "migrate":
		if err := store.Migrate(ctx); err != nil {
			return err
		}
		log.Info().Str("driver", cfg.StoreDriver).Msg("schema ready")

	case "reset":
		if !yes && !confirm("This drops every user. Continue? [y/N] ") {
			log.Info().Msg("reset cancelled")
			return nil
		}
		if err := store.Reset(ctx); err != nil {
			return err
		}
		if err := flushCache(ctx, cfg, store, log); err != nil {
			log.Warn().Err(err).Msg("user cache not flushed")
		}
		log.Info().Str("driver", cfg.StoreDriver).Msg("user store reset")

	case "seed":
		if err := store.Migrate(ctx); err != nil {
			return err
		}
		hasher := password.NewBcryptHasher(cfg.Auth.BcryptCost)
		users := service.NewUserService(store, hasher, log)
		results, err := service.Seed(ctx, users, service.DemoUsers)
		if err != nil {
			return err
		}
		for _, r := range results {
			if r.Created {
				log.Info().Str("email", r.Email).Msg("created demo user")
			} else {
				log.Info().Str("email", r.Email).Msg("demo user already exists")
			}
		}
	}
	return nil
}

func flushCache(ctx context.Context, cfg *config.Config, repo ports.UserRepository, log zerolog.Logger) error {
	if cfg.Redis.Addr == "" {
		return nil
	}
	client, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})
	if err != nil {
		return err
	}
	defer client.Close()
	return redis.NewCachedUserRepository(repo, client, cfg.Redis.CacheTTL, log).Flush(ctx)
}

func confirm(prompt string) bool {
	fmt.Fprint(os.Stderr, prompt)
	var answer string
	if _, err := fmt.Fscanln(os.Stdin, &answer); err != nil {
		return false
	}
	return answer == "y" || answer == "Y" || answer == "yes"
}

func closeStore(store ports.UserStore, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		log.Warn().Err(err).Str("driver", store.Name()).Msg("closing user store")
	}
}
