// Package db selects the user store backend named by configuration.
package db

import (
	"context"
	"fmt"

	"github.com/locustfarm/farm-accounts/internal/core/ports"
	"github.com/locustfarm/farm-accounts/internal/infrastructure/config"
	"github.com/locustfarm/farm-accounts/internal/infrastructure/db/mongo"
	"github.com/locustfarm/farm-accounts/internal/infrastructure/db/mysql"
)

// OpenStore connects to the backend selected by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg *config.Config) (ports.UserStore, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		s, err := mongo.Open(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverMySQL:
		s, err := mysql.Open(ctx, mysql.Config{
			Host:     cfg.MySQL.Host,
			Port:     cfg.MySQL.Port,
			User:     cfg.MySQL.User,
			Password: cfg.MySQL.Password,
			Name:     cfg.MySQL.Name,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
