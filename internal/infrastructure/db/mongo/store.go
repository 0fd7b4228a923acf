package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store owns the client connection and exposes the user repository.
type Store struct {
	*UserRepository
	client *mongo.Client
	db     *mongo.Database
}

// Open connects and returns a Store. The caller owns Close.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	client, db, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{
		UserRepository: NewUserRepository(db),
		client:         client,
		db:             db,
	}, nil
}

func (s *Store) Name() string { return "mongodb" }

// Ping checks both the client and that the selected database answers commands.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return err
	}
	if err := s.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return fmt.Errorf("mongo database ping: %w", err)
	}
	return nil
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.EnsureIndexes(ctx)
}

func (s *Store) Reset(ctx context.Context) error {
	if err := s.Drop(ctx); err != nil {
		return err
	}
	return s.EnsureIndexes(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
