package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

// Store owns the connection pool and exposes the user repository.
type Store struct {
	*UserRepository
	db *sql.DB
}

// Open connects and returns a Store. The caller owns Close.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	db, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

func NewStore(db *sql.DB) *Store {
	return &Store{UserRepository: NewUserRepository(db), db: db}
}

func (s *Store) Name() string { return "mysql" }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, dropUsersTable); err != nil {
		return fmt.Errorf("drop users table: %w", err)
	}
	return s.Migrate(ctx)
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}
