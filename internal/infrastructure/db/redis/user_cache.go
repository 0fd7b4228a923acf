package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/locustfarm/farm-accounts/internal/api/metrics"
	"github.com/locustfarm/farm-accounts/internal/core/domain"
	"github.com/locustfarm/farm-accounts/internal/core/ports"
)

const defaultCacheTTL = 5 * time.Minute

// CachedUserRepository is a read-through cache in front of a UserRepository.
// Only FindByID is served from Redis; entries never carry the password hash,
// so callers that verify passwords must go through FindByEmail.
//
// Every Update and Delete bumps a per-user version key. A load only writes its
// entry if that version did not move while the store was being read, so a
// mutation racing with a load can never leave the old record cached.
// Key format: user:<id>, user:<id>:version
type CachedUserRepository struct {
	ports.UserRepository
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCachedUserRepository wraps next. Redis failures degrade to next, they are
// never returned to the caller.
func NewCachedUserRepository(next ports.UserRepository, client *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedUserRepository {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedUserRepository{
		UserRepository: next,
		client:         client,
		ttl:            ttl,
		log:            log.With().Str("component", "user_cache").Logger(),
	}
}

func (c *CachedUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	switch {
	case err == nil:
		var u domain.User
		if jerr := json.Unmarshal(raw, &u); jerr == nil {
			metrics.UserCacheLookupsTotal.WithLabelValues("hit").Inc()
			return &u, nil
		}
		c.log.Warn().Int64("user_id", id).Msg("discarding undecodable cache entry")
		metrics.UserCacheLookupsTotal.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.UserCacheLookupsTotal.WithLabelValues("miss").Inc()
	default:
		c.log.Warn().Err(err).Int64("user_id", id).Msg("user cache read failed")
		metrics.UserCacheLookupsTotal.WithLabelValues("error").Inc()
	}

	return c.load(ctx, id)
}

// load reads the store under WATCH on the version key and caches the result
// in the same transaction.
func (c *CachedUserRepository) load(ctx context.Context, id int64) (*domain.User, error) {
	var (
		user    *domain.User
		loadErr error
		loaded  bool
	)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		loaded = true
		user, loadErr = c.UserRepository.FindByID(ctx, id)
		if loadErr != nil {
			return nil
		}
		raw, err := json.Marshal(user)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(id), raw, c.ttl)
			return nil
		})
		return err
	}, c.versionKey(id))

	switch {
	case !loaded:
		c.log.Warn().Err(err).Int64("user_id", id).Msg("user cache unavailable")
		return c.UserRepository.FindByID(ctx, id)
	case errors.Is(err, redis.TxFailedErr):
		c.log.Debug().Int64("user_id", id).Msg("user changed while loading, entry not cached")
	case err != nil:
		c.log.Warn().Err(err).Int64("user_id", id).Msg("user cache write failed")
	}
	return user, loadErr
}

func (c *CachedUserRepository) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	u, err := c.UserRepository.Update(ctx, id, patch)
	c.invalidate(ctx, id)
	return u, err
}

func (c *CachedUserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := c.UserRepository.Delete(ctx, id)
	c.invalidate(ctx, id)
	return deleted, err
}

func (c *CachedUserRepository) Name() string { return "redis" }

func (c *CachedUserRepository) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Flush removes every cached user entry.
func (c *CachedUserRepository) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "user:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("flush user cache: %w", err)
		}
	}
	return iter.Err()
}

func (c *CachedUserRepository) invalidate(ctx context.Context, id int64) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.versionKey(id))
		pipe.Expire(ctx, c.versionKey(id), c.ttl)
		pipe.Del(ctx, c.key(id))
		return nil
	})
	if err != nil {
		c.log.Warn().Err(err).Int64("user_id", id).Msg("user cache invalidation failed")
	}
}

func (c *CachedUserRepository) key(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

func (c *CachedUserRepository) versionKey(id int64) string {
	return fmt.Sprintf("user:%d:version", id)
}
