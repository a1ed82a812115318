package session

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix     = "session:"
	redisExpirationKey = "session_expirations"
)

// RedisStore implements Store on Redis. Records live under
// "session:<token>" with a TTL matching their expiry; a sorted set
// indexed by expiry time backs the bulk sweep so the cleaner can report
// how many records it removed.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(token string) string {
	return redisKeyPrefix + token
}

// Create stores a new session.
func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	return s.write(ctx, sess)
}

// Update replaces an existing session record.
func (s *RedisStore) Update(ctx context.Context, sess *Session) error {
	return s.write(ctx, sess)
}

func (s *RedisStore) write(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return ErrInvalidSession
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrSessionExpired
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Join(ErrInvalidSession, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(sess.Token), data, ttl)
	pipe.ZAdd(ctx, redisExpirationKey, redis.Z{
		Score:  float64(sess.ExpiresAt.Unix()),
		Member: sess.Token,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return s.wrap(err)
	}
	return nil
}

// Get retrieves a session by token. Redis expires keys on its own, so a
// vanished key reads as not found; the explicit expiry check covers the
// window before Redis reaps it.
func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	val, err := s.client.Get(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, s.wrap(err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}

	if sess.IsExpired() {
		_ = s.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	return &sess, nil
}

// Touch moves only the expiry time of an existing session.
func (s *RedisStore) Touch(ctx context.Context, token string, expiresAt time.Time) error {
	sess, err := s.Get(ctx, token)
	if err != nil {
		return err
	}
	sess.ExpiresAt = expiresAt
	return s.write(ctx, sess)
}

// Delete removes a session by token.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(token))
	pipe.ZRem(ctx, redisExpirationKey, token)
	if _, err := pipe.Exec(ctx); err != nil {
		return s.wrap(err)
	}
	return nil
}

// DeleteExpired sweeps the expiry index and removes any record whose
// key Redis has not already reaped.
func (s *RedisStore) DeleteExpired(ctx context.Context) (int64, error) {
	now := strconv.FormatInt(time.Now().Unix(), 10)

	tokens, err := s.client.ZRangeByScore(ctx, redisExpirationKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: now,
	}).Result()
	if err != nil {
		return 0, s.wrap(err)
	}
	if len(tokens) == 0 {
		return 0, nil
	}

	keys := make([]string, len(tokens))
	for i, token := range tokens {
		keys[i] = s.key(token)
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.ZRemRangeByScore(ctx, redisExpirationKey, "-inf", now)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, s.wrap(err)
	}

	return int64(len(tokens)), nil
}

func (s *RedisStore) wrap(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(ErrStoreUnavailable, err)
}
