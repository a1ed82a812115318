package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campusweb/pkg/session"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *session.RedisStore) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, session.NewRedisStore(client)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	_, store := newTestRedis(t)
	ctx := context.Background()

	userID := uuid.New()
	sess := session.New("tok-redis", time.Hour)
	sess.UserID = &userID
	sess.Set("campus", "main")

	require.NoError(t, store.Create(ctx, sess))

	got, err := store.Get(ctx, "tok-redis")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	require.NotNil(t, got.UserID)
	assert.Equal(t, userID, *got.UserID)

	val, ok := got.GetString("campus")
	assert.True(t, ok)
	assert.Equal(t, "main", val)
}

func TestRedisStoreGetMissing(t *testing.T) {
	_, store := newTestRedis(t)

	_, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestRedisStoreRejectsExpiredWrite(t *testing.T) {
	_, store := newTestRedis(t)

	err := store.Create(context.Background(), session.New("dead", -time.Minute))
	assert.ErrorIs(t, err, session.ErrSessionExpired)
}

func TestRedisStoreKeyTTLExpiry(t *testing.T) {
	mr, store := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, session.New("short", time.Minute)))

	// Redis reaps the key on its own once the TTL passes.
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "short")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestRedisStoreTouch(t *testing.T) {
	_, store := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, session.New("tok-touch", time.Minute)))

	future := time.Now().Add(time.Hour)
	require.NoError(t, store.Touch(ctx, "tok-touch", future))

	got, err := store.Get(ctx, "tok-touch")
	require.NoError(t, err)
	assert.WithinDuration(t, future, got.ExpiresAt, time.Second)
}

func TestRedisStoreDelete(t *testing.T) {
	_, store := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, session.New("tok-del", time.Hour)))
	require.NoError(t, store.Delete(ctx, "tok-del"))

	_, err := store.Get(ctx, "tok-del")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestRedisStoreDeleteExpired(t *testing.T) {
	_, store := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, session.New("soon", 50*time.Millisecond)))
	require.NoError(t, store.Create(ctx, session.New("later", time.Hour)))

	// Wait past the short record's expiry; the index scores are whole
	// seconds, so cross the boundary with margin.
	time.Sleep(1200 * time.Millisecond)

	removed, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = store.Get(ctx, "later")
	assert.NoError(t, err)
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr, store := newTestRedis(t)
	mr.Close()

	_, err := store.Get(context.Background(), "any")
	assert.ErrorIs(t, err, session.ErrStoreUnavailable)

	err = store.Create(context.Background(), session.New("any", time.Hour))
	assert.ErrorIs(t, err, session.ErrStoreUnavailable)
}
