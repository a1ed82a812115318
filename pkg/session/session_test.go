package session_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/campuskit/campusweb/pkg/session"
)

func TestSessionIdentity(t *testing.T) {
	t.Run("fresh session is anonymous", func(t *testing.T) {
		sess := session.New("tok", time.Hour)

		id := sess.Identity()
		assert.False(t, id.IsAuthenticated())

		_, ok := id.UserID()
		assert.False(t, ok)
	})

	t.Run("user id makes it authenticated", func(t *testing.T) {
		userID := uuid.New()
		sess := session.New("tok", time.Hour)
		sess.UserID = &userID

		id := sess.Identity()
		assert.True(t, id.IsAuthenticated())

		got, ok := id.UserID()
		assert.True(t, ok)
		assert.Equal(t, userID, got)
	})

	t.Run("expiry overrides user id", func(t *testing.T) {
		userID := uuid.New()
		sess := session.New("tok", -time.Minute)
		sess.UserID = &userID

		assert.True(t, sess.IsExpired())
		assert.False(t, sess.Identity().IsAuthenticated())
	})

	t.Run("nil session is anonymous", func(t *testing.T) {
		var sess *session.Session
		assert.False(t, sess.Identity().IsAuthenticated())
	})
}

func TestSessionData(t *testing.T) {
	sess := session.New("tok", time.Hour)

	sess.Set("theme", "dark")
	val, ok := sess.GetString("theme")
	assert.True(t, ok)
	assert.Equal(t, "dark", val)

	_, ok = sess.Get("absent")
	assert.False(t, ok)

	sess.Delete("theme")
	_, ok = sess.Get("theme")
	assert.False(t, ok)
}
