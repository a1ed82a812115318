package devreload_test

import (
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campusweb/internal/devreload"
)

func TestBroadcastReachesClients(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	n := devreload.New(slog.New(slog.DiscardHandler))

	ctx := t.Context()
	go func() { _ = n.Run(ctx, addr) }()

	var conn *websocket.Conn
	require.Eventually(t, func() bool {
		var err error
		conn, _, err = websocket.DefaultDialer.Dial("ws://"+addr+"/reload", nil)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return n.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	n.Broadcast()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "reload", string(msg))
}

func TestBroadcastWithoutClients(t *testing.T) {
	n := devreload.New(nil)
	assert.NotPanics(t, n.Broadcast)
	assert.Zero(t, n.ClientCount())
}
