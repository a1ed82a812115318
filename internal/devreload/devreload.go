// Package devreload runs the development-only WebSocket endpoint that
// tells connected browsers to refresh. It listens one port above the
// main server and never starts outside development.
package devreload

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pingPeriod = 30 * time.Second
)

// Notifier accepts WebSocket clients and pushes reload events to all of
// them.
type Notifier struct {
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	srv     *http.Server
}

func New(log *slog.Logger) *Notifier {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Notifier{
		log: log,
		upgrader: websocket.Upgrader{
			// Local tooling only; the endpoint never runs in production.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Run serves the /reload endpoint on addr until ctx is canceled.
func (n *Notifier) Run(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/reload", n.handleWS)

	n.mu.Lock()
	n.srv = &http.Server{Addr: addr, Handler: mux}
	srv := n.srv
	n.mu.Unlock()

	n.log.Info("dev reload endpoint listening", slog.String("addr", addr))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Broadcast tells every connected client to reload. Dead connections
// are dropped.
func (n *Notifier) Broadcast() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for conn := range n.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
			delete(n.clients, conn)
			_ = conn.Close()
		}
	}
}

// ClientCount reports the number of connected clients.
func (n *Notifier) ClientCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.clients)
}

func (n *Notifier) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := n.upgrader.Upgrade(w, r, nil)
	if err != nil {
		n.log.Debug("websocket upgrade failed", slog.Any("error", err))
		return
	}

	n.mu.Lock()
	n.clients[conn] = struct{}{}
	n.mu.Unlock()

	go n.keepAlive(conn)

	// Drain reads so close frames and pongs are processed.
	go func() {
		defer n.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (n *Notifier) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for range ticker.C {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			n.drop(conn)
			return
		}
	}
}

func (n *Notifier) drop(conn *websocket.Conn) {
	n.mu.Lock()
	if _, ok := n.clients[conn]; ok {
		delete(n.clients, conn)
		_ = conn.Close()
	}
	n.mu.Unlock()
}
