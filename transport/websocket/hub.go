package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	DefaultSendBuffer   = 16
	DefaultWriteTimeout = 5 * time.Second

	maxMessageSize = 512
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
)

type Options struct {
	SendBuffer   int
	WriteTimeout time.Duration
}

// Hub is the push channel: every connected viewer gets each broadcast board.
type Hub struct {
	logger   *slog.Logger
	opts     Options
	upgrader websocket.Upgrader

	mu          sync.RWMutex
	subscribers map[string]*subscriber
}

type subscriber struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

func NewHub(logger *slog.Logger, opts Options) *Hub {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = DefaultSendBuffer
	}

	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = DefaultWriteTimeout
	}

	return &Hub{
		logger: logger.With("component", "websocket"),
		opts:   opts,
		upgrader: websocket.Upgrader{
			// viewers are served from the same origin or from file://
			CheckOrigin: func(*http.Request) bool { return true },
		},
		subscribers: make(map[string]*subscriber),
	}
}

// ServeHTTP - upgrades the request and keeps the viewer subscribed until it disconnects.
func (that *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("failed to upgrade connection", "error", err)
		return
	}

	sub := &subscriber{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, that.opts.SendBuffer),
	}

	that.register(sub)
	log.Info("viewer connected", "subscriberID", sub.id)

	go that.writePump(sub)
	that.readPump(sub)
}

// Broadcast - queues the payload for every viewer. A viewer whose queue is full misses it.
func (that *Hub) Broadcast(_ context.Context, payload []byte) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, sub := range that.subscribers {
		select {
		case sub.send <- payload:
		default:
			that.logger.Warn("viewer is too slow, dropping board", "subscriberID", sub.id)
		}
	}
}

func (that *Hub) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()
	return len(that.subscribers)
}

// Close - disconnects every viewer.
func (that *Hub) Close() {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, sub := range that.subscribers {
		_ = sub.conn.Close()
	}
}

func (that *Hub) register(sub *subscriber) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.subscribers[sub.id] = sub
}

func (that *Hub) unregister(sub *subscriber) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.subscribers[sub.id]; !ok {
		return
	}

	delete(that.subscribers, sub.id)
	close(sub.send)
}

// readPump - viewers only listen; reads exist to notice pongs and disconnects.
func (that *Hub) readPump(sub *subscriber) {
	defer func() {
		that.unregister(sub)
		_ = sub.conn.Close()
		that.logger.Info("viewer disconnected", "subscriberID", sub.id)
	}()

	sub.conn.SetReadLimit(maxMessageSize)
	_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				that.logger.Warn("viewer connection lost", "subscriberID", sub.id, "error", err)
			}
			return
		}
	}
}

func (that *Hub) writePump(sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = sub.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(that.opts.WriteTimeout))
			if !ok {
				_ = sub.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := sub.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				that.logger.Warn("failed to send board", "subscriberID", sub.id, "error", err)
				return
			}
		case <-ticker.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(that.opts.WriteTimeout))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
