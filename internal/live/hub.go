// Package live pushes presence cards to browsers over websockets so the
// card updates without the page polling the server.
package live

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/devraikou/portfolio/internal/presence"
)

const (
	MessagePresence = "presence"

	defaultPingInterval = 30 * time.Second
	defaultPongWait     = 60 * time.Second
	defaultWriteWait    = 10 * time.Second

	sendBuffer   = 8
	maxReadBytes = 512
)

// Message is the envelope written to every client.
type Message struct {
	Type      string        `json:"type"`
	Data      presence.Card `json:"data"`
	Timestamp time.Time     `json:"timestamp"`
}

// Feed is the source of presence cards. *presence.Poller satisfies it.
type Feed interface {
	Card() presence.Card
	Subscribe(fn func(presence.Card)) (unsubscribe func())
}

// Options tunes connection keepalive. Zero values use the defaults.
type Options struct {
	PingInterval time.Duration
	PongWait     time.Duration
	WriteWait    time.Duration
}

// Hub fans presence cards out to connected websocket clients. Each client
// receives the current card on connect and every card after that. A client
// that cannot keep up is disconnected rather than slowing the poller down.
type Hub struct {
	feed     Feed
	logger   *slog.Logger
	opts     Options
	upgrader websocket.Upgrader

	mu          sync.Mutex
	clients     map[string]*client
	closed      bool
	wg          sync.WaitGroup
	unsubscribe func()
}

func NewHub(feed Feed, opts Options, logger *slog.Logger) *Hub {
	if opts.PingInterval <= 0 {
		opts.PingInterval = defaultPingInterval
	}
	if opts.PongWait <= 0 {
		opts.PongWait = defaultPongWait
	}
	if opts.WriteWait <= 0 {
		opts.WriteWait = defaultWriteWait
	}

	h := &Hub{
		feed:   feed,
		logger: logger,
		opts:   opts,
		// A nil CheckOrigin rejects requests whose Origin host differs from Host.
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[string]*client),
	}
	h.unsubscribe = feed.Subscribe(h.broadcast)
	return h
}

// ServeHTTP upgrades the request and streams cards until the client goes
// away or the hub is closed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.Warn("websocket upgrade failed",
			slog.String("remote", r.RemoteAddr),
			slog.String("origin", r.Header.Get("Origin")),
			slog.String("error", err.Error()),
		)
		return
	}

	c := newClient(uuid.NewString(), conn)
	if !h.register(c) {
		conn.Close()
		return
	}
	defer h.unregister(c)

	h.logger.Info("live client connected",
		slog.String("client", c.id),
		slog.String("remote", r.RemoteAddr),
	)

	// Cards broadcast from here on queue behind the current one.
	_ = conn.SetWriteDeadline(time.Now().Add(h.opts.WriteWait))
	if err := conn.WriteJSON(newMessage(h.feed.Card())); err != nil {
		h.logger.Warn("live client initial write failed",
			slog.String("client", c.id),
			slog.String("error", err.Error()),
		)
		conn.Close()
		return
	}

	go c.readLoop(h.opts.PongWait)
	c.writeLoop(h.opts.PingInterval, h.opts.WriteWait)

	h.logger.Info("live client disconnected", slog.String("client", c.id))
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close stops the subscription, disconnects every client and waits for
// their handlers to return. It is safe to call more than once.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	for _, c := range h.clients {
		c.close()
	}
	h.mu.Unlock()

	h.unsubscribe()
	h.wg.Wait()
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c.id] = c
	h.wg.Add(1)
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()
	c.close()
	h.wg.Done()
}

// broadcast runs on poller goroutines and must not block.
func (h *Hub) broadcast(card presence.Card) {
	msg := newMessage(card)

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("dropping slow live client", slog.String("client", c.id))
			c.close()
		}
	}
}

func newMessage(card presence.Card) Message {
	return Message{Type: MessagePresence, Data: card, Timestamp: time.Now().UTC()}
}
