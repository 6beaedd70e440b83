package hub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/teslashibe/go-avatar/internal/log"
)

// queueSize bounds both the hub inbox and each client's outbox.
const queueSize = 256

// Hub owns a set of clients. Only Run touches client queues; ClientCount
// reads the set under mu.
type Hub struct {
	logger *slog.Logger

	inbox  chan Message
	joins  chan *Client
	leaves chan *Client
	done   chan struct{}

	mu      sync.RWMutex
	clients map[*Client]struct{}

	// retain replays last to every new client.
	retain bool
	last   *Message
}

// New creates a hub. name tags its log lines.
func New(name string) *Hub {
	return &Hub{
		logger:  log.Component("hub").With("hub", name),
		inbox:   make(chan Message, queueSize),
		joins:   make(chan *Client),
		leaves:  make(chan *Client),
		done:    make(chan struct{}),
		clients: make(map[*Client]struct{}),
	}
}

// NewRetaining creates a hub that greets each new client with the most
// recent message, so a late dashboard shows the current pose at once.
func NewRetaining(name string) *Hub {
	h := New(name)
	h.retain = true
	return h
}

// Run serves joins, leaves and broadcasts until ctx is done, then closes
// every client's queue and Done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case c := <-h.joins:
			h.add(c)
		case c := <-h.leaves:
			h.remove(c, "client disconnected")
		case m := <-h.inbox:
			h.fanout(m)
		}
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	if h.last != nil {
		c.offer(*h.last)
	}
	h.logger.Info("client connected", "client", c.ID, "total", n)
}

// remove closes c's queue once; later calls for the same client are no-ops.
func (h *Hub) remove(c *Client, reason string) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.logger.Info(reason, "client", c.ID, "remaining", n)
	}
}

func (h *Hub) fanout(m Message) {
	if h.retain {
		h.last = &m
	}

	h.mu.RLock()
	var slow []*Client
	for c := range h.clients {
		if !c.offer(m) {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.remove(c, "dropped slow client")
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	for c := range h.clients {
		close(c.send)
	}
	clear(h.clients)
	h.mu.Unlock()
}

// Done is closed when Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Broadcast queues m for every client. It never blocks; when the inbox is
// full the message is dropped.
func (h *Hub) Broadcast(m Message) {
	select {
	case h.inbox <- m:
	default:
		h.logger.Warn("inbox full, dropping message")
	}
}

// BroadcastJSON encodes v and broadcasts it as text.
func (h *Hub) BroadcastJSON(v any) error {
	m, err := JSON(v)
	if err != nil {
		return err
	}
	h.Broadcast(m)
	return nil
}

// BroadcastBinary broadcasts raw bytes such as camera frames.
func (h *Hub) BroadcastBinary(data []byte) {
	h.Broadcast(Binary(data))
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
