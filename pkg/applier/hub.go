package applier

import (
	"context"

	"github.com/teslashibe/go-avatar/pkg/animation"
	"github.com/teslashibe/go-avatar/pkg/hub"
)

// Hub broadcasts every frame as JSON to the hub's websocket clients.
type Hub struct {
	hub *hub.Hub
}

// NewHub creates an applier over h.
func NewHub(h *hub.Hub) *Hub {
	return &Hub{hub: h}
}

// Apply implements animation.Applier. Slow clients are dropped by the hub,
// never waited on.
func (a *Hub) Apply(_ context.Context, frame animation.Frame) error {
	return a.hub.BroadcastJSON(frame)
}
