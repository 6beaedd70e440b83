package hub

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second     // No pong for this long drops the client
	pingEvery    = idleTimeout * 9 / 10 // Must be shorter than idleTimeout

	// Observation payloads with a full face mesh run to a few hundred KB.
	readLimit = 512 * 1024
)

// Conn is the subset of a websocket connection the hub needs.
// *websocket.Conn from gofiber satisfies it.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Client is one websocket connection attached to a hub.
type Client struct {
	ID   string
	hub  *Hub
	conn Conn
	send chan Message

	// OnMessage, if set, receives every inbound message. Set before Run.
	OnMessage func(messageType int, data []byte)
}

// NewClient attaches conn to hub. It returns nil, after closing conn, when
// the hub has already stopped.
func NewClient(hub *Hub, conn Conn) *Client {
	c := &Client{
		ID:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan Message, queueSize),
	}
	select {
	case hub.joins <- c:
		return c
	case <-hub.done:
		conn.Close()
		return nil
	}
}

// offer queues m without blocking and reports whether it fit.
// Called only from the hub goroutine.
func (c *Client) offer(m Message) bool {
	select {
	case c.send <- m:
		return true
	default:
		return false
	}
}

// Run pumps messages both ways and returns when the connection closes.
// Call it from the websocket handler; the handler must not return earlier.
func (c *Client) Run() {
	go c.writeLoop()
	c.readLoop()
}

// readLoop dispatches inbound messages and detects disconnection.
func (c *Client) readLoop() {
	defer func() {
		select {
		case c.hub.leaves <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	c.conn.SetReadDeadline(time.Now().Add(idleTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(idleTimeout))
	})

	for {
		mt, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if c.OnMessage != nil {
			c.OnMessage(mt, data)
		}
	}
}

// writeLoop is the only writer on the connection.
func (c *Client) writeLoop() {
	ping := time.NewTicker(pingEvery)
	defer func() {
		ping.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case m, ok := <-c.send:
			if !ok {
				c.write(websocket.CloseMessage, nil)
				return
			}
			if err := c.write(m.opcode(), m.Data); err != nil {
				return
			}
		case <-ping.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(opcode int, data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(opcode, data)
}
