package applier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/teslashibe/go-avatar/internal/httpc"
	"github.com/teslashibe/go-avatar/pkg/animation"
	"github.com/teslashibe/go-avatar/pkg/debug"
)

// RemoteConfig configures the external renderer connection.
type RemoteConfig struct {
	URL          string        // ws:// or wss:// endpoint of the renderer
	DialTimeout  time.Duration // Per connection attempt
	WriteTimeout time.Duration // Per frame
}

// DefaultRemoteConfig returns sensible timeouts for a LAN renderer.
func DefaultRemoteConfig(url string) RemoteConfig {
	return RemoteConfig{
		URL:          url,
		DialTimeout:  5 * time.Second,
		WriteTimeout: 100 * time.Millisecond, // Several frames at 60Hz
	}
}

// retryInterval spaces reconnect attempts after a failed dial.
const retryInterval = time.Second

// Remote pushes frames as JSON text messages to an external renderer.
// A failed write drops the connection. Reconnects happen in the
// background; frames applied while disconnected are dropped.
type Remote struct {
	config RemoteConfig
	dialer *websocket.Dialer

	// ctx bounds background dials and is cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	conn     *websocket.Conn
	dialing  bool
	nextDial time.Time
	closed   bool
}

func newRemote(config RemoteConfig) *Remote {
	ctx, cancel := context.WithCancel(context.Background())
	return &Remote{
		config: config,
		dialer: httpc.NewDialer(config.DialTimeout),
		ctx:    ctx,
		cancel: cancel,
	}
}

// DialRemote connects to the renderer. The first dial is synchronous so a
// bad URL fails at startup.
func DialRemote(ctx context.Context, config RemoteConfig) (*Remote, error) {
	r := newRemote(config)
	conn, err := r.dial(ctx)
	if err != nil {
		r.cancel()
		return nil, err
	}
	r.conn = conn
	return r, nil
}

func (r *Remote) dial(ctx context.Context) (*websocket.Conn, error) {
	if r.config.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.DialTimeout)
		defer cancel()
	}

	conn, resp, err := r.dialer.DialContext(ctx, r.config.URL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("%w: %s (status %d): %v", ErrRendererUnreachable, r.config.URL, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrRendererUnreachable, r.config.URL, err)
	}
	debug.Log("🔌 Renderer connected: %s\n", r.config.URL)

	// Control frames are only processed while reading.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return conn, nil
}

// redial starts a background dial unless one is running or the retry
// interval has not passed. Must be called with mu held.
func (r *Remote) redial() {
	if r.dialing || time.Now().Before(r.nextDial) {
		return
	}
	r.dialing = true

	go func() {
		conn, err := r.dial(r.ctx)

		r.mu.Lock()
		defer r.mu.Unlock()
		r.dialing = false
		switch {
		case err != nil:
			r.nextDial = time.Now().Add(retryInterval)
			debug.Log("🔌 Renderer redial failed: %v\n", err)
		case r.closed:
			_ = conn.Close()
		default:
			r.conn = conn
		}
	}()
}

// Apply implements animation.Applier. It never waits on a dial: while
// disconnected it schedules a reconnect and reports the frame as dropped.
func (r *Remote) Apply(ctx context.Context, frame animation.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if r.conn == nil {
		r.redial()
		return fmt.Errorf("%w: %s: reconnecting, frame %d dropped", ErrRendererUnreachable, r.config.URL, frame.Seq)
	}

	if r.config.WriteTimeout > 0 {
		_ = r.conn.SetWriteDeadline(time.Now().Add(r.config.WriteTimeout))
	}
	if err := r.conn.WriteJSON(frame); err != nil {
		_ = r.conn.Close()
		r.conn = nil
		return fmt.Errorf("write frame %d: %w", frame.Seq, err)
	}
	return nil
}

// Close sends a close frame, releases the connection and stops any
// reconnect in flight.
func (r *Remote) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	r.cancel()
	if r.conn == nil {
		return nil
	}

	_ = r.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(r.config.WriteTimeout))
	err := r.conn.Close()
	r.conn = nil
	return err
}
