// Package httpc provides network clients with sensible defaults.
// Use this instead of websocket.DefaultDialer to ensure timeouts are set.
package httpc

import (
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Default timeouts for network operations.
const (
	DefaultConnectTimeout   = 10 * time.Second
	DefaultKeepAlive        = 30 * time.Second
	DefaultHandshakeTimeout = 10 * time.Second
)

// NewDialer creates a websocket dialer that gives up on the TCP connect and
// the HTTP upgrade after connectTimeout each. Zero uses the defaults.
func NewDialer(connectTimeout time.Duration) *websocket.Dialer {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	handshake := DefaultHandshakeTimeout
	if connectTimeout < handshake {
		handshake = connectTimeout
	}

	return &websocket.Dialer{
		Proxy: http.ProxyFromEnvironment,
		NetDialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: DefaultKeepAlive,
		}).DialContext,
		HandshakeTimeout:  handshake,
		EnableCompression: true, // Frames are repetitive JSON
	}
}
