package httpc

import (
	"testing"
	"time"
)

func TestNewDialer(t *testing.T) {
	tests := []struct {
		name      string
		timeout   time.Duration
		handshake time.Duration
	}{
		{"default", 0, DefaultHandshakeTimeout},
		{"short connect caps handshake", 2 * time.Second, 2 * time.Second},
		{"long connect keeps handshake", time.Minute, DefaultHandshakeTimeout},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDialer(tc.timeout)
			if d.HandshakeTimeout != tc.handshake {
				t.Errorf("HandshakeTimeout = %v, want %v", d.HandshakeTimeout, tc.handshake)
			}
			if d.NetDialContext == nil {
				t.Error("Expected NetDialContext to be set")
			}
		})
	}
}
