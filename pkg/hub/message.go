// Package hub fans websocket messages out to many clients from one
// goroutine, so producers never block on slow readers.
package hub

import (
	"encoding/json"

	"github.com/gofiber/websocket/v2"
)

// Message is one websocket frame queued for every client.
type Message struct {
	Binary bool
	Data   []byte
}

// Text wraps pre-encoded JSON or text.
func Text(data []byte) Message {
	return Message{Data: data}
}

// Binary wraps raw bytes such as JPEG previews.
func Binary(data []byte) Message {
	return Message{Binary: true, Data: data}
}

// JSON encodes v as a text message.
func JSON(v any) (Message, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Message{}, err
	}
	return Text(data), nil
}

// opcode returns the websocket message type for m.
func (m Message) opcode() int {
	if m.Binary {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}
