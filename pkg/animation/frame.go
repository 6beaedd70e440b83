package animation

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Quaternion is a rotation serialized as [x, y, z, w], the layout renderers
// such as three.js expect.
type Quaternion [4]float64

// NewQuaternion converts a mathgl quaternion.
func NewQuaternion(q mgl64.Quat) Quaternion {
	return Quaternion{q.X(), q.Y(), q.Z(), q.W}
}

// Quat converts back to a mathgl quaternion.
func (q Quaternion) Quat() mgl64.Quat {
	return mgl64.Quat{W: q[3], V: mgl64.Vec3{q[0], q[1], q[2]}}
}

// Frame is everything the avatar applier needs for one tick.
type Frame struct {
	Session  string  `json:"session"`
	Seq      uint64  `json:"seq"`
	Elapsed  float64 `json:"elapsed"` // Seconds since start
	Delta    float64 `json:"delta"`   // Seconds since previous frame
	Tracking bool    `json:"tracking"` // A face was observed this tick

	Head     Quaternion `json:"head"`
	Neck     Quaternion `json:"neck"`
	Chest    Quaternion `json:"chest"`
	Position [3]float64 `json:"position"` // Smoothed world offset

	Mouth      float64 `json:"mouth"` // "A" viseme weight
	Blink      float64 `json:"blink"`
	Emotion    string  `json:"emotion"`
	Expression Weights `json:"expression"`
}
