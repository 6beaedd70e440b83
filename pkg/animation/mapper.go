package animation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/teslashibe/go-avatar/pkg/face"
)

// Emotion labels understood by the expression table.
const (
	EmotionHappy   = "happy"
	EmotionAngry   = "angry"
	EmotionSad     = "sad"
	EmotionNeutral = "neutral"
)

// Pose is a world-space position and orientation.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// IdentityPose is the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

// Signals is what one observation maps to.
type Signals struct {
	Target  Pose
	Mouth   float64
	Emotion string
}

// InitialSignals is the state before any face has been seen.
func InitialSignals() Signals {
	return Signals{
		Target:  IdentityPose(),
		Emotion: EmotionNeutral,
	}
}

// Mapper converts face observations into target pose, mouth and emotion.
type Mapper struct {
	camera *Camera
	config Config
}

// NewMapper creates a mapper projecting through camera.
func NewMapper(camera *Camera, config Config) *Mapper {
	return &Mapper{camera: camera, config: config}
}

// Map converts obs into signals. A nil observation holds prev. Parts of an
// observation that are malformed hold their previous value as well, so NaN
// or Inf never reaches the smoother.
func (m *Mapper) Map(obs *face.Observation, prev Signals) Signals {
	if obs == nil {
		return prev
	}

	out := prev
	if p, ok := m.position(obs.Box); ok {
		out.Target.Position = p
	}
	if r, ok := m.rotation(obs.Rotation); ok {
		out.Target.Rotation = r
	}
	if mouth, ok := m.mouth(obs); ok {
		out.Mouth = mouth
	}
	out.Emotion = m.emotion(obs)
	return out
}

// position reprojects the face box center onto the world plane z = 0.
func (m *Mapper) position(box [4]float64) (mgl64.Vec3, bool) {
	if !finite(box[:]...) {
		return mgl64.Vec3{}, false
	}
	for i := range box {
		box[i] = clamp(box[i], 0, 1)
	}

	ndc := mgl64.Vec3{
		2*box[0] + box[2] - 1,
		-2*box[1] - box[3] + 1,
		0.5,
	}
	u := m.camera.Unproject(ndc)

	c := m.camera.Position
	d := u.Sub(c)
	if d.Len() == 0 {
		return mgl64.Vec3{}, false
	}
	d = d.Normalize()
	if math.Abs(d.Z()) < 1e-9 {
		return mgl64.Vec3{}, false
	}

	k := -c.Z() / d.Z()
	p := c.Add(d.Mul(k))
	if !finite(p.X(), p.Y(), p.Z()) {
		return mgl64.Vec3{}, false
	}
	return p, true
}

// rotation halves the head angles and mirrors pitch and yaw into the
// avatar's facing.
func (m *Mapper) rotation(a face.Angles) (mgl64.Quat, bool) {
	if !finite(a.Pitch, a.Yaw, a.Roll) {
		return mgl64.Quat{}, false
	}
	return eulerToQuat(-0.5*a.Pitch, -0.5*a.Yaw, 0.5*a.Roll), true
}

func (m *Mapper) mouth(obs *face.Observation) (float64, bool) {
	gap, ok := obs.LipGap()
	if !ok || !finite(gap) {
		return 0, false
	}
	return clamp(m.config.MouthScale*gap+m.config.MouthOffset, 0, 1), true
}

// emotion returns a label from the expression table; unknown labels read
// as neutral however confident.
func (m *Mapper) emotion(obs *face.Observation) string {
	top, ok := obs.TopEmotion()
	if !ok || !(top.Score > m.config.EmotionThreshold) {
		return EmotionNeutral
	}
	if _, known := expressionTable[top.Label]; !known {
		return EmotionNeutral
	}
	return top.Label
}
