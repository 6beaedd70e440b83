package animation

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Joints are the rotations applied to the avatar's upper body.
type Joints struct {
	Head  mgl64.Quat
	Neck  mgl64.Quat
	Chest mgl64.Quat
}

// Smoother exponentially eases a persistent pose toward the latest target.
type Smoother struct {
	coef float64
	lean float64
	pose Pose
}

// NewSmoother starts at the origin with no rotation.
func NewSmoother(config Config) *Smoother {
	return &Smoother{
		coef: config.SmoothingCoef,
		lean: config.LeanCoef,
		pose: IdentityPose(),
	}
}

// Update moves the smoothed pose a fixed fraction toward target. It runs
// every tick, held target or not, so motion stays continuous.
func (s *Smoother) Update(target Pose) {
	s.pose.Position = lerpVec(s.pose.Position, target.Position, s.coef)
	s.pose.Rotation = slerp(s.pose.Rotation, target.Rotation, s.coef).Normalize()
}

// Pose returns the current smoothed pose.
func (s *Smoother) Pose() Pose {
	return s.pose
}

// Derive splits the smoothed rotation across head and neck (half each) and
// leans the body into lateral movement: head and neck tilt toward the offset
// while the chest tilts away from it.
func (s *Smoother) Derive() Joints {
	x := s.pose.Position.X()
	half := slerp(mgl64.QuatIdent(), s.pose.Rotation, 0.5)

	return Joints{
		Head:  addTwist(half, 0.5*s.lean*x),
		Neck:  addTwist(half, 0.5*s.lean*x),
		Chest: mgl64.QuatRotate(-s.lean*x, axisZ),
	}
}
