package animation

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is the read-only perspective camera the avatar is viewed through.
// It is fixed at startup; resizing the output does not change it.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	// Projection parameters
	FOV         float64 // Vertical field of view in degrees
	AspectRatio float64
	NearPlane   float64
	FarPlane    float64

	// Cached matrices
	viewMatrix       mgl64.Mat4
	projectionMatrix mgl64.Mat4
	unprojectMatrix  mgl64.Mat4
}

// NewCamera creates a new camera
func NewCamera(position, target, up mgl64.Vec3, fov, aspect, near, far float64) *Camera {
	c := &Camera{
		Position:    position,
		Target:      target,
		Up:          up,
		FOV:         fov,
		AspectRatio: aspect,
		NearPlane:   near,
		FarPlane:    far,
	}
	c.updateMatrices()
	return c
}

// NewPortraitCamera frames the avatar's head and shoulders: a 30° lens at eye
// height, 0.77m in front of the model, looking back along +Z.
func NewPortraitCamera(aspect float64) *Camera {
	return NewCamera(
		mgl64.Vec3{0, 1.45, -0.77},
		mgl64.Vec3{0, 1.45, 0},
		mgl64.Vec3{0, 1, 0},
		30.0,
		aspect,
		0.1, 100.0,
	)
}

// ViewMatrix returns the view matrix
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix
func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	return c.projectionMatrix
}

func (c *Camera) updateMatrices() {
	c.viewMatrix = mgl64.LookAtV(c.Position, c.Target, c.Up)
	c.projectionMatrix = mgl64.Perspective(
		mgl64.DegToRad(c.FOV),
		c.AspectRatio,
		c.NearPlane,
		c.FarPlane,
	)
	c.unprojectMatrix = c.projectionMatrix.Mul4(c.viewMatrix).Inv()
}

// Unproject maps a point in normalized device coordinates to world space.
func (c *Camera) Unproject(ndc mgl64.Vec3) mgl64.Vec3 {
	v := c.unprojectMatrix.Mul4x1(ndc.Vec4(1))
	if v.W() == 0 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v.W())
}

// Forward returns the camera's forward direction
func (c *Camera) Forward() mgl64.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}
