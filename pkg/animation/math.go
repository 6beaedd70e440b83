package animation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

// clamp limits a value to a range
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// lerpVec moves a toward b by t.
func lerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// slerp interpolates along the shortest arc. mgl64.QuatSlerp does not flip
// the hemisphere on its own.
func slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t)
}

// eulerToQuat builds a rotation from XYZ-ordered Euler angles (Rx * Ry * Rz).
func eulerToQuat(x, y, z float64) mgl64.Quat {
	return mgl64.QuatRotate(x, axisX).
		Mul(mgl64.QuatRotate(y, axisY)).
		Mul(mgl64.QuatRotate(z, axisZ)).
		Normalize()
}

// quatToEuler decomposes a rotation into XYZ-ordered Euler angles.
func quatToEuler(q mgl64.Quat) (x, y, z float64) {
	m := q.Normalize().Mat4()
	m13 := clamp(m.At(0, 2), -1, 1)

	y = math.Asin(m13)
	if math.Abs(m13) < 0.9999999 {
		x = math.Atan2(-m.At(1, 2), m.At(2, 2))
		z = math.Atan2(-m.At(0, 1), m.At(0, 0))
	} else {
		// Gimbal lock: fold everything into X.
		x = math.Atan2(m.At(2, 1), m.At(1, 1))
		z = 0
	}
	return x, y, z
}

// addTwist adds angle to the Z Euler component of q.
func addTwist(q mgl64.Quat, angle float64) mgl64.Quat {
	x, y, z := quatToEuler(q)
	return eulerToQuat(x, y, z+angle)
}

// angleBetween returns the rotation angle taking a to b (radians).
func angleBetween(a, b mgl64.Quat) float64 {
	rel := a.Normalize().Conjugate().Mul(b.Normalize())
	return 2 * math.Atan2(rel.V.Len(), math.Abs(rel.W))
}
