package utils

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Component-wise q + d*k. Not a rotation composition.
func QuatAddScaled(q, d mgl32.Quat, k float32) mgl32.Quat {
	return q.Add(d.Scale(k))
}

func Vec3AddScaled(v, d mgl32.Vec3, k float32) mgl32.Vec3 {
	return v.Add(d.Mul(k))
}

// NormalizeVec3 leaves zero length vectors untouched instead of producing NaN.
func NormalizeVec3(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// QuatToArray gives x, y, z, w order used by glTF.
func QuatToArray(q mgl32.Quat) [4]float32 {
	return [4]float32{q.V[0], q.V[1], q.V[2], q.W}
}
