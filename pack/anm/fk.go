package anm

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// SolveFK composes local poses into world space. parents[j] must be -1 or
// precede j. Input is not modified.
func SolveFK(parents []int, frames [][]Pose) ([][]Pose, error) {
	for j, p := range parents {
		if p >= j || p < -1 {
			return nil, errors.Wrapf(ErrInvalidSkeleton, "Joint %d has parent %d", j, p)
		}
	}

	result := make([][]Pose, len(frames))
	for f, locals := range frames {
		if len(locals) > len(parents) {
			return nil, errors.Wrapf(ErrJointOutOfRange, "Frame %d has %d joints, skeleton %d", f, len(locals), len(parents))
		}
		world := make([]Pose, len(locals))
		for j, local := range locals {
			parentPos := mgl32.Vec3{}
			parentRot := mgl32.QuatIdent()
			if p := parents[j]; p >= 0 {
				parentPos = world[p].Position
				parentRot = world[p].Rotation
			}

			world[j] = Pose{
				JointNo:  j,
				FrameNo:  local.FrameNo,
				Position: parentRot.Rotate(local.Position).Add(parentPos),
				Rotation: parentRot.Mul(local.Rotation.Normalize()).Normalize(),
			}
		}
		result[f] = world
	}
	return result, nil
}
