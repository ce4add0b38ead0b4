package anm

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/bgda-tools/bgda_browser/utils"
)

const bindingPoseStride = 8

// binding pose is stored negated
const bindingPoseScale = -1.0 / 64.0

func (a *AnmData) decodeSkeleton(data []byte, h *header) error {
	a.BindingPose = make([]mgl32.Vec3, h.NumJoints)
	for i := range a.BindingPose {
		off := h.BindingPoseOffset + i*bindingPoseStride
		a.BindingPose[i] = mgl32.Vec3{
			float32(utils.LEInt16(data, off)) * bindingPoseScale,
			float32(utils.LEInt16(data, off+2)) * bindingPoseScale,
			float32(utils.LEInt16(data, off+4)) * bindingPoseScale,
		}
	}

	a.SkeletonDef = make([]int, h.NumJoints)
	for i := range a.SkeletonDef {
		a.SkeletonDef[i] = int(utils.SafeByte(data, h.SkeletonDefOffset+i))
	}

	parents, err := ParentsFromSkeletonDef(a.SkeletonDef)
	if err != nil {
		return err
	}
	a.JointParents = parents
	a.BindingPoseLocal = LocalBindingPose(a.BindingPose, parents)
	return nil
}

// ParentsFromSkeletonDef replays the depth stack of the skeleton definition.
// Entry i is the depth of joint i; its parent is the last joint seen one
// level above. Root joints get -1. Every parent precedes its child.
func ParentsFromSkeletonDef(def []int) ([]int, error) {
	path := make([]int, len(def)+1)
	set := make([]bool, len(def)+1)
	path[0] = -1
	set[0] = true

	parents := make([]int, len(def))
	for i, depth := range def {
		if depth < 0 || depth >= len(path) || !set[depth] {
			return nil, errors.Wrapf(ErrInvalidSkeleton, "Joint %d has depth %d with no parent level", i, depth)
		}
		parents[i] = path[depth]
		if depth+1 < len(path) {
			path[depth+1] = i
			set[depth+1] = true
		}
	}
	return parents, nil
}

// LocalBindingPose gives each joint's binding offset from its parent.
// Roots keep their absolute binding position.
func LocalBindingPose(bind []mgl32.Vec3, parents []int) []mgl32.Vec3 {
	local := make([]mgl32.Vec3, len(bind))
	for i, p := range parents {
		if p < 0 {
			local[i] = bind[i]
		} else {
			local[i] = bind[i].Sub(bind[p])
		}
	}
	return local
}
