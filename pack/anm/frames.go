package anm

import "github.com/go-gl/mathgl/mgl32"

// BuildPerFramePoses expands sparse events into a [frame][joint] table.
// Events at or past numFrames are ignored; a later event for the same
// slot wins. Empty slots continue the joint's previous frame with its
// velocities, or hold the identity pose when the joint has no history.
func BuildPerFramePoses(poses []Pose, numFrames, numJoints int, variant Variant) [][]Pose {
	if numFrames <= 0 || numJoints <= 0 {
		return nil
	}

	table := make([][]Pose, numFrames)
	set := make([][]bool, numFrames)
	for f := range table {
		table[f] = make([]Pose, numJoints)
		set[f] = make([]bool, numJoints)
	}

	for _, p := range poses {
		if p.FrameNo < 0 || p.FrameNo >= numFrames || p.JointNo < 0 || p.JointNo >= numJoints {
			continue
		}
		table[p.FrameNo][p.JointNo] = p
		set[p.FrameNo][p.JointNo] = true
	}

	for f := range table {
		for j := range table[f] {
			if set[f][j] {
				continue
			}
			if f == 0 {
				table[f][j] = Pose{JointNo: j, FrameNo: f, Rotation: mgl32.QuatIdent()}
			} else {
				table[f][j] = table[f-1][j].At(f, variant)
			}
		}
	}
	return table
}
