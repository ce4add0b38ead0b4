package anm

import "github.com/go-gl/mathgl/mgl32"

type KeyFrame struct {
	// seconds
	Timestamp      float32
	JointPositions []mgl32.Vec3
	JointRotations []mgl32.Quat
}

func newKeyFrame(frame, numJoints int) *KeyFrame {
	kf := &KeyFrame{
		Timestamp:      float32(frame) / FRAME_RATE,
		JointPositions: make([]mgl32.Vec3, numJoints),
		JointRotations: make([]mgl32.Quat, numJoints),
	}
	for i := range kf.JointRotations {
		kf.JointRotations[i] = mgl32.QuatIdent()
	}
	return kf
}

func (kf *KeyFrame) next(frame int) *KeyFrame {
	n := &KeyFrame{
		Timestamp:      float32(frame) / FRAME_RATE,
		JointPositions: make([]mgl32.Vec3, len(kf.JointPositions)),
		JointRotations: make([]mgl32.Quat, len(kf.JointRotations)),
	}
	copy(n.JointPositions, kf.JointPositions)
	copy(n.JointRotations, kf.JointRotations)
	return n
}

// CollapseKeyframes groups stream ordered events into one keyframe per
// distinct frame. Each keyframe carries every joint, inheriting values
// not set at that frame from the previous keyframe.
func CollapseKeyframes(poses []Pose, numJoints int) []*KeyFrame {
	if len(poses) == 0 {
		return nil
	}

	frame := poses[0].FrameNo
	kf := newKeyFrame(frame, numJoints)
	var keyframes []*KeyFrame
	for _, p := range poses {
		if p.JointNo < 0 || p.JointNo >= numJoints {
			continue
		}
		if p.FrameNo > frame {
			keyframes = append(keyframes, kf)
			frame = p.FrameNo
			kf = kf.next(frame)
		}
		kf.JointRotations[p.JointNo] = p.Rotation.Normalize()
		kf.JointPositions[p.JointNo] = p.Position
	}
	return append(keyframes, kf)
}
