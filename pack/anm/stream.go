package anm

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/bgda-tools/bgda_browser/utils"
)

// Pose is the state of one joint at one frame. Velocities are raw stream
// units; see ROTATION_DIVISOR and Variant.PositionDivisor.
type Pose struct {
	JointNo         int
	FrameNo         int
	Rotation        mgl32.Quat
	AngularVelocity mgl32.Quat
	Position        mgl32.Vec3
	Velocity        mgl32.Vec3
}

func (p Pose) String() string {
	return fmt.Sprintf("joint %d frame %d rot %v angvel %v pos %v vel %v",
		p.JointNo, p.FrameNo, p.Rotation, p.AngularVelocity, p.Position, p.Velocity)
}

// At extrapolates the pose to another frame with its velocities.
func (p Pose) At(frame int, variant Variant) Pose {
	diff := float32(frame - p.FrameNo)
	p.Rotation = utils.QuatAddScaled(p.Rotation, p.AngularVelocity, diff/ROTATION_DIVISOR)
	p.Position = utils.Vec3AddScaled(p.Position, p.Velocity, diff/variant.PositionDivisor())
	p.FrameNo = frame
	return p
}

// rotation and translation channels of a joint update independently
type jointState struct {
	rotation        mgl32.Quat
	angularVelocity mgl32.Quat
	rotFrame        int

	position mgl32.Vec3
	velocity mgl32.Vec3
	posFrame int
}

func (s *jointState) rotationAt(frame int) mgl32.Quat {
	return utils.QuatAddScaled(s.rotation, s.angularVelocity, float32(frame-s.rotFrame)/ROTATION_DIVISOR)
}

func (s *jointState) positionAt(frame int, divisor float32) mgl32.Vec3 {
	return utils.Vec3AddScaled(s.position, s.velocity, float32(frame-s.posFrame)/divisor)
}

// poseTracker turns stream records into pose events.
type poseTracker struct {
	variant Variant
	joints  []jointState
	poses   []Pose
}

func newPoseTracker(variant Variant, numJoints int) *poseTracker {
	return &poseTracker{
		variant: variant,
		joints:  make([]jointState, numJoints),
	}
}

func (pt *poseTracker) initial(joint int, pos mgl32.Vec3, rot mgl32.Quat) {
	pt.joints[joint] = jointState{rotation: rot, position: pos}
	pt.record(joint, 0)
}

// rotate bakes the rotation reached at frame and starts a new angular velocity.
func (pt *poseTracker) rotate(joint, frame int, angVel mgl32.Quat) {
	s := &pt.joints[joint]
	s.rotation = s.rotationAt(frame)
	s.angularVelocity = angVel
	s.rotFrame = frame
	pt.record(joint, frame)
}

func (pt *poseTracker) translate(joint, frame int, vel mgl32.Vec3) {
	s := &pt.joints[joint]
	s.position = s.positionAt(frame, pt.variant.PositionDivisor())
	s.velocity = vel
	s.posFrame = frame
	pt.record(joint, frame)
}

func (pt *poseTracker) snapshot(joint, frame int) Pose {
	s := &pt.joints[joint]
	return Pose{
		JointNo:         joint,
		FrameNo:         frame,
		Rotation:        s.rotationAt(frame),
		AngularVelocity: s.angularVelocity,
		Position:        s.positionAt(frame, pt.variant.PositionDivisor()),
		Velocity:        s.velocity,
	}
}

// record appends an event, or replaces the previous one when it is for
// the same joint and frame.
func (pt *poseTracker) record(joint, frame int) {
	p := pt.snapshot(joint, frame)
	if n := len(pt.poses); n != 0 && pt.poses[n-1].JointNo == joint && pt.poses[n-1].FrameNo == frame {
		pt.poses[n-1] = p
		return
	}
	pt.poses = append(pt.poses, p)
}

// stream quaternions are stored w first
func quatFromWXYZ(w, x, y, z float32) mgl32.Quat {
	return mgl32.Quat{W: w, V: mgl32.Vec3{x, y, z}}
}
