package anm

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/bgda-tools/bgda_browser/config"
	"github.com/bgda-tools/bgda_browser/utils"
)

const (
	headerNumJoints   = 0x00
	headerMaxFrames   = 0x04
	headerFramePose   = 0x08
	headerBindingPose = 0x0C
	headerSkeletonDef = 0x10
	headerSize        = 0x14
)

// joint index is stored in 6 bits
const MAX_JOINTS = 64

// guards the dense frame table against garbage headers
const MAX_FRAMES = 0x10000

// largest dense table, frames times joints
const MAX_FRAME_SLOTS = 1 << 18

// legacy joint 0x3F ends the stream
const MAX_LEGACY_JOINTS = 0x3F

const (
	ROTATION_DIVISOR = 131072.0

	FRAME_RATE = 30.0
)

var (
	ErrUnsupportedVariant = errors.New("Unsupported animation variant")
	ErrInvalidHeader      = errors.New("Invalid animation header")
	ErrInvalidSkeleton    = errors.New("Invalid skeleton definition")
	ErrJointOutOfRange    = errors.New("Joint index out of range")
	ErrFrameLimit         = errors.New("Animation is too long")
)

type Variant int

const (
	VariantLegacy Variant = iota
	VariantBitstream
)

func VariantForGame(g config.GameType) Variant {
	if g.IsLegacy() {
		return VariantLegacy
	}
	return VariantBitstream
}

func (v Variant) String() string {
	switch v {
	case VariantLegacy:
		return "legacy"
	case VariantBitstream:
		return "bitstream"
	}
	return "unknown"
}

// PositionDivisor scales raw position velocities to units per frame.
func (v Variant) PositionDivisor() float32 {
	if v == VariantLegacy {
		return 512.0
	}
	return 256.0
}

type header struct {
	NumJoints         int
	MaxFrames         int
	FramePoseOffset   int
	BindingPoseOffset int
	SkeletonDefOffset int
}

func parseHeader(data []byte, variant Variant) (*header, error) {
	if len(data) < headerSize {
		return nil, errors.Wrapf(ErrInvalidHeader, "File is too small (%d bytes)", len(data))
	}
	h := &header{
		NumJoints:         int(utils.LEInt32(data, headerNumJoints)),
		FramePoseOffset:   int(utils.LEInt32(data, headerFramePose)),
		BindingPoseOffset: int(utils.LEInt32(data, headerBindingPose)),
		SkeletonDefOffset: int(utils.LEInt32(data, headerSkeletonDef)),
	}
	if variant == VariantBitstream {
		h.MaxFrames = int(utils.LEInt32(data, headerMaxFrames))
		if h.MaxFrames < 0 || h.MaxFrames >= MAX_FRAMES {
			return nil, errors.Wrapf(ErrInvalidHeader, "Frame count %d", h.MaxFrames)
		}
	}
	if h.NumJoints <= 0 || h.NumJoints > MAX_JOINTS {
		return nil, errors.Wrapf(ErrInvalidHeader, "Joint count %d", h.NumJoints)
	}
	if variant == VariantLegacy && h.NumJoints > MAX_LEGACY_JOINTS {
		return nil, errors.Wrapf(ErrInvalidHeader, "Joint count %d collides with stream terminator", h.NumJoints)
	}
	for _, off := range []int{h.FramePoseOffset, h.BindingPoseOffset, h.SkeletonDefOffset} {
		if off < 0 || off > len(data) {
			return nil, errors.Wrapf(ErrInvalidHeader, "Offset 0x%x outside of 0x%x bytes", off, len(data))
		}
	}
	return h, nil
}

type AnmData struct {
	Name      string
	Variant   Variant
	NumJoints int
	NumFrames int

	BindingPose      []mgl32.Vec3
	BindingPoseLocal []mgl32.Vec3
	SkeletonDef      []int
	JointParents     []int

	// sparse events in stream order, frame 0 poses first
	Poses []Pose
	// [frame][joint], local space
	PerFramePoses [][]Pose
	// [frame][joint], world space
	PerFrameFkPoses [][]Pose
	KeyFrames       []*KeyFrame
}

// NewFromData decodes a whole .anm asset.
func NewFromData(data []byte, variant Variant, exlog *utils.Logger) (*AnmData, error) {
	switch variant {
	case VariantLegacy, VariantBitstream:
	default:
		return nil, errors.Wrapf(ErrUnsupportedVariant, "Variant %d", int(variant))
	}

	h, err := parseHeader(data, variant)
	if err != nil {
		return nil, err
	}
	exlog.Printf("anm: %d joints, frame poses 0x%x, binding pose 0x%x, skeleton 0x%x, max frames %d",
		h.NumJoints, h.FramePoseOffset, h.BindingPoseOffset, h.SkeletonDefOffset, h.MaxFrames)

	a := &AnmData{
		Variant:   variant,
		NumJoints: h.NumJoints,
	}
	if err := a.decodeSkeleton(data, h); err != nil {
		return nil, errors.Wrapf(err, "Skeleton")
	}

	pt := newPoseTracker(variant, h.NumJoints)
	if variant == VariantLegacy {
		a.NumFrames, err = decodeLegacy(data, h, pt)
	} else {
		a.NumFrames, err = decodeBitstream(data, h, pt)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Pose stream")
	}
	if a.NumFrames*a.NumJoints > MAX_FRAME_SLOTS {
		return nil, errors.Wrapf(ErrFrameLimit, "%d frames of %d joints", a.NumFrames, a.NumJoints)
	}
	a.Poses = pt.poses
	exlog.Printf("anm: %d frames, %d pose events", a.NumFrames, len(a.Poses))
	exlog.Dump(a.Poses)

	a.PerFramePoses = BuildPerFramePoses(a.Poses, a.NumFrames, a.NumJoints, variant)
	if a.PerFrameFkPoses, err = SolveFK(a.JointParents, a.PerFramePoses); err != nil {
		return nil, err
	}
	a.KeyFrames = CollapseKeyframes(a.Poses, a.NumJoints)
	return a, nil
}

// DecodeRange decodes an asset stored at data[offset:offset+length],
// clamped to the buffer.
func DecodeRange(data []byte, offset, length int, variant Variant, exlog *utils.Logger) (*AnmData, error) {
	if offset < 0 || length < 0 || offset > len(data) {
		return nil, errors.Errorf("Invalid animation range 0x%x+0x%x of 0x%x bytes", offset, length, len(data))
	}
	end := offset + length
	if end > len(data) {
		end = len(data)
	}
	return NewFromData(data[offset:end], variant, exlog)
}
