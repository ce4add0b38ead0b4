package anm

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/bgda-tools/bgda_browser/utils"
)

const (
	legacyFramePoseSize = 14
	legacyEndJoint      = 0x3F

	legacySelJoint     = 0x3F
	legacySelByteSized = 0x40
	legacySelRotation  = 0x80

	positionScale = 1.0 / 64.0
	rotationScale = 1.0 / 4096.0
)

// decodeLegacy reads the byte oriented stream of Dark Alliance.
func decodeLegacy(data []byte, h *header, pt *poseTracker) (int, error) {
	off := h.FramePoseOffset
	for joint := 0; joint < h.NumJoints; joint++ {
		pos := mgl32.Vec3{
			float32(utils.LEInt16(data, off)) * positionScale,
			float32(utils.LEInt16(data, off+2)) * positionScale,
			float32(utils.LEInt16(data, off+4)) * positionScale,
		}
		rot := quatFromWXYZ(
			float32(utils.LEInt16(data, off+6))*rotationScale,
			float32(utils.LEInt16(data, off+8))*rotationScale,
			float32(utils.LEInt16(data, off+10))*rotationScale,
			float32(utils.LEInt16(data, off+12))*rotationScale,
		)
		pt.initial(joint, pos, rot)
		off += legacyFramePoseSize
	}

	frame := 0
	for off < len(data) {
		count := int(utils.SafeByte(data, off))
		sel := utils.SafeByte(data, off+1)
		off += 2

		joint := int(sel & legacySelJoint)
		if joint == legacyEndJoint {
			break
		}
		if joint >= h.NumJoints {
			return 0, errors.Wrapf(ErrJointOutOfRange, "Joint %d of %d at 0x%x", joint, h.NumJoints, off-2)
		}
		frame += count
		if frame >= MAX_FRAMES {
			return 0, errors.Wrapf(ErrFrameLimit, "Frame %d at 0x%x", frame, off-2)
		}

		byteSized := sel&legacySelByteSized != 0
		field := func() float32 {
			if byteSized {
				v := utils.Int8(data, off)
				off++
				return float32(v)
			}
			v := utils.LEInt16(data, off)
			off += 2
			return float32(v)
		}

		if sel&legacySelRotation != 0 {
			w := field()
			x := field()
			y := field()
			z := field()
			pt.rotate(joint, frame, quatFromWXYZ(w, x, y, z))
		} else {
			x := field()
			y := field()
			z := field()
			pt.translate(joint, frame, mgl32.Vec3{x, y, z})
		}
	}
	return frame + 1, nil
}
