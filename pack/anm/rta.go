package anm

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/bgda-tools/bgda_browser/utils"
)

const (
	bitstreamEndCount = 0xFF
	// smallest event that can still follow
	bitstreamTailBits = 22
)

func readBitstreamPosition(br *utils.BitReader, scale float32) mgl32.Vec3 {
	width := br.Width()
	return mgl32.Vec3{
		float32(br.Signed(width)) * scale,
		float32(br.Signed(width)) * scale,
		float32(br.Signed(width)) * scale,
	}
}

func readBitstreamRotation(br *utils.BitReader, scale float32) mgl32.Quat {
	width := br.Width()
	w := float32(br.Signed(width)) * scale
	x := float32(br.Signed(width)) * scale
	y := float32(br.Signed(width)) * scale
	z := float32(br.Signed(width)) * scale
	return quatFromWXYZ(w, x, y, z)
}

// decodeBitstream reads the width prefixed bit stream of the later titles.
func decodeBitstream(data []byte, h *header, pt *poseTracker) (int, error) {
	br := utils.NewBitReader(data, h.FramePoseOffset*8)
	for joint := 0; joint < h.NumJoints; joint++ {
		pos := readBitstreamPosition(br, positionScale)
		rot := readBitstreamRotation(br, rotationScale)
		pt.initial(joint, pos, rot)
	}

	frame := 0
	end := br.Len() - bitstreamTailBits
	for br.Pos() < end && frame < h.MaxFrames {
		count := br.Unsigned(8)
		if count == bitstreamEndCount {
			break
		}
		kind := br.Unsigned(1)
		joint := br.Unsigned(6)
		if joint >= h.NumJoints {
			break
		}
		frame += count

		if kind == 0 {
			pt.rotate(joint, frame, readBitstreamRotation(br, 1))
		} else {
			pt.translate(joint, frame, readBitstreamPosition(br, 1))
		}
	}
	return h.MaxFrames + 1, nil
}
