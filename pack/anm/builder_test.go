package anm

import (
	"encoding/binary"
)

type bitWriter struct {
	bits []bool
}

func (bw *bitWriter) put(v int, n int) *bitWriter {
	for i := n - 1; i >= 0; i-- {
		bw.bits = append(bw.bits, (v>>uint(i))&1 != 0)
	}
	return bw
}

// bytes packs bits MSB first into little endian 16 bit words
func (bw *bitWriter) bytes() []byte {
	out := make([]byte, (len(bw.bits)+15)/16*2)
	for i, b := range bw.bits {
		if b {
			bit := uint16(1) << uint(15-i%16)
			out[i/16*2] |= byte(bit)
			out[i/16*2+1] |= byte(bit >> 8)
		}
	}
	return out
}

type testJoint struct {
	bind  [3]int16
	depth byte
}

// buildAnm lays out header, binding pose, skeleton definition and the
// pose stream in that order.
func buildAnm(joints []testJoint, maxFrames int32, stream []byte) []byte {
	bindOff := headerSize
	skelOff := bindOff + len(joints)*bindingPoseStride
	poseOff := (skelOff + len(joints) + 3) &^ 3

	data := make([]byte, poseOff, poseOff+len(stream))
	binary.LittleEndian.PutUint32(data[headerNumJoints:], uint32(len(joints)))
	binary.LittleEndian.PutUint32(data[headerMaxFrames:], uint32(maxFrames))
	binary.LittleEndian.PutUint32(data[headerFramePose:], uint32(poseOff))
	binary.LittleEndian.PutUint32(data[headerBindingPose:], uint32(bindOff))
	binary.LittleEndian.PutUint32(data[headerSkeletonDef:], uint32(skelOff))
	for i, j := range joints {
		for k, v := range j.bind {
			binary.LittleEndian.PutUint16(data[bindOff+i*bindingPoseStride+k*2:], uint16(v))
		}
		data[skelOff+i] = j.depth
	}
	return append(data, stream...)
}

type legacyStream struct {
	buf []byte
}

func (ls *legacyStream) i16(vals ...int16) *legacyStream {
	for _, v := range vals {
		ls.buf = append(ls.buf, byte(v), byte(uint16(v)>>8))
	}
	return ls
}

func (ls *legacyStream) i8(vals ...int8) *legacyStream {
	for _, v := range vals {
		ls.buf = append(ls.buf, byte(v))
	}
	return ls
}

func (ls *legacyStream) event(count byte, sel byte) *legacyStream {
	ls.buf = append(ls.buf, count, sel)
	return ls
}
