package utils

import "encoding/binary"

// Truncated assets are common, every reader here zero fills
// instead of failing on short input.

func SafeByte(data []byte, off int) byte {
	if off < 0 || off >= len(data) {
		return 0
	}
	return data[off]
}

func safeSlice(data []byte, off int, size int) []byte {
	if off >= 0 && off+size <= len(data) {
		return data[off : off+size]
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = SafeByte(data, off+i)
	}
	return buf
}

func LEUint16(data []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(safeSlice(data, off, 2))
}

func LEInt16(data []byte, off int) int16 {
	return int16(LEUint16(data, off))
}

func LEUint32(data []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(safeSlice(data, off, 4))
}

func LEInt32(data []byte, off int) int32 {
	return int32(LEUint32(data, off))
}

func Int8(data []byte, off int) int8 {
	return int8(SafeByte(data, off))
}
