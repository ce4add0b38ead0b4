package utils

// Bit fields are packed MSB first inside a stream of little endian 16 bit words.
// Reads beyond the buffer see zero bits.

// GetBits returns a field of n (1..17) bits starting at bit position pos.
func GetBits(data []byte, pos int, n int, signed bool) int32 {
	word := (pos >> 4) << 1
	window := uint32(SafeByte(data, word+1))<<24 |
		uint32(SafeByte(data, word))<<16 |
		uint32(SafeByte(data, word+3))<<8 |
		uint32(SafeByte(data, word+2))
	window <<= uint(pos & 0xF)

	if signed {
		return int32(window) >> uint(32-n)
	}
	return int32(window >> uint(32-n))
}

type BitReader struct {
	data []byte
	pos  int
}

func NewBitReader(data []byte, pos int) *BitReader {
	return &BitReader{data: data, pos: pos}
}

func (br *BitReader) Pos() int {
	return br.pos
}

// Len is the stream size in bits.
func (br *BitReader) Len() int {
	return len(br.data) * 8
}

func (br *BitReader) Unsigned(n int) int {
	v := GetBits(br.data, br.pos, n, false)
	br.pos += n
	return int(v)
}

func (br *BitReader) Signed(n int) int {
	v := GetBits(br.data, br.pos, n, true)
	br.pos += n
	return int(v)
}

// Width reads a 4 bit field holding (width-1) of the fields that follow it.
func (br *BitReader) Width() int {
	return br.Unsigned(4) + 1
}
