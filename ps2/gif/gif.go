package gif

import (
	"encoding/binary"
	"fmt"
)

const TAG_SIZE = 0x10

// Primitive types, low 3 bits of PRIM
const (
	PRIM_POINT = iota
	PRIM_LINE
	PRIM_LINE_STRIP
	PRIM_TRIANGLE
	PRIM_TRIANGLE_STRIP
	PRIM_TRIANGLE_FAN
	PRIM_SPRITE
)

const (
	FLG_PACKED = iota
	FLG_REGLIST
	FLG_IMAGE
)

type Tag struct {
	Lo uint64
	Hi uint64
}

func (t Tag) NLoop() uint16 {
	return uint16(t.Lo & 0x7fff)
}

func (t Tag) EOP() bool {
	return (t.Lo>>15)&1 != 0
}

func (t Tag) Pre() bool {
	return (t.Lo>>46)&1 != 0
}

func (t Tag) Prim() uint16 {
	return uint16((t.Lo >> 47) & 0x7ff)
}

func (t Tag) PrimType() uint8 {
	return uint8(t.Prim() & 7)
}

func (t Tag) Flg() uint8 {
	return uint8((t.Lo >> 58) & 3)
}

// NReg is the register count per loop, a raw value of 0 means 16.
func (t Tag) NReg() uint8 {
	n := uint8((t.Lo >> 60) & 0xf)
	if n == 0 {
		return 16
	}
	return n
}

func (t Tag) Reg(i int) uint8 {
	return uint8((t.Hi >> (uint(i) * 4)) & 0xf)
}

func (t Tag) Regs() []uint8 {
	regs := make([]uint8, t.NReg())
	for i := range regs {
		regs[i] = t.Reg(i)
	}
	return regs
}

func (t Tag) String() string {
	return fmt.Sprintf("GifTag{NLoop:%d; EOP:%t; Pre:%t; Prim:0x%.3x; Flg:%d; NReg:%d; Regs:%v}",
		t.NLoop(), t.EOP(), t.Pre(), t.Prim(), t.Flg(), t.NReg(), t.Regs())
}

// NewTag parses 16 bytes, shorter input is zero extended.
func NewTag(b []byte) Tag {
	var raw [TAG_SIZE]byte
	copy(raw[:], b)
	return Tag{
		Lo: binary.LittleEndian.Uint64(raw[0:]),
		Hi: binary.LittleEndian.Uint64(raw[8:]),
	}
}
