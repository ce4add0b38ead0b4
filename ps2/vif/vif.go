package vif

import "fmt"

type VifCode uint32

const (
	VIF_CMD_NOP    = 0x00 // No Operation
	VIF_CMD_STCYCL = 0x01 // Sets CYCLE register
	VIF_CMD_ITOP   = 0x04 // Sets ITOPS register
	VIF_CMD_STMOD  = 0x05 // Sets MODE register
	VIF_CMD_MSCAL  = 0x14 // Activate microprogram
	VIF_CMD_STMASK = 0x20 // Sets MASK register
	VIF_CMD_UNPACK = 0x60 // Unpack family, low bits carry vn/vl/mask
)

// Unpack element formats as (vn << 2 | vl)
const (
	UNPACK_S32   = 0x0
	UNPACK_V2_16 = 0x5
	UNPACK_V3_16 = 0x9
	UNPACK_V3_8  = 0xA
	UNPACK_V4_32 = 0xC
	UNPACK_V4_16 = 0xD
	UNPACK_V4_8  = 0xE
)

// Cmd strips the interrupt bit.
func (v VifCode) Cmd() uint8 {
	return uint8((v >> 24) & 0x7f)
}

func (v VifCode) Num() uint8 {
	return uint8((v >> 16) & 0xff)
}

func (v VifCode) Imm() uint16 {
	return uint16(v & 0xffff)
}

func (v VifCode) IsIRQ() bool {
	return (v>>31)&1 != 0
}

func (v VifCode) IsUnpack() bool {
	return v.Cmd()&VIF_CMD_UNPACK == VIF_CMD_UNPACK
}

// Component count minus one.
func (v VifCode) VN() uint8 {
	return (v.Cmd() >> 2) & 3
}

// Component width: 0 - 32 bit, 1 - 16 bit, 2 - 8 bit, 3 - 5:5:5:1.
func (v VifCode) VL() uint8 {
	return v.Cmd() & 3
}

func (v VifCode) Format() uint8 {
	return v.Cmd() & 0xf
}

func (v VifCode) Masked() bool {
	return v.Cmd()&0x10 != 0
}

func (v VifCode) Addr() uint16 {
	return v.Imm() & 0x1ff
}

func (v VifCode) Unsigned() bool {
	return v.Imm()&0x4000 != 0
}

func (v VifCode) Flag() bool {
	return v.Imm()&0x8000 != 0
}

func (v VifCode) String() string {
	if v.IsUnpack() {
		return fmt.Sprintf("VifCode{UNPACK vn:%d vl:%d; Num:0x%.2x; Addr:0x%.3x; Usn:%t; Flag:%t; Mask:%t}",
			v.VN(), v.VL(), v.Num(), v.Addr(), v.Unsigned(), v.Flag(), v.Masked())
	}
	return fmt.Sprintf("VifCode{Cmd:0x%.2x; Num:0x%.2x; Imm:0x%.4x; IRQ:%t}",
		v.Cmd(), v.Num(), v.Imm(), v.IsIRQ())
}

func NewCode(raw uint32) VifCode {
	return VifCode(raw)
}
