package vif

import "testing"

var codeTests = []struct {
	raw      uint32
	cmd      uint8
	unpack   bool
	vn, vl   uint8
	addr     uint16
	unsigned bool
}{
	{0x14000042, VIF_CMD_MSCAL, false, 0, 0, 0x042, false},
	{0x94000044, VIF_CMD_MSCAL, false, 0, 0, 0x044, false},
	{0x69034002, 0x69, true, 2, 1, 0x002, true},
	{0x6e080010, 0x6e, true, 3, 2, 0x010, false},
	{0x65100000, 0x65, true, 1, 1, 0x000, false},
	{0x20000000, VIF_CMD_STMASK, false, 0, 0, 0, false},
}

func TestVifCode(t *testing.T) {
	for _, test := range codeTests {
		c := NewCode(test.raw)
		if c.Cmd() != test.cmd {
			t.Errorf("%#x Cmd()=%#x; expected %#x", test.raw, c.Cmd(), test.cmd)
		}
		if c.IsUnpack() != test.unpack {
			t.Errorf("%#x IsUnpack()=%v; expected %v", test.raw, c.IsUnpack(), test.unpack)
			continue
		}
		if !test.unpack {
			continue
		}
		if c.VN() != test.vn || c.VL() != test.vl {
			t.Errorf("%#x vn,vl=%d,%d; expected %d,%d", test.raw, c.VN(), c.VL(), test.vn, test.vl)
		}
		if c.Addr() != test.addr {
			t.Errorf("%#x Addr()=%#x; expected %#x", test.raw, c.Addr(), test.addr)
		}
		if c.Unsigned() != test.unsigned {
			t.Errorf("%#x Unsigned()=%v; expected %v", test.raw, c.Unsigned(), test.unsigned)
		}
	}
}
