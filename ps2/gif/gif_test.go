package gif

import "testing"

func TestNewTag(t *testing.T) {
	// NLOOP 12, EOP, PRE, PRIM 0x0c (strip), PACKED, NREG 3, regs 2 1 4
	lo := uint64(12) | 1<<15 | 1<<46 | 0x0c<<47 | 3<<60
	hi := uint64(0x412)
	b := make([]byte, 16)
	for i := 0; i < 8; i++ {
		b[i] = byte(lo >> (8 * uint(i)))
		b[8+i] = byte(hi >> (8 * uint(i)))
	}

	tag := NewTag(b)
	if tag.NLoop() != 12 {
		t.Errorf("NLoop()=%d; expected 12", tag.NLoop())
	}
	if !tag.EOP() || !tag.Pre() {
		t.Errorf("EOP/Pre flags lost: %v", tag)
	}
	if tag.PrimType() != PRIM_TRIANGLE_STRIP {
		t.Errorf("PrimType()=%d; expected %d", tag.PrimType(), PRIM_TRIANGLE_STRIP)
	}
	if tag.Flg() != FLG_PACKED {
		t.Errorf("Flg()=%d; expected packed", tag.Flg())
	}
	if tag.NReg() != 3 {
		t.Errorf("NReg()=%d; expected 3", tag.NReg())
	}
	regs := tag.Regs()
	want := []uint8{2, 1, 4}
	for i := range want {
		if regs[i] != want[i] {
			t.Errorf("Regs()=%v; expected %v", regs, want)
			break
		}
	}
}

func TestNRegZeroMeans16(t *testing.T) {
	if n := NewTag(nil).NReg(); n != 16 {
		t.Errorf("NReg() of empty tag=%d; expected 16", n)
	}
}
