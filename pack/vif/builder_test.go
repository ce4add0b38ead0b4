package vif

import (
	"bytes"
	"encoding/binary"

	"github.com/bgda-tools/bgda_browser/ps2/gif"
)

type streamBuilder struct {
	bytes.Buffer
}

func (b *streamBuilder) code(cmd uint8, num uint8, imm uint16) *streamBuilder {
	binary.Write(b, binary.LittleEndian, imm)
	b.WriteByte(num)
	b.WriteByte(cmd)
	return b
}

func (b *streamBuilder) mscal(id uint16) *streamBuilder {
	return b.code(0x14, 0, id)
}

func (b *streamBuilder) u16(vs ...uint16) *streamBuilder {
	binary.Write(b, binary.LittleEndian, vs)
	return b
}

func (b *streamBuilder) i16(vs ...int16) *streamBuilder {
	binary.Write(b, binary.LittleEndian, vs)
	return b
}

func (b *streamBuilder) raw(vs ...byte) *streamBuilder {
	b.Write(vs)
	return b
}

func (b *streamBuilder) pad4() *streamBuilder {
	for b.Len()%4 != 0 {
		b.WriteByte(0)
	}
	return b
}

func (b *streamBuilder) tagBytes(t gif.Tag) *streamBuilder {
	binary.Write(b, binary.LittleEndian, t.Lo)
	binary.Write(b, binary.LittleEndian, t.Hi)
	return b
}

func newStripTag(nloop int, nreg int) gif.Tag {
	return gif.Tag{Lo: uint64(nloop) | gif.PRIM_TRIANGLE_STRIP<<47 | uint64(nreg&0xf)<<60}
}

func stripTagPtr(nloop int) *gif.Tag {
	t := newStripTag(nloop, 1)
	return &t
}

// stripVLocs lays vertices 0..n-1 into strip slots 0..n-1 in order,
// optionally copying slot src into slot dst while placing the last vertex.
func stripVLocs(n int, copySrc, copyDst int) []VLoc {
	vlocs := make([]VLoc, 2, n+2)
	for v := 0; v < n; v++ {
		vl := VLoc{V1: uint16(v)}
		if v == n-1 && copyDst > 0 {
			vl.V2, vl.V3 = uint16(copySrc), uint16(copyDst)
		}
		vlocs = append(vlocs, vl)
	}
	return vlocs
}
