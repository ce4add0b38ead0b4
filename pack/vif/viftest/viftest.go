// Package viftest builds small .vif files for tests of packages that
// consume decoded meshes.
package viftest

import (
	"bytes"
	"encoding/binary"
)

type Builder struct {
	bytes.Buffer
}

func (b *Builder) Code(cmd uint8, num uint8, imm uint16) *Builder {
	binary.Write(b, binary.LittleEndian, imm)
	b.WriteByte(num)
	b.WriteByte(cmd)
	return b
}

func (b *Builder) Mscal(id uint16) *Builder {
	return b.Code(0x14, 0, id)
}

// Put writes fixed size values or slices of them little endian.
func (b *Builder) Put(vs ...interface{}) *Builder {
	for _, v := range vs {
		binary.Write(b, binary.LittleEndian, v)
	}
	return b
}

func (b *Builder) Pad4() *Builder {
	for b.Len()%4 != 0 {
		b.WriteByte(0)
	}
	return b
}

// SkinnedTriangle is one triangle strip of three vertices bound to bone 0,
// with normals facing +z and uvs.
func SkinnedTriangle() []byte {
	var b Builder
	b.Code(0x6c, 1, 0).Put(uint64(3)|uint64(4)<<47|uint64(1)<<60, uint64(0))
	b.Code(0x69, 3, 0).Put([]int16{0, 0, 0, 16, 0, 0, 0, 16, 0}).Pad4()
	b.Code(0x6a, 3, 0).Put([]byte{0, 0, 127, 0, 0, 127, 0, 0, 127}).Pad4()
	b.Code(0x69, 5, 0x4000).Put([]uint16{0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 2, 0, 0}).Pad4()
	b.Code(0x6e, 1, 0).Put([]byte{0, 255, 0xff, 3})
	b.Mscal(66)
	b.Code(0x65, 3, 0).Put([]int16{0, 0, 16, 0, 0, 16})
	return b.Bytes()
}

// File wraps mesh streams with the short header and its mesh table.
func File(streams ...[]byte) []byte {
	const table = 0x28
	data := make([]byte, table+4*(len(streams)+1))
	data[0x12] = byte(len(streams))

	offset := len(data)
	for i, s := range streams {
		binary.LittleEndian.PutUint32(data[table+i*4:], uint32(offset))
		data = append(data, s...)
		offset += len(s)
	}
	binary.LittleEndian.PutUint32(data[table+len(streams)*4:], uint32(offset))
	return data
}
