package vif

import (
	"testing"

	"github.com/pkg/errors"
)

func TestDecodeVertexUnpack(t *testing.T) {
	var b streamBuilder
	b.code(0x69, 1, 0x0000).raw(0x10, 0x00, 0x20, 0x00, 0x30, 0x00).pad4()
	b.mscal(66)

	chunks, warnings, err := DecodeChunks(b.Bytes(), 0, b.Len(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings %v", warnings)
	}
	if len(chunks) != 1 || len(chunks[0].Vertices) != 1 {
		t.Fatalf("expected one chunk with one vertex, got %v", chunks)
	}
	if v := chunks[0].Vertices[0]; v != (RawVertex{16, 32, 48}) {
		t.Errorf("vertex %v; expected {16 32 48}", v)
	}

	chunks[0].GifTag0 = stripTagPtr(0)
	mesh, err := ChunksToMesh(chunks)
	if err != nil {
		t.Fatal(err)
	}
	if p := mesh.Vertices[0]; p[0] != 1 || p[1] != 2 || p[2] != 3 {
		t.Errorf("exported vertex %v; expected (1,2,3)", p)
	}
}

func TestUVsAttachToPreviousChunk(t *testing.T) {
	var b streamBuilder
	b.code(0x65, 1, 0).i16(7, 7) // before any MSCAL: dropped
	b.code(0x69, 1, 0).i16(1, 2, 3).pad4()
	b.mscal(68)
	b.code(0x65, 2, 0).i16(10, 20, 30, 40)
	b.code(0x69, 1, 0).i16(4, 5, 6).pad4()
	b.mscal(70)
	b.code(0x65, 1, 0).i16(50, 60)
	b.code(0x69, 1, 0).i16(9, 9, 9).pad4() // never invoked

	chunks, _, err := DecodeChunks(b.Bytes(), 0, b.Len(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks; expected 2", len(chunks))
	}
	if chunks[0].MscalID != 68 || chunks[1].MscalID != 70 {
		t.Errorf("mscal ids %d,%d", chunks[0].MscalID, chunks[1].MscalID)
	}
	if len(chunks[0].UVs) != 2 || chunks[0].UVs[1] != (UV{30, 40}) {
		t.Errorf("first chunk uvs %v", chunks[0].UVs)
	}
	if len(chunks[1].UVs) != 1 || chunks[1].UVs[0] != (UV{50, 60}) {
		t.Errorf("second chunk uvs %v", chunks[1].UVs)
	}
}

func TestUnknownMicroprogramWarns(t *testing.T) {
	var b streamBuilder
	b.code(0, 0, 0).code(1, 0, 0x0101).code(4, 0, 0).code(5, 0, 0)
	b.code(0x20, 0, 0).u16(0xffff, 0xffff)
	b.mscal(12)

	chunks, warnings, err := DecodeChunks(b.Bytes(), 0, b.Len(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 || chunks[0].MscalID != 12 {
		t.Errorf("chunk not sealed: %v", chunks)
	}
	if len(warnings) != 1 || warnings[0].Offset != 24 {
		t.Errorf("warnings %v; expected one at 24", warnings)
	}
}

var streamErrorTests = []struct {
	name string
	cmd  uint8
	want error
}{
	{"mpg", 0x4a, ErrUnsupportedOpcode},
	{"direct", 0x50, ErrUnsupportedOpcode},
	{"unpack s32", 0x60, ErrUnsupportedFormat},
	{"unpack v2-8", 0x66, ErrUnsupportedFormat},
	{"unpack v4-5", 0x6f, ErrUnsupportedFormat},
}

func TestStreamErrors(t *testing.T) {
	for _, test := range streamErrorTests {
		var b streamBuilder
		b.mscal(66).code(test.cmd, 1, 0).u16(0, 0, 0, 0)
		_, _, err := DecodeChunks(b.Bytes(), 0, b.Len(), nil)
		if !errors.Is(err, test.want) {
			t.Errorf("%s: error %v; expected %v", test.name, err, test.want)
		}
	}
}

func TestVLocsNormalsAndExtra(t *testing.T) {
	var b streamBuilder
	b.code(0x69, 2, 0x4000).u16(0x8001, 2, 3, 4, 5, 6).pad4()
	b.code(0x6a, 1, 0).raw(0x7f, 0x81, 0x00).pad4()
	b.code(0x6d, 1, 0x4000).u16(1, 2, 3, 0x8004)
	b.code(0x6d, 1, 0).u16(9, 9, 9, 9)
	b.mscal(66)

	chunks, _, err := DecodeChunks(b.Bytes(), 0, b.Len(), nil)
	if err != nil {
		t.Fatal(err)
	}
	c := chunks[0]
	if len(c.VLocs) != 2 || c.VLocs[0] != (VLoc{0x8001, 2, 3}) || c.VLocs[1] != (VLoc{4, 5, 6}) {
		t.Errorf("vlocs %v", c.VLocs)
	}
	if len(c.Vertices) != 0 {
		t.Errorf("unsigned unpack produced vertices %v", c.Vertices)
	}
	if len(c.Normals) != 1 || c.Normals[0] != (RawNormal{127, -127, 0}) {
		t.Errorf("normals %v", c.Normals)
	}
	want := []uint16{1, 2, 3, 0x8004}
	if len(c.ExtraVLocs) != len(want) {
		t.Fatalf("extra vlocs %v; expected %v", c.ExtraVLocs, want)
	}
	for i := range want {
		if c.ExtraVLocs[i] != want[i] {
			t.Errorf("extra vlocs %v; expected %v", c.ExtraVLocs, want)
			break
		}
	}
}

func TestGifTagCounts(t *testing.T) {
	var b streamBuilder
	b.code(0x6c, 2, 0).tagBytes(newStripTag(5, 3)).tagBytes(newStripTag(7, 1))
	b.mscal(66)
	b.code(0x6c, 3, 0).tagBytes(newStripTag(1, 1)).tagBytes(newStripTag(1, 1)).tagBytes(newStripTag(1, 1))
	b.mscal(66)

	chunks, warnings, err := DecodeChunks(b.Bytes(), 0, b.Len(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks; expected 2", len(chunks))
	}
	if chunks[0].GifTag0 == nil || chunks[0].GifTag0.NLoop() != 5 || chunks[0].GifTag0.NReg() != 3 {
		t.Errorf("gif tag 0 %v", chunks[0].GifTag0)
	}
	if chunks[0].GifTag1 == nil || chunks[0].GifTag1.NLoop() != 7 {
		t.Errorf("gif tag 1 %v", chunks[0].GifTag1)
	}
	if chunks[1].GifTag0 != nil {
		t.Errorf("three tags must be skipped, got %v", chunks[1].GifTag0)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings %v; expected one", warnings)
	}
}

func TestWeightRecords(t *testing.T) {
	var b streamBuilder
	b.code(0x6e, 3, 0).raw(
		8, 255, 0xff, 3, // bone 2 for vertices 0..2
		4, 100, 12, 100, // bones 1 and 3 for vertex 3, sum below 255
		16, 55, 0xff, 0, // bone 4, no fourth bone
	)
	b.code(0x6e, 1, 0).raw(20, 128, 24, 127) // new unpack restarts at vertex 0
	b.mscal(66)

	chunks, _, err := DecodeChunks(b.Bytes(), 0, b.Len(), nil)
	if err != nil {
		t.Fatal(err)
	}
	got := chunks[0].Weights
	want := []VertexWeight{
		{StartVertex: 0, EndVertex: 2, Bones: [4]int{2, NoBone, NoBone, NoBone}, Weights: [4]int{255, 0, 0, 0}},
		{StartVertex: 3, EndVertex: 3, Bones: [4]int{1, 3, 4, NoBone}, Weights: [4]int{100, 100, 55, 0}},
		{StartVertex: 0, EndVertex: 0, Bones: [4]int{5, 6, NoBone, NoBone}, Weights: [4]int{128, 127, 0, 0}},
	}
	if len(got) != len(want) {
		t.Fatalf("weights %+v; expected %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("weight %d = %+v; expected %+v", i, got[i], want[i])
		}
	}
}

func TestTruncatedStreamZeroFills(t *testing.T) {
	var b streamBuilder
	b.mscal(66)
	b.code(0x69, 4, 0).i16(1, 2, 3)

	chunks, _, err := DecodeChunks(b.Bytes(), 0, 1000, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Errorf("got %d chunks; expected 1", len(chunks))
	}
}
