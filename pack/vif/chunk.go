package vif

import (
	"github.com/bgda-tools/bgda_browser/ps2/gif"
)

// Bone index meaning "no influence"
const NoBone = 255

// 12.4 fixed point
type RawVertex struct {
	X, Y, Z int16
}

type RawNormal struct {
	X, Y, Z int8
}

type UV struct {
	U, V int16
}

// VLoc holds three 9 bit strip slot addresses, bit 15 of each is the strip restart flag.
type VLoc struct {
	V1, V2, V3 uint16
}

// VertexWeight covers StartVertex..EndVertex inclusive.
type VertexWeight struct {
	StartVertex int
	EndVertex   int
	Bones       [4]int
	Weights     [4]int
}

func NewVertexWeight(start int) VertexWeight {
	return VertexWeight{
		StartVertex: start,
		Bones:       [4]int{NoBone, NoBone, NoBone, NoBone},
	}
}

func (vw *VertexWeight) Contains(vertex int) bool {
	return vertex >= vw.StartVertex && vertex <= vw.EndVertex
}

// Chunk is everything uploaded for one microprogram call.
type Chunk struct {
	MscalID    uint16
	GifTag0    *gif.Tag
	GifTag1    *gif.Tag
	Vertices   []RawVertex
	Normals    []RawNormal
	VLocs      []VLoc
	UVs        []UV
	Weights    []VertexWeight
	ExtraVLocs []uint16
}

func findVertexWeight(weights []VertexWeight, vertex int) *VertexWeight {
	for i := range weights {
		if weights[i].Contains(vertex) {
			return &weights[i]
		}
	}
	return nil
}
