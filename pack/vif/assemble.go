package vif

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/bgda-tools/bgda_browser/ps2/gif"
	"github.com/bgda-tools/bgda_browser/utils"
)

const (
	stripIndexMask = 0x1ff
	stripSkipFlag  = 0x8000
)

type Mesh struct {
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	UVs      []UV
	Indices  []uint32
	Weights  []VertexWeight
}

type uvKey struct {
	vertex int
	uv     UV
}

type assembler struct {
	mesh       *Mesh
	uvAssigned []bool
	clones     map[uvKey]int
}

// ChunksToMesh flattens decoded chunks into one indexed triangle list.
// Vertices used with several uvs are split.
func ChunksToMesh(chunks []*Chunk) (*Mesh, error) {
	a := &assembler{
		mesh:   &Mesh{},
		clones: make(map[uvKey]int),
	}
	for iChunk, c := range chunks {
		if c.GifTag0 == nil {
			// seen in Justice League Heroes models
			continue
		}
		if err := a.addChunk(c); err != nil {
			return nil, errors.Wrapf(err, "Chunk %d", iChunk)
		}
	}
	if err := a.mesh.Validate(); err != nil {
		return nil, err
	}
	return a.mesh, nil
}

func (a *assembler) addChunk(c *Chunk) error {
	m := a.mesh
	if prim := c.GifTag0.PrimType(); prim != gif.PRIM_TRIANGLE_STRIP {
		return errors.Wrapf(ErrUnsupportedPrimitive, "prim type %d", prim)
	}

	vstart := len(m.Vertices)
	numVerts := len(c.Vertices)
	for i, v := range c.Vertices {
		m.Vertices = append(m.Vertices, mgl32.Vec3{float32(v.X) / 16, float32(v.Y) / 16, float32(v.Z) / 16})
		var n mgl32.Vec3
		if i < len(c.Normals) {
			raw := c.Normals[i]
			n = utils.NormalizeVec3(mgl32.Vec3{float32(raw.X) / 127, float32(raw.Y) / 127, float32(raw.Z) / 127})
		}
		m.Normals = append(m.Normals, n)
		m.UVs = append(m.UVs, UV{})
		a.uvAssigned = append(a.uvAssigned, false)
	}

	for _, vw := range c.Weights {
		if vw.StartVertex > numVerts-1 {
			continue
		}
		if vw.EndVertex > numVerts-1 {
			vw.EndVertex = numVerts - 1
		}
		vw.StartVertex += vstart
		vw.EndVertex += vstart
		m.Weights = append(m.Weights, vw)
	}

	strip, err := buildStrip(c)
	if err != nil {
		return err
	}

	prevWasBackface := true
	for i := 2; i < len(strip); i++ {
		local := [3]int{strip[i-2] & stripIndexMask, strip[i-1] & stripIndexMask, strip[i] & stripIndexMask}
		if local[0] == local[1] || local[0] == local[2] || local[1] == local[2] {
			prevWasBackface = !prevWasBackface
			continue
		}
		if strip[i]&stripSkipFlag != 0 {
			continue
		}
		if i >= len(c.UVs) {
			return errors.Wrapf(ErrIndexOutOfRange, "strip position %d has no uv (%d uploaded)", i, len(c.UVs))
		}

		var tri [3]int
		for k := range tri {
			if local[k] >= numVerts {
				return errors.Wrapf(ErrIndexOutOfRange, "strip position %d references vertex %d of %d", i-2+k, local[k], numVerts)
			}
			tri[k] = a.vertexWithUV(c, vstart, local[k], c.UVs[i-2+k])
		}

		switch windingOf(m, tri[0], tri[1], tri[2]) {
		case 1:
			prevWasBackface = false
		case -1:
			prevWasBackface = true
		default:
			prevWasBackface = !prevWasBackface
		}
		if prevWasBackface {
			tri[0], tri[2] = tri[2], tri[0]
		}
		m.Indices = append(m.Indices, uint32(tri[0]), uint32(tri[1]), uint32(tri[2]))
	}
	return nil
}

// buildStrip resolves the strip slot table. Each value is a chunk local
// vertex index with the restart flag carried in bit 15.
func buildStrip(c *Chunk) ([]int, error) {
	regsPerVertex := int(c.GifTag0.NReg())
	strip := make([]int, c.GifTag0.NLoop())
	slot := func(packed uint16) int {
		return int(packed&stripIndexMask) / regsPerVertex
	}

	for i := 2; i < len(c.VLocs); i++ {
		vloc := c.VLocs[i]
		v := i - 2

		// back reference: copy an already placed vertex into another slot
		src, dst := slot(vloc.V2), slot(vloc.V3)
		if src < len(strip) && dst < len(strip) {
			strip[dst] = strip[src]&stripIndexMask | int(vloc.V3&stripSkipFlag)
		}

		if s := slot(vloc.V1); v < len(c.Vertices) && s < len(strip) {
			strip[s] = v | int(vloc.V1&stripSkipFlag)
		}
	}

	if len(c.ExtraVLocs) == 0 {
		return strip, nil
	}
	numExtra := int(c.ExtraVLocs[0])
	for e := 0; e < numExtra; e++ {
		for _, p := range [2]int{e*4 + 4, e*4 + 6} {
			if p+1 >= len(c.ExtraVLocs) {
				return nil, errors.Wrapf(ErrIndexOutOfRange, "extra vloc %d past table of %d", e, len(c.ExtraVLocs))
			}
			src, dst := slot(c.ExtraVLocs[p]), slot(c.ExtraVLocs[p+1])
			if src >= len(strip) || dst >= len(strip) {
				return nil, errors.Wrapf(ErrIndexOutOfRange, "extra vloc %d maps slot %d to %d of %d", e, src, dst, len(strip))
			}
			strip[dst] = int(c.ExtraVLocs[p+1]&stripSkipFlag) | strip[src]&stripIndexMask
		}
	}
	return strip, nil
}

// vertexWithUV returns the mesh index of chunk vertex local carrying uv,
// cloning the vertex when it is already bound to a different uv.
func (a *assembler) vertexWithUV(c *Chunk, vstart int, local int, uv UV) int {
	m := a.mesh
	vidx := vstart + local
	if !a.uvAssigned[vidx] || m.UVs[vidx] == uv {
		m.UVs[vidx] = uv
		a.uvAssigned[vidx] = true
		return vidx
	}

	key := uvKey{vertex: vidx, uv: uv}
	if clone, ok := a.clones[key]; ok {
		return clone
	}

	clone := len(m.Vertices)
	m.Vertices = append(m.Vertices, m.Vertices[vidx])
	m.Normals = append(m.Normals, m.Normals[vidx])
	m.UVs = append(m.UVs, uv)
	a.uvAssigned = append(a.uvAssigned, true)
	a.clones[key] = clone

	if vw := findVertexWeight(c.Weights, local); vw != nil && vw.Weights[0] > 0 {
		cw := *vw
		cw.StartVertex, cw.EndVertex = clone, clone
		m.Weights = append(m.Weights, cw)
	}
	return clone
}

// windingOf compares the face normal with the averaged corner normals:
// 1 keeps the order, -1 reverses it, 0 is undecided.
func windingOf(m *Mesh, i1, i2, i3 int) int {
	v1, v2, v3 := m.Vertices[i1], m.Vertices[i2], m.Vertices[i3]
	face := v2.Sub(v1).Cross(v3.Sub(v2))
	if face.Len() == 0 {
		return 0
	}
	avg := m.Normals[i1].Add(m.Normals[i2]).Add(m.Normals[i3]).Mul(1.0 / 3.0)

	agreement := face.Normalize().Dot(avg)
	switch {
	case agreement > 0.1:
		return 1
	case agreement < -0.1:
		return -1
	}
	return 0
}

func (m *Mesh) Validate() error {
	if len(m.Normals) != len(m.Vertices) || len(m.UVs) != len(m.Vertices) {
		return errors.Errorf("Mesh attribute mismatch: %d vertices, %d normals, %d uvs",
			len(m.Vertices), len(m.Normals), len(m.UVs))
	}
	if len(m.Indices)%3 != 0 {
		return errors.Errorf("Mesh has %d indices, not a triangle list", len(m.Indices))
	}
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if a == b || a == c || b == c {
			return errors.Wrapf(ErrDegenerateTriangle, "Triangle %d repeats a vertex", i/3)
		}
		if int(a) >= len(m.Vertices) || int(b) >= len(m.Vertices) || int(c) >= len(m.Vertices) {
			return errors.Wrapf(ErrIndexOutOfRange, "triangle %d past %d vertices", i/3, len(m.Vertices))
		}
	}
	return nil
}
