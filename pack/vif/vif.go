package vif

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/bgda-tools/bgda_browser/utils"
)

// "1.30" signature of models with the extended header
const VIF_SIGNATURE_EXTENDED = 0x30332E31

const (
	headerMeshCount         = 0x12
	headerMeshTable         = 0x28
	headerExtendedMeshCount = 0x4A
	headerExtendedMeshTable = 0x68
)

type MeshRange struct {
	Start int
	End   int
}

type MeshError struct {
	Mesh int
	Err  error
}

func (me *MeshError) Error() string {
	return fmt.Sprintf("mesh %d: %v", me.Mesh, me.Err)
}

func (me *MeshError) Unwrap() error {
	return me.Err
}

type Vif struct {
	Ranges   []MeshRange
	Meshes   []*Mesh
	Failed   []*MeshError
	Warnings []FormatWarning
}

func meshRanges(data []byte) []MeshRange {
	numMeshes := int(utils.SafeByte(data, headerMeshCount))
	table := headerMeshTable
	if utils.LEUint32(data, 0) == VIF_SIGNATURE_EXTENDED {
		numMeshes = int(utils.SafeByte(data, headerExtendedMeshCount))
		table = headerExtendedMeshTable
	}
	if numMeshes == 0 {
		numMeshes = 1
		table = headerExtendedMeshTable
	}

	ranges := make([]MeshRange, numMeshes)
	for i := range ranges {
		ranges[i].Start = int(utils.LEUint32(data, table+i*4))
		ranges[i].End = int(utils.LEUint32(data, table+4+i*4))
	}
	return ranges
}

// NewFromData decodes every mesh of a .vif file. A broken mesh is recorded
// in Failed and skipped; the file fails only when no mesh decodes.
func NewFromData(data []byte, exlog *utils.Logger) (*Vif, error) {
	v := &Vif{Ranges: meshRanges(data)}

	for iMesh, r := range v.Ranges {
		exlog.Printf("mesh %d: 0x%.6x..0x%.6x", iMesh, r.Start, r.End)
		mesh, warnings, err := DecodeMesh(data, r.Start, r.End, exlog)
		v.Warnings = append(v.Warnings, warnings...)
		if err != nil {
			exlog.Printf("mesh %d failed: %v", iMesh, err)
			v.Failed = append(v.Failed, &MeshError{Mesh: iMesh, Err: err})
			continue
		}
		v.Meshes = append(v.Meshes, mesh)
	}

	if len(v.Meshes) == 0 && len(v.Failed) != 0 {
		return nil, errors.Wrapf(v.Failed[0], "No meshes decoded")
	}
	return v, nil
}

func DecodeMesh(data []byte, start, end int, exlog *utils.Logger) (*Mesh, []FormatWarning, error) {
	if start < 0 || start > end || start > len(data) {
		return nil, nil, errors.Errorf("Invalid mesh range 0x%x..0x%x of 0x%x bytes", start, end, len(data))
	}
	chunks, warnings, err := DecodeChunks(data, start, end, exlog)
	if err != nil {
		return nil, warnings, err
	}
	exlog.Dump(chunks)

	mesh, err := ChunksToMesh(chunks)
	return mesh, warnings, err
}
