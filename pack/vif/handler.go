package vif

import (
	"github.com/bgda-tools/bgda_browser/pack"
	"github.com/bgda-tools/bgda_browser/vfs"
)

type marshaledMesh struct {
	NumVertices  int
	NumTriangles int
	Weighted     bool
	*Mesh
}

type marshaledVif struct {
	Meshes   []marshaledMesh
	Failed   []string
	Warnings []string
}

func (v *Vif) Marshal() (interface{}, error) {
	mv := &marshaledVif{
		Meshes:   make([]marshaledMesh, len(v.Meshes)),
		Failed:   make([]string, len(v.Failed)),
		Warnings: make([]string, len(v.Warnings)),
	}
	for i, m := range v.Meshes {
		mv.Meshes[i] = marshaledMesh{
			NumVertices:  len(m.Vertices),
			NumTriangles: len(m.Indices) / 3,
			Weighted:     len(m.Weights) != 0,
			Mesh:         m,
		}
	}
	for i, f := range v.Failed {
		mv.Failed[i] = f.Error()
	}
	for i, w := range v.Warnings {
		mv.Warnings[i] = w.String()
	}
	return mv, nil
}

func init() {
	pack.SetHandler(".vif", func(d vfs.Directory, name string, data []byte) (interface{}, error) {
		return NewFromData(data, pack.TraceLogger())
	})
}
