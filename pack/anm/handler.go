package anm

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/bgda-tools/bgda_browser/config"
	"github.com/bgda-tools/bgda_browser/pack"
	"github.com/bgda-tools/bgda_browser/vfs"
)

type marshaledAnm struct {
	Name             string
	Variant          string
	NumJoints        int
	NumFrames        int
	JointParents     []int
	BindingPose      []mgl32.Vec3
	BindingPoseLocal []mgl32.Vec3
	Events           int
	KeyFrames        []*KeyFrame
}

func (a *AnmData) Marshal() (interface{}, error) {
	return &marshaledAnm{
		Name:             a.Name,
		Variant:          a.Variant.String(),
		NumJoints:        a.NumJoints,
		NumFrames:        a.NumFrames,
		JointParents:     a.JointParents,
		BindingPose:      a.BindingPose,
		BindingPoseLocal: a.BindingPoseLocal,
		Events:           len(a.Poses),
		KeyFrames:        a.KeyFrames,
	}, nil
}

func init() {
	pack.SetHandler(".anm", func(d vfs.Directory, name string, data []byte) (interface{}, error) {
		a, err := NewFromData(data, VariantForGame(config.GetGameType()), pack.TraceLogger())
		if err != nil {
			return nil, err
		}
		a.Name = name
		return a, nil
	})
}
