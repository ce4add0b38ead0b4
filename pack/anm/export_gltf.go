package anm

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/bgda-tools/bgda_browser/utils"
	"github.com/bgda-tools/bgda_browser/utils/gltfutils"
)

type GLTFSkeletonExported struct {
	RootNode   uint32
	JointNodes []uint32
	SkinIndex  uint32
}

// ExportGLTFSkeleton adds a root node with the joint hierarchy in binding
// pose and a skin over it.
func (a *AnmData) ExportGLTFSkeleton(doc *gltf.Document, name string) *GLTFSkeletonExported {
	gse := &GLTFSkeletonExported{
		RootNode:   gltfutils.AddSceneNode(doc, &gltf.Node{Name: name}),
		JointNodes: make([]uint32, a.NumJoints),
	}

	inverseBind := make([][4][4]float32, a.NumJoints)
	for j := 0; j < a.NumJoints; j++ {
		gse.JointNodes[j] = gltfutils.AddNode(doc, &gltf.Node{
			Name:        fmt.Sprintf("joint_%d", j),
			Translation: a.BindingPoseLocal[j],
			Rotation:    [4]float32{0, 0, 0, 1},
			Scale:       [3]float32{1, 1, 1},
		})
		inverseBind[j] = mat4ToColumns(mgl32.Translate3D(-a.BindingPose[j][0], -a.BindingPose[j][1], -a.BindingPose[j][2]))
	}

	for j, p := range a.JointParents {
		parent := doc.Nodes[gse.RootNode]
		if p >= 0 {
			parent = doc.Nodes[gse.JointNodes[p]]
		}
		parent.Children = append(parent.Children, gse.JointNodes[j])
	}

	ibm := modeler.WriteAccessor(doc, gltf.TargetNone, inverseBind)
	doc.Skins = append(doc.Skins, &gltf.Skin{
		Name:                name,
		Skeleton:            gltf.Index(gse.RootNode),
		Joints:              gse.JointNodes,
		InverseBindMatrices: gltf.Index(ibm),
	})
	gse.SkinIndex = uint32(len(doc.Skins) - 1)
	return gse
}

// ExportGLTFAnimation writes the keyframes as one animation with
// translation and rotation channels for every joint.
func (a *AnmData) ExportGLTFAnimation(doc *gltf.Document, name string, gse *GLTFSkeletonExported) {
	if len(a.KeyFrames) == 0 {
		return
	}

	times := make([]float32, len(a.KeyFrames))
	for i, kf := range a.KeyFrames {
		times[i] = kf.Timestamp
	}
	input := modeler.WriteAccessor(doc, gltf.TargetNone, times)

	anim := &gltf.Animation{Name: name}
	addChannel := func(node uint32, path gltf.TRSProperty, output uint32) {
		anim.Samplers = append(anim.Samplers, &gltf.AnimationSampler{
			Input:         gltf.Index(input),
			Output:        gltf.Index(output),
			Interpolation: gltf.InterpolationLinear,
		})
		anim.Channels = append(anim.Channels, &gltf.Channel{
			Sampler: gltf.Index(uint32(len(anim.Samplers) - 1)),
			Target: gltf.ChannelTarget{
				Node: gltf.Index(node),
				Path: path,
			},
		})
	}

	for j := 0; j < a.NumJoints && j < len(gse.JointNodes); j++ {
		translations := make([][3]float32, len(a.KeyFrames))
		rotations := make([][4]float32, len(a.KeyFrames))
		for i, kf := range a.KeyFrames {
			translations[i] = kf.JointPositions[j]
			rotations[i] = utils.QuatToArray(kf.JointRotations[j])
		}
		addChannel(gse.JointNodes[j], gltf.TRSTranslation, modeler.WriteAccessor(doc, gltf.TargetNone, translations))
		addChannel(gse.JointNodes[j], gltf.TRSRotation, modeler.WriteAccessor(doc, gltf.TargetNone, rotations))
	}

	doc.Animations = append(doc.Animations, anim)
}

// mgl32 matrices are column major like glTF
func mat4ToColumns(m mgl32.Mat4) [4][4]float32 {
	return [4][4]float32{
		{m[0], m[1], m[2], m[3]},
		{m[4], m[5], m[6], m[7]},
		{m[8], m[9], m[10], m[11]},
		{m[12], m[13], m[14], m[15]},
	}
}
