package mdl

import (
	"fmt"

	"github.com/qmuntal/gltf"

	"github.com/bgda-tools/bgda_browser/pack/anm"
	"github.com/bgda-tools/bgda_browser/pack/vif"
	"github.com/bgda-tools/bgda_browser/utils/gltfutils"
)

type GLTFModelExported struct {
	Meshes   []*vif.GLTFMeshExported
	Skeleton *anm.GLTFSkeletonExported
	Material *uint32
}

// exportMaterial references the png converted from the texture by name.
func (m *Model) exportMaterial(doc *gltf.Document) *uint32 {
	if m.TextureWidth <= 0 || m.TextureHeight <= 0 {
		return nil
	}
	doc.Images = append(doc.Images, &gltf.Image{
		Name: m.Name,
		URI:  m.Name + ".png",
	})
	doc.Textures = append(doc.Textures, &gltf.Texture{
		Source: gltf.Index(uint32(len(doc.Images) - 1)),
	})
	metallic := float32(0)
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name:        "material0",
		DoubleSided: true,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorTexture: &gltf.TextureInfo{Index: uint32(len(doc.Textures) - 1)},
			MetallicFactor:   &metallic,
		},
	})
	return gltf.Index(uint32(len(doc.Materials) - 1))
}

func (m *Model) ExportGLTFTo(doc *gltf.Document) *GLTFModelExported {
	gmdle := &GLTFModelExported{
		Material: m.exportMaterial(doc),
	}

	numJoints := 0
	if len(m.Animations) != 0 {
		first := m.Animations[0]
		numJoints = first.NumJoints
		gmdle.Skeleton = first.ExportGLTFSkeleton(doc, m.Name+"_skeleton")
	}

	for iMesh, mesh := range m.Vif.Meshes {
		name := fmt.Sprintf("%s_mesh%d", m.Name, iMesh)
		gme := mesh.ExportGLTF(doc, name, m.TextureWidth, m.TextureHeight, numJoints, gmdle.Material)
		gmdle.Meshes = append(gmdle.Meshes, gme)

		node := &gltf.Node{
			Name: name,
			Mesh: gltf.Index(gme.MeshIndex),
		}
		if gme.Skinned {
			node.Skin = gltf.Index(gmdle.Skeleton.SkinIndex)
		}
		gltfutils.AddSceneNode(doc, node)
	}

	if gmdle.Skeleton != nil {
		for _, a := range m.Animations {
			a.ExportGLTFAnimation(doc, a.Name, gmdle.Skeleton)
		}
	}
	return gmdle
}

func (m *Model) ExportGLTF() *gltf.Document {
	doc := gltfutils.NewDocument()
	m.ExportGLTFTo(doc)
	return doc
}
