package vif

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

type GLTFMeshExported struct {
	MeshIndex uint32
	Skinned   bool
}

// ExportGLTF appends the mesh to doc. Texture coordinates need the texture
// size and are omitted when it is unknown; skin attributes are written
// only when numJoints is positive.
func (m *Mesh) ExportGLTF(doc *gltf.Document, name string, texW, texH int, numJoints int, material *uint32) *GLTFMeshExported {
	attributes := make(map[string]uint32)
	attributes["POSITION"] = modeler.WritePosition(doc, vec3sToArrays(m.Vertices))
	attributes["NORMAL"] = modeler.WriteNormal(doc, vec3sToArrays(m.Normals))

	if texW > 0 && texH > 0 {
		sCoeff := 1.0 / (16.0 * float32(texW))
		tCoeff := 1.0 / (16.0 * float32(texH))
		uvs := make([][2]float32, len(m.UVs))
		for i, uv := range m.UVs {
			uvs[i] = [2]float32{float32(uv.U) * sCoeff, float32(uv.V) * tCoeff}
		}
		attributes["TEXCOORD_0"] = modeler.WriteTextureCoord(doc, uvs)
	}

	gme := &GLTFMeshExported{}
	if numJoints > 0 && len(m.Weights) != 0 {
		joints, weights := m.SkinAttributes(numJoints)
		attributes["JOINTS_0"] = modeler.WriteJoints(doc, joints)
		attributes["WEIGHTS_0"] = modeler.WriteWeights(doc, weights)
		gme.Skinned = true
	}

	indices := modeler.WriteIndices(doc, m.Indices)
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{
			&gltf.Primitive{
				Indices:    &indices,
				Attributes: attributes,
				Material:   material,
			},
		},
	})
	gme.MeshIndex = uint32(len(doc.Meshes) - 1)
	return gme
}

// SkinAttributes expands weight ranges into per vertex influences.
// Vertices without a usable influence are bound fully to joint 0.
func (m *Mesh) SkinAttributes(numJoints int) ([][4]uint16, [][4]float32) {
	joints := make([][4]uint16, len(m.Vertices))
	weights := make([][4]float32, len(m.Vertices))

	for _, vw := range m.Weights {
		for v := vw.StartVertex; v <= vw.EndVertex && v < len(m.Vertices); v++ {
			if v < 0 {
				continue
			}
			var j [4]uint16
			var w [4]float32
			for k := range vw.Bones {
				if vw.Bones[k] != NoBone && vw.Bones[k] < numJoints && vw.Weights[k] > 0 {
					j[k] = uint16(vw.Bones[k])
					w[k] = float32(vw.Weights[k]) / 255.0
				}
			}
			joints[v], weights[v] = j, w
		}
	}

	for v := range weights {
		sum := weights[v][0] + weights[v][1] + weights[v][2] + weights[v][3]
		if sum == 0 {
			joints[v] = [4]uint16{}
			weights[v] = [4]float32{1, 0, 0, 0}
			continue
		}
		for k := range weights[v] {
			weights[v][k] /= sum
		}
	}
	return joints, weights
}

func vec3sToArrays(in []mgl32.Vec3) [][3]float32 {
	out := make([][3]float32, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
