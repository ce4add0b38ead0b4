package gltfutils

import (
	"io"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

func NewDocument() *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "bgda_browser"
	return doc
}

// AddSceneNode appends a node and makes it a root of the default scene.
func AddSceneNode(doc *gltf.Document, node *gltf.Node) uint32 {
	idx := AddNode(doc, node)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, idx)
	return idx
}

func AddNode(doc *gltf.Document, node *gltf.Node) uint32 {
	doc.Nodes = append(doc.Nodes, node)
	return uint32(len(doc.Nodes) - 1)
}

func ExportBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return errors.Wrapf(encoder.Encode(doc), "Failed to encode binary gltf")
}

// ExportJSON writes a .gltf with buffers embedded as data uris.
func ExportJSON(w io.Writer, doc *gltf.Document) error {
	for _, b := range doc.Buffers {
		if b.URI == "" {
			b.EmbeddedResource()
		}
	}
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = false
	return errors.Wrapf(encoder.Encode(doc), "Failed to encode gltf")
}
