package web

import (
	"bytes"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/bgda-tools/bgda_browser/pack"
	"github.com/bgda-tools/bgda_browser/pack/mdl"
	"github.com/bgda-tools/bgda_browser/status"
	"github.com/bgda-tools/bgda_browser/utils/gltfutils"
	"github.com/bgda-tools/bgda_browser/vfs"
	"github.com/bgda-tools/bgda_browser/webutils"
)

type fileEntry struct {
	Name      string
	Size      int64
	Decodable bool
}

func HandlerAjaxFiles(w http.ResponseWriter, r *http.Request) {
	files, err := ServerDirectory.List()
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	sort.Strings(files)

	result := make([]fileEntry, 0, len(files))
	for _, name := range files {
		e, err := ServerDirectory.GetElement(name)
		if err != nil || e.IsDirectory() {
			continue
		}
		result = append(result, fileEntry{
			Name:      name,
			Size:      e.(vfs.File).Size(),
			Decodable: pack.HasHandler(name),
		})
	}
	webutils.WriteJson(w, result)
}

func HandlerAjaxTypedFile(ext string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file := mux.Vars(r)["file"]
		if !strings.EqualFold(filepath.Ext(file), ext) {
			webutils.WriteError(w, errors.Errorf("File '%s' is not a %s file", file, ext))
			return
		}
		data, err := pack.GetMarshaled(ServerDirectory, file)
		if err != nil {
			webutils.WriteError(w, err)
		} else {
			webutils.WriteJson(w, data)
		}
	}
}

type modelSummary struct {
	Name            string
	Meshes          int
	FailedMeshes    []string
	Texture         string
	TextureWidth    int
	TextureHeight   int
	Animations      []string
	AnimationErrors map[string]string
}

func HandlerAjaxModel(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	m, err := mdl.Load(ServerDirectory, file, ServerModelOptions)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	s := &modelSummary{
		Name:            m.Name,
		Meshes:          len(m.Vif.Meshes),
		Texture:         m.TextureName,
		TextureWidth:    m.TextureWidth,
		TextureHeight:   m.TextureHeight,
		AnimationErrors: make(map[string]string, len(m.AnimationErrors)),
	}
	for _, f := range m.Vif.Failed {
		s.FailedMeshes = append(s.FailedMeshes, f.Error())
	}
	for _, a := range m.Animations {
		s.Animations = append(s.Animations, a.Name)
	}
	for name, err := range m.AnimationErrors {
		s.AnimationErrors[name] = err.Error()
	}
	webutils.WriteJson(w, s)
}

func HandlerGLTFModel(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	status.Info("Exporting %s", file)

	m, err := mdl.Load(ServerDirectory, file, ServerModelOptions)
	if err != nil {
		status.Error("Export of %s failed: %v", file, err)
		webutils.WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := gltfutils.ExportBinary(&buf, m.ExportGLTF()); err != nil {
		status.Error("Export of %s failed: %v", file, err)
		webutils.WriteError(w, err)
		return
	}
	status.Info("Exported %s: %d meshes, %d animations", file, len(m.Vif.Meshes), len(m.Animations))
	webutils.WriteFile(w, &buf, m.Name+"_vif.glb")
}
