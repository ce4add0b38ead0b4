package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bgda-tools/bgda_browser/pack/vif/viftest"
	"github.com/bgda-tools/bgda_browser/vfs"
)

func TestExportAll(t *testing.T) {
	dir, err := ioutil.TempDir("", "bgdaexport")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	good := viftest.File(viftest.SkinnedTriangle())
	files := map[string][]byte{
		"a.vif":      good,
		"b.vif":      good,
		"c.vif":      good,
		"broken.vif": viftest.File([]byte{0, 0, 0, 0x4a}),
	}
	for name, data := range files {
		if err := ioutil.WriteFile(filepath.Join(dir, name), data, 0666); err != nil {
			t.Fatal(err)
		}
	}

	names, err := vfs.ListWithExt(vfs.NewDirectoryDriver(dir), ".vif")
	if err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		asJSON bool
		ext    string
		magic  string
	}{
		{false, "_vif.glb", "glTF"},
		{true, "_vif.gltf", "{"},
	} {
		e := &exporter{source: vfs.NewDirectoryDriver(dir), outDir: dir, asJSON: tc.asJSON}
		exported, failed := e.exportAll(append([]string{"missing.vif"}, names...), 2)
		if exported != 3 || failed != 2 {
			t.Errorf("json=%v: got %d exported %d failed, want 3 and 2", tc.asJSON, exported, failed)
		}
		for _, base := range []string{"a", "b", "c"} {
			data, err := ioutil.ReadFile(filepath.Join(dir, base+tc.ext))
			if err != nil {
				t.Errorf("json=%v: %v", tc.asJSON, err)
				continue
			}
			if !bytes.HasPrefix(data, []byte(tc.magic)) {
				t.Errorf("json=%v: %s has wrong header", tc.asJSON, base+tc.ext)
			}
		}
	}
}
