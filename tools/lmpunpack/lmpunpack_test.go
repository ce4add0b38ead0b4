package main

import (
	"encoding/binary"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bgda-tools/bgda_browser/pack/lmp"
)

func legacyArchiveData(names []string, contents [][]byte) []byte {
	data := make([]byte, 4+len(names)*lmp.LEGACY_ENTRY_SIZE)
	binary.LittleEndian.PutUint32(data, uint32(len(names)))
	for i, name := range names {
		off := 4 + i*lmp.LEGACY_ENTRY_SIZE
		copy(data[off:off+lmp.LEGACY_NAME_SIZE], name)
		binary.LittleEndian.PutUint32(data[off+lmp.LEGACY_NAME_SIZE:], uint32(len(data)))
		binary.LittleEndian.PutUint32(data[off+lmp.LEGACY_NAME_SIZE+4:], uint32(len(contents[i])))
		data = append(data, contents[i]...)
	}
	return data
}

func legacyArchive(t *testing.T, names []string, contents [][]byte) *lmp.Archive {
	a, err := lmp.NewFromData(legacyArchiveData(names, contents), true)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestUnpackLmp(t *testing.T) {
	dir, err := ioutil.TempDir("", "lmpunpack")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	a := legacyArchive(t, []string{"hero.vif", "hero.anm"}, [][]byte{{1, 2, 3}, {4}})
	out := filepath.Join(dir, "out")
	if err := UnpackLmp(a, out); err != nil {
		t.Fatal(err)
	}

	for name, want := range map[string]string{"hero.vif": "\x01\x02\x03", "hero.anm": "\x04"} {
		got, err := ioutil.ReadFile(filepath.Join(out, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
		} else if string(got) != want {
			t.Errorf("%s: got %v, want %v", name, got, []byte(want))
		}
	}
	meta, err := ioutil.ReadFile(filepath.Join(out, "_lmp_meta_.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(meta), "hero.anm") || !strings.HasPrefix(string(meta), "#") {
		t.Errorf("unexpected meta file:\n%s", meta)
	}

	blocker := filepath.Join(dir, "file")
	if err := ioutil.WriteFile(blocker, nil, 0666); err != nil {
		t.Fatal(err)
	}
	err = UnpackLmp(a, blocker)
	if err == nil || !strings.Contains(err.Error(), "Cannot create directory") {
		t.Errorf("got %v, want a wrapped directory error", err)
	}
}

func TestUnpackGob(t *testing.T) {
	dir, err := ioutil.TempDir("", "gobunpack")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	archive := legacyArchiveData([]string{"rat.vif"}, [][]byte{{7, 7}})
	data := make([]byte, 2*lmp.GOB_RECORD_SIZE)
	copy(data, "cave.lmp")
	binary.LittleEndian.PutUint32(data[lmp.GOB_NAME_SIZE:], uint32(len(data)))
	data = append(data, archive...)

	g, err := lmp.NewGobFromData(data, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := UnpackGob(g, dir); err != nil {
		t.Fatal(err)
	}
	got, err := ioutil.ReadFile(filepath.Join(dir, "cave_lmp", "rat.vif"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "\x07\x07" {
		t.Errorf("got %v, want [7 7]", got)
	}
}
