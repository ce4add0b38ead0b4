package lmp

import (
	"encoding/binary"
	"reflect"
	"testing"
)

type member struct {
	name string
	data []byte
}

func buildLegacy(members []member) []byte {
	data := make([]byte, entriesStart+len(members)*LEGACY_ENTRY_SIZE)
	binary.LittleEndian.PutUint32(data, uint32(len(members)))
	for i, m := range members {
		off := entriesStart + i*LEGACY_ENTRY_SIZE
		copy(data[off:off+LEGACY_NAME_SIZE], m.name)
		binary.LittleEndian.PutUint32(data[off+LEGACY_NAME_SIZE:], uint32(len(data)))
		binary.LittleEndian.PutUint32(data[off+LEGACY_NAME_SIZE+4:], uint32(len(m.data)))
		data = append(data, m.data...)
	}
	return data
}

func buildTable(members []member) []byte {
	data := make([]byte, entriesStart+len(members)*ENTRY_SIZE)
	binary.LittleEndian.PutUint32(data, uint32(len(members)))
	for i, m := range members {
		off := entriesStart + i*ENTRY_SIZE
		binary.LittleEndian.PutUint32(data[off:], uint32(len(data)))
		data = append(data, append([]byte(m.name), 0)...)
		binary.LittleEndian.PutUint32(data[off+4:], uint32(len(data)))
		binary.LittleEndian.PutUint32(data[off+8:], uint32(len(m.data)))
		data = append(data, m.data...)
	}
	return data
}

func TestArchiveLayouts(t *testing.T) {
	members := []member{
		{"warrior.vif", []byte{1, 2, 3, 4}},
		{"Walk.anm", []byte{5, 6}},
		{"empty.tex", nil},
	}
	for _, tc := range []struct {
		name   string
		data   []byte
		legacy bool
	}{
		{"legacy", buildLegacy(members), true},
		{"table", buildTable(members), false},
	} {
		a, err := NewFromData(tc.data, tc.legacy)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(a.Entries) != len(members) {
			t.Fatalf("%s: got %d entries, want %d", tc.name, len(a.Entries), len(members))
		}
		for _, m := range members {
			got, err := a.Read(m.name)
			if err != nil {
				t.Errorf("%s: %v", tc.name, err)
				continue
			}
			if len(got) != len(m.data) || (len(m.data) != 0 && !reflect.DeepEqual(got, m.data)) {
				t.Errorf("%s: %s got %v, want %v", tc.name, m.name, got, m.data)
			}
		}
		if _, err := a.Read("WALK.ANM"); err != nil {
			t.Errorf("%s: lookup should ignore case: %v", tc.name, err)
		}
		if _, err := a.Read("missing.vif"); err == nil {
			t.Errorf("%s: expected error for missing entry", tc.name)
		}
		want := []string{"empty.tex", "Walk.anm", "warrior.vif"}
		if names := a.Names(); !reflect.DeepEqual(names, want) {
			t.Errorf("%s: got names %v, want %v", tc.name, names, want)
		}
	}
}

func TestArchiveErrors(t *testing.T) {
	if _, err := NewFromData([]byte{1}, false); err == nil {
		t.Errorf("expected error for tiny archive")
	}

	tooMany := make([]byte, 16)
	binary.LittleEndian.PutUint32(tooMany, 100)
	if _, err := NewFromData(tooMany, false); err == nil {
		t.Errorf("expected error for oversized entry table")
	}

	data := buildTable([]member{{"a.vif", []byte{1, 2}}})
	binary.LittleEndian.PutUint32(data[entriesStart+8:], 0x1000)
	if _, err := NewFromData(data, false); err == nil {
		t.Errorf("expected error for entry past the archive end")
	}
}
