package lmp

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/bgda-tools/bgda_browser/utils"
)

const (
	LEGACY_ENTRY_SIZE = 0x40
	LEGACY_NAME_SIZE  = 0x38
	ENTRY_SIZE        = 0x0C

	entriesStart = 4
)

type Entry struct {
	Name   string
	Offset int
	Length int
}

// Archive is a flat table of named byte ranges. Member data is sliced from
// the archive buffer without copying.
type Archive struct {
	Entries []Entry
	data    []byte
	byName  map[string]int
}

// NewFromData parses the member table. Dark Alliance archives keep names
// inline (legacy), later games point into a string area.
func NewFromData(data []byte, legacy bool) (*Archive, error) {
	if len(data) < entriesStart {
		return nil, errors.Errorf("Archive is too small (%d bytes)", len(data))
	}
	count := int(utils.LEUint32(data, 0))
	stride := ENTRY_SIZE
	if legacy {
		stride = LEGACY_ENTRY_SIZE
	}
	if count < 0 || count > (len(data)-entriesStart)/stride {
		return nil, errors.Errorf("Entry table of %d entries does not fit into 0x%x bytes", count, len(data))
	}

	a := &Archive{
		Entries: make([]Entry, count),
		data:    data,
		byName:  make(map[string]int, count),
	}
	for i := range a.Entries {
		e := &a.Entries[i]
		off := entriesStart + i*stride
		if legacy {
			e.Name = utils.BytesToString(data[off : off+LEGACY_NAME_SIZE])
			e.Offset = int(utils.LEUint32(data, off+LEGACY_NAME_SIZE))
			e.Length = int(utils.LEUint32(data, off+LEGACY_NAME_SIZE+4))
		} else {
			e.Name = utils.CollectString(data, int(utils.LEUint32(data, off)))
			e.Offset = int(utils.LEUint32(data, off+4))
			e.Length = int(utils.LEUint32(data, off+8))
		}
		if e.Offset < 0 || e.Length < 0 || e.Offset+e.Length > len(data) {
			return nil, errors.Errorf("Entry %d '%s' range 0x%x+0x%x is outside of archive", i, e.Name, e.Offset, e.Length)
		}
		a.byName[strings.ToLower(e.Name)] = i
	}
	return a, nil
}

// Names are sorted case insensitively.
func (a *Archive) Names() []string {
	names := make([]string, len(a.Entries))
	for i, e := range a.Entries {
		names[i] = e.Name
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}

func (a *Archive) Entry(name string) (*Entry, bool) {
	i, ok := a.byName[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return &a.Entries[i], true
}

// Read returns the member bytes. Names match case insensitively.
func (a *Archive) Read(name string) ([]byte, error) {
	e, ok := a.Entry(name)
	if !ok {
		return nil, errors.Errorf("Entry '%s' not found", name)
	}
	return a.data[e.Offset : e.Offset+e.Length], nil
}
