package lmp

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/bgda-tools/bgda_browser/utils"
)

// A gob is a list of lmp archives packed into one file. The record list
// ends with an empty name.
const (
	GOB_RECORD_SIZE = 0x28
	GOB_NAME_SIZE   = 0x20
)

type GobEntry struct {
	Name   string
	Offset int
}

type Gob struct {
	Entries []GobEntry
	data    []byte
	legacy  bool
}

// NewGobFromData reads the record list. Archives are parsed on Open.
func NewGobFromData(data []byte, legacy bool) (*Gob, error) {
	g := &Gob{data: data, legacy: legacy}
	for off := 0; off+GOB_RECORD_SIZE <= len(data); off += GOB_RECORD_SIZE {
		name := utils.BytesToString(data[off : off+GOB_NAME_SIZE])
		if name == "" {
			return g, nil
		}
		e := GobEntry{Name: name, Offset: int(utils.LEUint32(data, off+GOB_NAME_SIZE))}
		if e.Offset < 0 || e.Offset >= len(data) {
			return nil, errors.Errorf("Gob entry '%s' offset 0x%x is outside of 0x%x bytes", e.Name, e.Offset, len(data))
		}
		g.Entries = append(g.Entries, e)
	}
	return nil, errors.Errorf("Gob record list is not terminated")
}

// Open parses the named archive. Member offsets are relative to the
// archive start.
func (g *Gob) Open(name string) (*Archive, error) {
	for _, e := range g.Entries {
		if strings.EqualFold(e.Name, name) {
			a, err := NewFromData(g.data[e.Offset:], g.legacy)
			if err != nil {
				return nil, errors.Wrapf(err, "Gob entry '%s'", e.Name)
			}
			return a, nil
		}
	}
	return nil, errors.Errorf("Gob entry '%s' not found", name)
}

// DirName is the directory an archive is unpacked to.
func (e *GobEntry) DirName() string {
	return strings.Replace(e.Name, ".", "_", -1)
}
