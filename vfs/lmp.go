package vfs

import (
	"io/ioutil"
	path_ "path/filepath"

	"github.com/pkg/errors"

	"github.com/bgda-tools/bgda_browser/pack/lmp"
)

// LmpDriver exposes members of an .lmp archive as a flat directory.
type LmpDriver struct {
	name    string
	archive *lmp.Archive
}

func NewLmpDriver(name string, archive *lmp.Archive) *LmpDriver {
	return &LmpDriver{name: name, archive: archive}
}

func OpenLmpDriver(path string, legacy bool) (*LmpDriver, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot read archive '%s'", path)
	}
	archive, err := lmp.NewFromData(data, legacy)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot parse archive '%s'", path)
	}
	return NewLmpDriver(path_.Base(path), archive), nil
}

func (ld *LmpDriver) Init(parent Directory) {}

func (ld *LmpDriver) Name() string {
	return ld.name
}

func (ld *LmpDriver) IsDirectory() bool {
	return true
}

func (ld *LmpDriver) List() ([]string, error) {
	return ld.archive.Names(), nil
}

func (ld *LmpDriver) GetElement(name string) (Element, error) {
	e, ok := ld.archive.Entry(name)
	if !ok {
		return nil, errors.Errorf("Entry '%s' not found in '%s'", name, ld.name)
	}
	f := &LmpFile{name: e.Name, size: int64(e.Length)}
	f.Init(ld)
	return f, nil
}

type LmpFile struct {
	name   string
	size   int64
	parent *LmpDriver
}

func (lf *LmpFile) Init(parent Directory) {
	if ld, ok := parent.(*LmpDriver); ok {
		lf.parent = ld
	}
}

func (lf *LmpFile) Name() string {
	return lf.name
}

func (lf *LmpFile) IsDirectory() bool {
	return false
}

func (lf *LmpFile) Size() int64 {
	return lf.size
}

func (lf *LmpFile) ReadAll() ([]byte, error) {
	if lf.parent == nil {
		return nil, errors.Errorf("File '%s' is not attached to an archive", lf.name)
	}
	return lf.parent.archive.Read(lf.name)
}
