package vfs

import (
	"io/ioutil"
	"os"
	path_ "path/filepath"

	"github.com/pkg/errors"
)

type DirectoryDriver struct {
	path string
}

func (dd *DirectoryDriver) Init(parent Directory) {}

func (dd *DirectoryDriver) Name() string {
	return path_.Base(dd.path)
}

func (dd *DirectoryDriver) IsDirectory() bool {
	return true
}

func (dd *DirectoryDriver) List() ([]string, error) {
	if fileinfos, err := ioutil.ReadDir(dd.path); err != nil {
		return nil, errors.Wrapf(err, "Error getting directory '%s' info", dd.path)
	} else {
		result := make([]string, 0, len(fileinfos))
		for _, f := range fileinfos {
			result = append(result, f.Name())
		}
		return result, nil
	}
}

func (dd *DirectoryDriver) GetElement(name string) (Element, error) {
	newPath := path_.Join(dd.path, path_.Base(name))
	if s, err := os.Stat(newPath); err != nil {
		return nil, errors.Wrapf(err, "Stat error")
	} else {
		var e Element
		if s.IsDir() {
			e = NewDirectoryDriver(newPath)
		} else {
			e = NewDirectoryDriverFile(newPath)
		}
		e.Init(dd)
		return e, nil
	}
}

func (dd *DirectoryDriver) Path() string {
	return dd.path
}

func NewDirectoryDriver(path string) *DirectoryDriver {
	return &DirectoryDriver{path: path}
}

type DirectoryDriverFile struct {
	path string
}

func NewDirectoryDriverFile(path string) *DirectoryDriverFile {
	return &DirectoryDriverFile{
		path: path,
	}
}

func (ddf *DirectoryDriverFile) Init(parent Directory) {
	if dd, ok := parent.(*DirectoryDriver); ok {
		ddf.path = path_.Join(dd.path, path_.Base(ddf.path))
	}
}

func (ddf *DirectoryDriverFile) Name() string {
	return path_.Base(ddf.path)
}

func (ddf *DirectoryDriverFile) IsDirectory() bool {
	return false
}

func (ddf *DirectoryDriverFile) Size() int64 {
	if stat, err := os.Stat(ddf.path); err != nil {
		return 0
	} else {
		return stat.Size()
	}
}

func (ddf *DirectoryDriverFile) ReadAll() ([]byte, error) {
	data, err := ioutil.ReadFile(ddf.path)
	if err != nil {
		return nil, errors.Wrapf(err, "os.ReadFile('%s')", ddf.path)
	}
	return data, nil
}
