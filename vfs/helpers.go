package vfs

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

func DirectoryGetFile(d Directory, name string) (File, error) {
	if f, err := d.GetElement(name); err != nil {
		return nil, errors.Wrapf(err, "Cannot open file '%s'", name)
	} else if f.IsDirectory() {
		return nil, errors.Errorf("File '%s' is directory, not a file!", name)
	} else {
		return f.(File), nil
	}
}

func ReadFile(d Directory, name string) ([]byte, error) {
	f, err := DirectoryGetFile(d, name)
	if err != nil {
		return nil, err
	}
	data, err := f.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot read file '%s'", name)
	}
	return data, nil
}

// ListWithExt returns sorted names with the extension (".vif"), ignoring case.
func ListWithExt(d Directory, ext string) ([]string, error) {
	names, err := d.List()
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, len(names))
	for _, name := range names {
		if strings.EqualFold(filepath.Ext(name), ext) {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result, nil
}

// BaseName strips the extension: "warrior.vif" gives "warrior".
func BaseName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
