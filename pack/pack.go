package pack

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/bgda-tools/bgda_browser/utils"
	"github.com/bgda-tools/bgda_browser/vfs"
)

// FileLoader decodes a whole asset; name is used for logging and for
// finding neighbour files in d.
type FileLoader func(d vfs.Directory, name string, data []byte) (interface{}, error)

// Marshaler gives the json view of a decoded asset when it differs from
// the asset itself.
type Marshaler interface {
	Marshal() (interface{}, error)
}

var gHandlers map[string]FileLoader = make(map[string]FileLoader, 0)

var gTraceLog *utils.Logger

// SetTraceLogger makes every handler trace its decoding into l. Call it
// before serving; nil turns tracing off.
func SetTraceLogger(l *utils.Logger) {
	gTraceLog = l
}

func TraceLogger() *utils.Logger {
	return gTraceLog
}

func SetHandler(format string, ldr FileLoader) {
	gHandlers[strings.ToUpper(format)] = ldr
}

func HasHandler(fileName string) bool {
	_, found := gHandlers[strings.ToUpper(filepath.Ext(fileName))]
	return found
}

func CallHandler(d vfs.Directory, name string, data []byte) (interface{}, error) {
	ext := strings.ToUpper(filepath.Ext(name))

	if h, found := gHandlers[ext]; found {
		return h(d, name, data)
	} else {
		return nil, errors.Errorf("[pack] Cannot find handler for '%s' extension", ext)
	}
}

func GetInstanceHandler(d vfs.Directory, fileName string) (interface{}, error) {
	data, err := vfs.ReadFile(d, fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "[pack] Cannot get file '%s'", fileName)
	}

	inst, err := CallHandler(d, fileName, data)
	if err != nil {
		return nil, errors.Wrapf(err, "[pack] Handler error")
	}

	return inst, nil
}

// GetMarshaled decodes fileName and returns its json view.
func GetMarshaled(d vfs.Directory, fileName string) (interface{}, error) {
	inst, err := GetInstanceHandler(d, fileName)
	if err != nil {
		return nil, err
	}
	if m, ok := inst.(Marshaler); ok {
		return m.Marshal()
	}
	return inst, nil
}
