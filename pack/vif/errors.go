package vif

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnsupportedOpcode    = errors.New("Unsupported vif command")
	ErrUnsupportedFormat    = errors.New("Unsupported unpack format")
	ErrUnsupportedPrimitive = errors.New("Unsupported gif primitive")
	ErrIndexOutOfRange      = errors.New("Strip index out of range")
	ErrDegenerateTriangle   = errors.New("Degenerate triangle")
)

// FormatWarning is an oddity in the stream that does not stop decoding.
type FormatWarning struct {
	Offset  int
	Message string
}

func (w FormatWarning) String() string {
	return fmt.Sprintf("0x%.6x: %s", w.Offset, w.Message)
}
