package utils

import (
	"bytes"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/bgda-tools/bgda_browser/config"
)

// BytesToString decodes a NUL terminated string with the configured charmap.
func BytesToString(bs []byte) string {
	return BytesToStringCharmap(bs, config.GetEncoding())
}

func BytesToStringCharmap(bs []byte, cm *charmap.Charmap) string {
	n := bytes.IndexByte(bs, 0)
	if n < 0 {
		n = len(bs)
	}

	s, _, err := transform.Bytes(cm.NewDecoder(), bs[:n])
	if err != nil {
		// single byte charmaps never fail on decode
		return string(bs[:n])
	}
	return string(s)
}

// CollectString reads a NUL terminated string at off, stopping at the end of data.
func CollectString(data []byte, off int) string {
	if off < 0 || off >= len(data) {
		return ""
	}
	return BytesToString(data[off:])
}
