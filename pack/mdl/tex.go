package mdl

import "github.com/bgda-tools/bgda_browser/utils"

// TextureSize reads the width and height from a .tex header.
func TextureSize(data []byte) (int, int) {
	return int(utils.LEInt16(data, 0)), int(utils.LEInt16(data, 2))
}
