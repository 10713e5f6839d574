package compress

import (
	"path/filepath"
	"strings"
)

// NinePatchSuffix marks stretchable UI assets. They must never be re-encoded.
const NinePatchSuffix = ".9.png"

// PngExt are png extensions the conversion handles.
var PngExt = map[string]bool{
	".png": true,
}

// JpegExt are jpeg extensions the conversion handles.
var JpegExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
}

// ImageExt is every extension the conversion handles.
var ImageExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Ext returns the lower-cased extension of file, with its leading dot.
func Ext(file string) string {
	return strings.ToLower(filepath.Ext(file))
}

// WebpPath returns the sibling of file with the same stem and a .webp extension.
func WebpPath(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + ".webp"
}
