package constants

import "strings"

// AllowedImageExtensions holds the extensions accepted when indexing an
// image folder.
var AllowedImageExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsImageExt checks if a file extension is in the allowed image set.
func IsImageExt(ext string) bool {
	_, ok := AllowedImageExtensions[NormalizeExt(ext)]
	return ok
}
