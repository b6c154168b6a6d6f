package media

import (
	"path/filepath"
	"strings"
)

var supportedImageExtensions = map[string]string{
	".jpg": FormatJPEG, ".jpeg": FormatJPEG, ".png": FormatPNG,
}

// IsCardImage checks if the filename has one of the accepted upload extensions
func IsCardImage(filename string) bool {
	_, ok := supportedImageExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}
