// media/types.go
package media

import "errors"

// ErrUnsupportedFormat is returned for uploads whose extension is not an accepted card image type.
var ErrUnsupportedFormat = errors.New("unsupported image format")

const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
)

// Upload is one user-supplied file, in the order it was received
type Upload struct {
	FileName string
	Data     []byte
}
