package media

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// LoadImage decodes an uploaded card image into a bitmap. Orientation and pixels are left as uploaded.
func LoadImage(u Upload) (image.Image, error) {
	if !IsCardImage(u.FileName) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, u.FileName)
	}
	if len(u.Data) == 0 {
		return nil, fmt.Errorf("uploaded file %s is empty", u.FileName)
	}
	img, err := imaging.Decode(bytes.NewReader(u.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode uploaded image %s: %w", u.FileName, err)
	}
	return img, nil
}
