package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

const dataURIPrefix = "data:image/png;base64,"

// Encoder turns decoded card images into inline references the result page can display.
type Encoder struct {
	maxSize int
}

// NewEncoder returns an encoder. maxSize caps the longest side in pixels; 0 keeps the original size.
func NewEncoder(maxSize int) *Encoder {
	return &Encoder{maxSize: maxSize}
}

// fitDimensions computes the size where the longest side matches maxSize, never upscaling.
func fitDimensions(origWidth, origHeight, maxSize int) (int, int) {
	var newWidth, newHeight int
	if origWidth > origHeight {
		if origWidth <= maxSize {
			newWidth, newHeight = origWidth, origHeight
		} else {
			newWidth = maxSize
			newHeight = int(math.Round(float64(origHeight) * (float64(maxSize) / float64(origWidth))))
		}
	} else {
		if origHeight <= maxSize {
			newWidth, newHeight = origWidth, origHeight
		} else {
			newHeight = maxSize
			newWidth = int(math.Round(float64(origWidth) * (float64(maxSize) / float64(origHeight))))
		}
	}
	return maxInt(1, newWidth), maxInt(1, newHeight)
}

// DataURI re-encodes img as PNG and returns it as a base64 data URI.
func (e *Encoder) DataURI(img image.Image) (string, error) {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return "", fmt.Errorf("invalid image dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}

	out := img
	if e.maxSize > 0 {
		w, h := fitDimensions(bounds.Dx(), bounds.Dy(), e.maxSize)
		if w != bounds.Dx() || h != bounds.Dy() {
			out = imaging.Resize(img, w, h, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return "", fmt.Errorf("preview encoding failed: %w", err)
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// EncodePNG returns the PNG bytes of img, the representation handed to the OCR engine.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("png encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}
