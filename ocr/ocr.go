// Package ocr defines the contract between the extraction pipeline and the
// engine that turns a card bitmap into plain text. Engines return their
// best-effort transcription with no layout information.
package ocr

import (
	"context"
	"image"
	"strings"
)

// Extractor is the OCR collaborator: one bitmap in, plain text out.
type Extractor interface {
	Name() string
	ExtractText(ctx context.Context, img image.Image) (string, error)
}

// Normalize trims the trailing whitespace engines tend to append. Interior text is left untouched
// so detector offsets line up with what the masker sees.
func Normalize(text string) string {
	return strings.TrimRight(text, " \t\r\n\f")
}
