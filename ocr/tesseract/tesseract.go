package tesseract

import (
	"context"
	"fmt"
	"image"

	"github.com/camden-git/datasentinel/media"
	"github.com/camden-git/datasentinel/ocr"
	"github.com/otiai10/gosseract/v2"
)

// Engine implements ocr.Extractor with a gosseract client per call.
type Engine struct {
	clientFactory func() *gosseract.Client
}

// NewEngine constructs a Tesseract-backed extractor.
func NewEngine() *Engine {
	return &Engine{clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return "tesseract" }

// ExtractText runs Tesseract over img with its default settings: no language hints, plain text output.
func (e *Engine) ExtractText(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := media.EncodePNG(img)
	if err != nil {
		return "", fmt.Errorf("prepare image for ocr: %w", err)
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return ocr.Normalize(text), nil
}

var _ ocr.Extractor = (*Engine)(nil)
