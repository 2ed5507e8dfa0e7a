package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract implements Engine using the gosseract client. The engine mode
// is the client default (OEM 3); languages and segmentation come from the
// per-call Params.
type Tesseract struct {
	clientFactory func() *gosseract.Client
}

// NewTesseract constructs a Tesseract-backed OCR engine.
func NewTesseract() *Tesseract {
	return &Tesseract{clientFactory: gosseract.NewClient}
}

// Recognize runs OCR over a single image and returns the trimmed text.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image, params Params) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	c := t.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if len(params.Languages) > 0 {
		if err := c.SetLanguage(params.Languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if params.PageSegMode != PSMDefault {
		if err := c.SetPageSegMode(gosseract.PageSegMode(params.PageSegMode)); err != nil {
			return "", fmt.Errorf("set page seg mode: %w", err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

var _ Engine = (*Tesseract)(nil)
