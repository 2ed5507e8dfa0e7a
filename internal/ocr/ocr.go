// Package ocr defines the optical character recognition capability used
// by the recognition pipeline.
package ocr

import (
	"context"
	"image"
)

// PageSegMode controls how the engine segments the page layout. The zero
// value leaves the engine's default segmentation in place.
type PageSegMode int

// Segmentation modes used by the pipeline (Tesseract numbering).
const (
	PSMDefault     PageSegMode = 0
	PSMAuto        PageSegMode = 3
	PSMSingleBlock PageSegMode = 6
	PSMSparseText  PageSegMode = 11
)

// Params carries per-call recognition parameters.
type Params struct {
	Languages   []string
	PageSegMode PageSegMode
}

// Engine recognizes text in a single image.
type Engine interface {
	Recognize(ctx context.Context, img image.Image, params Params) (string, error)
}
