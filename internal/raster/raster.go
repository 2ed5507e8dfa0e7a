// Package raster converts PDF pages into in-memory images for OCR.
package raster

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// Rasterizer renders every page of a PDF file as an image.
type Rasterizer interface {
	Pages(ctx context.Context, pdfPath string) ([]image.Image, error)
}

// Fitz implements Rasterizer using go-fitz (MuPDF).
type Fitz struct{}

// NewFitz constructs a go-fitz rasterizer.
func NewFitz() *Fitz {
	return &Fitz{}
}

// Pages renders each page of the PDF at pdfPath.
func (f *Fitz) Pages(ctx context.Context, pdfPath string) ([]image.Image, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	count := doc.NumPage()
	if count == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	pages := make([]image.Image, 0, count)
	for n := 0; n < count; n++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		img, err := doc.Image(n)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", n+1, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}

var _ Rasterizer = (*Fitz)(nil)
