// Package recognize maps a stored document to recognized text. PDFs with
// an embedded text layer are read directly; everything else goes through
// image preprocessing and OCR.
package recognize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/ledongthuc/pdf"

	"docvoice-backend/internal/files"
	"docvoice-backend/internal/ocr"
	"docvoice-backend/internal/preprocess"
	"docvoice-backend/internal/raster"
	"docvoice-backend/internal/shared/telemetry"
)

// ErrRecognition is the only failure callers see; the cause is logged at
// the component boundary, never surfaced to the end user.
var ErrRecognition = errors.New("recognition failed")

// Mode selects the extraction strategy for PDFs.
type Mode int

const (
	// ModeText reads the embedded text layer first, falling back to
	// rasterized OCR when the layer is empty.
	ModeText Mode = iota
	// ModePhoto forces rasterized OCR, for PDFs whose pages are scans.
	ModePhoto
)

// Languages is the fixed recognition lexicon.
var Languages = []string{"rus", "eng"}

// Extractor runs the recognition pipeline over a stored document.
type Extractor struct {
	OCR    ocr.Engine
	Raster raster.Rasterizer
}

// Extract returns the recognized text for a stored document, trimmed of
// surrounding whitespace.
func (e *Extractor) Extract(ctx context.Context, doc files.StoredFile, mode Mode) (string, error) {
	text, err := e.extract(ctx, doc, mode)
	if err != nil {
		telemetry.Error("recognize.failed", map[string]any{
			"user_id": doc.UserID,
			"path":    doc.Path,
			"kind":    string(doc.Kind),
			"mode":    int(mode),
			"err":     err.Error(),
		})
		return "", ErrRecognition
	}
	return strings.TrimSpace(text), nil
}

func (e *Extractor) extract(ctx context.Context, doc files.StoredFile, mode Mode) (string, error) {
	if doc.Kind != files.KindPDF {
		// Images carry no text layer; both modes OCR the pixels.
		return e.recognizeImageFile(ctx, doc.Path)
	}
	if mode == ModePhoto {
		return e.recognizePDFPages(ctx, doc.Path, ocr.PSMSingleBlock)
	}
	text, err := readTextLayer(doc.Path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) != "" {
		return text, nil
	}
	return e.recognizePDFPages(ctx, doc.Path, ocr.PSMDefault)
}

func (e *Extractor) recognizeImageFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	return e.OCR.Recognize(ctx, preprocess.ForOCR(img), ocr.Params{Languages: Languages})
}

func (e *Extractor) recognizePDFPages(ctx context.Context, path string, psm ocr.PageSegMode) (string, error) {
	pages, err := e.Raster.Pages(ctx, path)
	if err != nil {
		return "", fmt.Errorf("rasterize pdf: %w", err)
	}
	var b strings.Builder
	for n, page := range pages {
		text, err := e.OCR.Recognize(ctx, preprocess.ForOCR(page), ocr.Params{
			Languages:   Languages,
			PageSegMode: psm,
		})
		if err != nil {
			return "", fmt.Errorf("ocr page %d: %w", n+1, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

var readTextLayer = textLayer

// textLayer reads the embedded text of a PDF.
func textLayer(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read text layer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("copy text layer: %w", err)
	}
	return buf.String(), nil
}
