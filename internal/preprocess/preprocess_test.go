package preprocess

import (
	"image"
	"image/color"
	"testing"
)

func TestForOCRDimensionsAndModel(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 25))
	for y := 0; y < 25; y++ {
		for x := 0; x < 40; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 9), B: 128, A: 255})
		}
	}

	out := ForOCR(src)
	if got := out.Bounds(); got.Dx() != 120 || got.Dy() != 75 {
		t.Fatalf("expected 120x75 output, got %dx%d", got.Dx(), got.Dy())
	}
}

func TestForOCRUniformImageStaysUniform(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			src.SetGray(x, y, color.Gray{Y: 200})
		}
	}

	out := ForOCR(src)
	bounds := out.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if got := out.GrayAt(x, y).Y; got != 200 {
				t.Fatalf("pixel (%d,%d) = %d, expected 200", x, y, got)
			}
		}
	}
}

func TestMedianSuppressesSpeckle(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 9, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			src.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	// Single dark speckle in the middle.
	src.SetGray(4, 4, color.Gray{Y: 0})

	out := median(src, 1)
	if got := out.GrayAt(4, 4).Y; got != 255 {
		t.Fatalf("speckle survived median filter: %d", got)
	}
}
