// Package preprocess normalizes raw images into a form that favors OCR
// accuracy: grayscale, fixed 3x upscale, small-radius median filter.
package preprocess

import (
	"image"
	"image/color"
	"sort"

	"golang.org/x/image/draw"
)

// scaleFactor is fixed: OCR accuracy degrades sharply on small glyphs,
// so pages are always upscaled before recognition.
const scaleFactor = 3

// medianRadius gives a 3x3 window.
const medianRadius = 1

// ForOCR converts an image to grayscale, upscales it 3x with a
// Catmull-Rom kernel and applies a 3x3 median filter. It is a pure
// transform with no error path.
func ForOCR(src image.Image) *image.Gray {
	gray := toGray(src)
	up := upscale(gray, scaleFactor)
	return median(up, medianRadius)
}

func toGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.Set(x, y, color.GrayModel.Convert(src.At(x, y)))
		}
	}
	return dst
}

func upscale(src *image.Gray, factor int) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	return dst
}

// median replaces each pixel with the median of its (2r+1)^2 window,
// clamping the window at image edges.
func median(src *image.Gray, radius int) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	window := make([]byte, 0, (2*radius+1)*(2*radius+1))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			window = window[:0]
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					px, py := x+dx, y+dy
					if px < bounds.Min.X || px >= bounds.Max.X || py < bounds.Min.Y || py >= bounds.Max.Y {
						continue
					}
					window = append(window, src.GrayAt(px, py).Y)
				}
			}
			sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
			dst.SetGray(x, y, color.Gray{Y: window[len(window)/2]})
		}
	}
	return dst
}
