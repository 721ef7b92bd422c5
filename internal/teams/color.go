package teams

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const (
	defaultColor   = "#000000"
	fallbackColor  = "#FFFFFF"
	whiteThreshold = 200
	blackThreshold = 50
	sampleGrid     = 50
)

// DominantColor returns the hex code of the dominant color of a logo image,
// ignoring near-white and near-black pixels so backgrounds and outlines do
// not win. Undecodable images yield the default color.
func DominantColor(data []byte) string {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return defaultColor
	}

	bounds := img.Bounds()
	stepX := max(1, bounds.Dx()/sampleGrid)
	stepY := max(1, bounds.Dy()/sampleGrid)

	type rgb struct{ r, g, b uint8 }
	counts := make(map[rgb]int)
	var best rgb
	bestCount := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			r, g, b := uint8(r16>>8), uint8(g16>>8), uint8(b16>>8)
			if r > whiteThreshold && g > whiteThreshold && b > whiteThreshold {
				continue
			}
			if r < blackThreshold && g < blackThreshold && b < blackThreshold {
				continue
			}
			// Quantize to 32-step buckets so near-identical shades pool together.
			q := rgb{r &^ 0x1f, g &^ 0x1f, b &^ 0x1f}
			counts[q]++
			if counts[q] > bestCount {
				bestCount = counts[q]
				best = q
			}
		}
	}

	if bestCount == 0 {
		return defaultColor
	}
	return fmt.Sprintf("#%02x%02x%02x", best.r, best.g, best.b)
}
