package genai

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

// renderSyntheticIcon draws a deterministic placeholder icon from the seed:
// a solid background with a centered ring in an accent color. The same seed
// always produces the same bytes, so key-less environments still exercise
// the reproducibility contract end to end.
func renderSyntheticIcon(width, height int, seed int64) []byte {
	if width <= 0 {
		width = 512
	}
	if height <= 0 {
		height = 512
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	base := colorFromSeed(seed, 0)
	accent := colorFromSeed(seed, 3)
	draw.Draw(img, img.Bounds(), &image.Uniform{base}, image.Point{}, draw.Src)

	cx, cy := width/2, height/2
	radius := minInt(width, height) / 3
	thickness := maxInt(8, radius/6)
	inner := (radius - thickness) * (radius - thickness)
	outer := (radius + thickness) * (radius + thickness)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := x-cx, y-cy
			dist := dx*dx + dy*dy
			if dist >= inner && dist <= outer {
				img.Set(x, y, accent)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

func colorFromSeed(seed int64, shift uint) color.RGBA {
	v := uint64(seed) >> (shift * 8)
	return color.RGBA{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: 255,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
