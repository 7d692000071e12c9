package board

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// MeasureTextBlock returns the pixel size a multi-line text block will
// occupy when drawn with f. Height grows by one line height per line,
// width is that of the widest line.
func MeasureTextBlock(f *Font, text string, spacing float64) (width, height int) {
	lineHeight := int(math.Round(float64(f.Size) * spacing))
	for _, line := range strings.Split(text, "\n") {
		if w := font.MeasureString(f.Face, line).Ceil(); w > width {
			width = w
		}
		height += lineHeight
	}
	return width, height
}

// DrawTextBlock draws a multi-line text block with its top-left corner
// at (x, y) and returns the block size.
func DrawTextBlock(dst draw.Image, x, y int, text string, f *Font, col color.Color, spacing float64) (width, height int) {
	lineHeight := int(math.Round(float64(f.Size) * spacing))
	ascent := f.Face.Metrics().Ascent.Ceil()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: f.Face,
	}
	for _, line := range strings.Split(text, "\n") {
		d.Dot = fixed.P(x, y+ascent)
		d.DrawString(line)
		if w := font.MeasureString(f.Face, line).Ceil(); w > width {
			width = w
		}
		height += lineHeight
		y += lineHeight
	}
	return width, height
}

// drawString draws a single line with its top-left corner at (x, y).
func drawString(dst draw.Image, x, y int, text string, f *Font, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: f.Face,
		Dot:  fixed.P(x, y+f.Face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// measureString returns the pixel size of a single line drawn with f.
func measureString(f *Font, text string) (width, height int) {
	m := f.Face.Metrics()
	return font.MeasureString(f.Face, text).Ceil(), (m.Ascent + m.Descent).Ceil()
}
