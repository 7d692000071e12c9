// Package board composes storyboard images: thumbnail grids with
// timestamp overlays, a metadata sheet, and a banner, tiled onto a
// single canvas.
package board

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// defaultFontSize is the point size used when no font is supplied.
const defaultFontSize = 16

// Font pairs a rasterized face with the point size it was loaded at.
// The size is carried separately because line spacing is derived from
// it rather than from face metrics.
type Font struct {
	Face font.Face
	Size int
}

// DefaultFont loads the embedded Go Regular face at the default size.
func DefaultFont() (*Font, error) {
	return fontFromBytes(goregular.TTF, defaultFontSize)
}

// LoadFont loads a TrueType or OpenType font file at the given size.
func LoadFont(path string, size int) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("board: font %s: %w", path, err)
	}
	return fontFromBytes(data, size)
}

func fontFromBytes(data []byte, size int) (*Font, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("board: parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("board: build face: %w", err)
	}
	return &Font{Face: face, Size: size}, nil
}
