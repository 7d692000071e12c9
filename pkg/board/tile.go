package board

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// TileCountError indicates the number of images does not fill the grid.
type TileCountError struct {
	Count int
	Cols  int
	Rows  int
}

// Error implements error.
func (e *TileCountError) Error() string {
	return fmt.Sprintf("board: %d images cannot fit into a %dx%d=%d array",
		e.Count, e.Cols, e.Rows, e.Cols*e.Rows)
}

// TileSizeError indicates an image whose size disagrees with the
// reference image of its column or row.
type TileSizeError struct {
	Index    int
	RefIndex int
	Size     image.Point
	RefSize  image.Point
}

// Error implements error.
func (e *TileSizeError) Error() string {
	return fmt.Sprintf("board: the size of image #%d (%dx%d) does not agree with that of image #%d (%dx%d)",
		e.Index, e.Size.X, e.Size.Y, e.RefIndex, e.RefSize.X, e.RefSize.Y)
}

// TileOptions controls TileImages.
type TileOptions struct {
	// TileSize forces every image to be resized to this size. When nil,
	// images keep their sizes and must line up: within each column all
	// widths must match the row-0 image, and within each row all
	// heights must match the column-0 image.
	TileSize *image.Point

	// Spacing is the (horizontal, vertical) gap between adjacent tiles.
	Spacing image.Point

	// Margins is the (horizontal, vertical) padding around the grid.
	Margins image.Point

	// Background fills spacing and margins. Nil means white.
	Background color.Color

	// ReleaseSources drops the input slice's references after pasting
	// so large intermediates can be collected while the canvas lives on.
	ReleaseSources bool
}

// TileImages arranges cols*rows images into a grid, row by row, and
// returns the combined canvas.
func TileImages(images []image.Image, cols, rows int, opts TileOptions) (image.Image, error) {
	if len(images) != cols*rows {
		return nil, &TileCountError{Count: len(images), Cols: cols, Rows: rows}
	}

	bg := opts.Background
	if bg == nil {
		bg = color.White
	}

	var canvasWidth, canvasHeight int
	if opts.TileSize != nil {
		canvasWidth = opts.TileSize.X*cols + opts.Spacing.X*(cols-1) + opts.Margins.X*2
		canvasHeight = opts.TileSize.Y*rows + opts.Spacing.Y*(rows-1) + opts.Margins.Y*2
	} else {
		// Column widths are set by row 0, row heights by column 0.
		canvasWidth = opts.Spacing.X*(cols-1) + opts.Margins.X*2
		for col := 0; col < cols; col++ {
			ref := images[col].Bounds().Size()
			canvasWidth += ref.X
			for row := 1; row < rows; row++ {
				idx := row*cols + col
				size := images[idx].Bounds().Size()
				if size.X != ref.X {
					return nil, &TileSizeError{
						Index: idx, RefIndex: col,
						Size: size, RefSize: ref,
					}
				}
			}
		}
		canvasHeight = opts.Spacing.Y*(rows-1) + opts.Margins.Y*2
		for row := 0; row < rows; row++ {
			refIdx := row * cols
			ref := images[refIdx].Bounds().Size()
			canvasHeight += ref.Y
			for col := 1; col < cols; col++ {
				idx := row*cols + col
				size := images[idx].Bounds().Size()
				if size.Y != ref.Y {
					return nil, &TileSizeError{
						Index: idx, RefIndex: refIdx,
						Size: size, RefSize: ref,
					}
				}
			}
		}
	}

	canvas := imaging.New(canvasWidth, canvasHeight, bg)
	y := opts.Margins.Y
	for row := 0; row < rows; row++ {
		x := opts.Margins.X
		rowHeight := images[row*cols].Bounds().Dy()
		for col := 0; col < cols; col++ {
			img := images[row*cols+col]
			if opts.TileSize != nil {
				img = imaging.Resize(img, opts.TileSize.X, opts.TileSize.Y, imaging.Lanczos)
			}
			canvas = imaging.Paste(canvas, img, image.Pt(x, y))
			x += img.Bounds().Dx() + opts.Spacing.X
		}
		if opts.TileSize != nil {
			rowHeight = opts.TileSize.Y
		}
		y += rowHeight + opts.Spacing.Y
	}

	if opts.ReleaseSources {
		for i := range images {
			images[i] = nil
		}
	}

	return canvas, nil
}
