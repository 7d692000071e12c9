package board

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"thirdcoast.systems/storyboard/pkg/frame"
	"thirdcoast.systems/storyboard/pkg/utils/format"
)

// Align is the horizontal alignment of the timestamp overlay. The
// timestamp always sits at the bottom of the thumbnail.
type Align int

const (
	AlignRight Align = iota
	AlignLeft
	AlignCenter
)

// AlignmentError indicates an Align value outside the defined constants.
type AlignmentError struct {
	Align Align
}

// Error implements error.
func (e *AlignmentError) Error() string {
	return fmt.Sprintf("board: timestamp alignment %d not recognized", int(e.Align))
}

// timestampMargin is the gap in pixels between the timestamp overlay
// and the thumbnail edges.
const timestampMargin = 5

// ThumbnailOptions controls Thumbnail.
type ThumbnailOptions struct {
	// AspectRatio is the target width/height ratio. Zero means the
	// pixel aspect ratio of the frame itself.
	AspectRatio float64

	// DrawTimestamp overlays the frame timestamp near the bottom edge.
	DrawTimestamp bool

	// TimestampFont is the overlay font. Nil panics; callers that set
	// DrawTimestamp must supply one.
	TimestampFont *Font

	TimestampAlign Align
}

// Thumbnail scales a frame down to the given width and optionally
// stamps the frame timestamp over it. The height follows from the
// aspect ratio, so anamorphic video comes out with square pixels when
// the display aspect ratio is passed in.
func Thumbnail(f *frame.Frame, width int, opts ThumbnailOptions) (image.Image, error) {
	bounds := f.Image.Bounds()
	aspect := opts.AspectRatio
	if aspect == 0 {
		aspect = float64(bounds.Dx()) / float64(bounds.Dy())
	}
	height := int(math.Round(float64(width) / aspect))

	thumb := imaging.Resize(f.Image, width, height, imaging.Lanczos)

	if !opts.DrawTimestamp {
		return thumb, nil
	}

	text, err := format.HumanTime(f.Timestamp, 0, false)
	if err != nil {
		return nil, err
	}
	tw, th := measureString(opts.TimestampFont, text)

	y := height - timestampMargin - th
	var x int
	switch opts.TimestampAlign {
	case AlignRight:
		x = width - timestampMargin - tw
	case AlignLeft:
		x = timestampMargin
	case AlignCenter:
		x = (width - tw) / 2
	default:
		return nil, &AlignmentError{Align: opts.TimestampAlign}
	}

	// White text over a 1px black outline keeps the timestamp legible
	// on any background.
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			drawString(thumb, x+dx, y+dy, text, opts.TimestampFont, color.Black)
		}
	}
	drawString(thumb, x, y, text, opts.TimestampFont, color.White)

	return thumb, nil
}
