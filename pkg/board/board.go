package board

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"thirdcoast.systems/storyboard/pkg/frame"
	"thirdcoast.systems/storyboard/pkg/videoinfo"
)

// Version is stamped into the banner at the bottom of every storyboard.
const Version = "0.1.0"

// Defaults for Generate. A 4x4 grid of 480px thumbnails with a little
// breathing room reads well for most videos.
const (
	defaultCols           = 4
	defaultRows           = 4
	defaultThumbnailWidth = 480
)

var (
	defaultTileSpacing = image.Pt(8, 6)
	defaultMargins     = image.Pt(10, 10)
)

// Options controls StoryBoard construction.
type Options struct {
	// FFmpegBin and FFprobeBin name the binaries to run. Empty means
	// the platform default names, resolved through PATH.
	FFmpegBin  string
	FFprobeBin string

	// FrameCodec is the intermediate image codec used when extracting
	// frames. Empty means png.
	FrameCodec string

	// DurationOverride substitutes the container duration when the
	// metadata is broken. Setting it also switches frame extraction to
	// output seeking, since a container needing the override cannot be
	// trusted to seek by index either.
	DurationOverride *float64

	Logger *slog.Logger
}

// StoryBoard generates a storyboard image for one video: a metadata
// sheet, a grid of timestamped thumbnails, and a banner.
type StoryBoard struct {
	Video *videoinfo.Video

	ffmpegBin  string
	frameCodec string
	outputSeek bool
	frames     []*frame.Frame
	log        *slog.Logger
}

// New probes the video at path and returns a StoryBoard ready to
// generate frames and the final image.
func New(ctx context.Context, path string, opts Options) (*StoryBoard, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	video, err := videoinfo.Probe(ctx, path, videoinfo.Options{
		FFprobeBin:       opts.FFprobeBin,
		DurationOverride: opts.DurationOverride,
		Logger:           log,
	})
	if err != nil {
		return nil, err
	}

	return &StoryBoard{
		Video:      video,
		ffmpegBin:  opts.FFmpegBin,
		frameCodec: opts.FrameCodec,
		outputSeek: opts.DurationOverride != nil,
		log:        log,
	}, nil
}

// Frames returns the frames extracted so far.
func (s *StoryBoard) Frames() []*frame.Frame {
	return s.frames
}

// GenFrames extracts count equally spaced frames, at positions 1/2N,
// 3/2N, ..., (2N-1)/2N of the duration. Frames already extracted for
// the same count are reused. Extraction runs a few ffmpeg processes in
// parallel; the resulting slice is ordered by timestamp regardless.
func (s *StoryBoard) GenFrames(ctx context.Context, count int) error {
	if len(s.frames) == count {
		return nil
	}

	duration := s.Video.Duration
	if duration <= 0 {
		return fmt.Errorf("board: no usable duration for %s", s.Video.Path)
	}
	interval := duration / float64(count)

	frames := make([]*frame.Frame, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(extractParallelism(count))
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			timestamp := interval * (float64(i) + 0.5)
			s.log.Debug("extracting frame",
				"video", s.Video.Filename, "n", i+1, "of", count, "timestamp", timestamp)
			f, err := frame.Extract(gctx, s.Video.Path, timestamp, frame.Options{
				FFmpegBin:  s.ffmpegBin,
				Codec:      s.frameCodec,
				OutputSeek: s.outputSeek,
			})
			if err != nil {
				return err
			}
			frames[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.frames = frames
	return nil
}

func extractParallelism(count int) int {
	if count < 4 {
		return count
	}
	return 4
}

// GenerateOptions controls Generate. The zero value produces the
// standard storyboard: metadata sheet on top, a 4x4 grid of 480px
// thumbnails with right-aligned timestamps, and a banner at the bottom.
type GenerateOptions struct {
	// OmitMetadataSheet drops the metadata section.
	OmitMetadataSheet bool

	// OmitBanner drops the banner section.
	OmitBanner bool

	// OmitTimestamps drops the timestamp overlays on the thumbnails.
	OmitTimestamps bool

	// IncludeSHA1 adds the file digest to the metadata sheet. Hashing
	// the whole file is expensive on large videos.
	IncludeSHA1 bool

	// Progress receives digest progress, see videoinfo.Video.SHA1.
	Progress func(done, total int64)

	// Cols and Rows shape the thumbnail grid. Zero means 4.
	Cols int
	Rows int

	// ThumbnailWidth is the width of each thumbnail. Zero means 480.
	ThumbnailWidth int

	// ThumbnailAspectRatio overrides the thumbnail aspect ratio. Zero
	// means the video display aspect ratio, falling back to the pixel
	// aspect ratio of the extracted frames.
	ThumbnailAspectRatio float64

	// TileSpacing is the gap between thumbnails. Nil means (8, 6).
	TileSpacing *image.Point

	// Margins is the padding around the whole storyboard. Nil means
	// (10, 10).
	Margins *image.Point

	// SectionSpacing is the vertical gap between sections. Nil means
	// the vertical tile spacing.
	SectionSpacing *int

	// Background fills everything behind thumbnails and text. Nil
	// means white.
	Background color.Color

	// TextColor is used for the metadata sheet and banner. Nil means
	// black.
	TextColor color.Color

	// LineSpacing is the metadata sheet line spacing. Zero means 1.2.
	LineSpacing float64

	// TextFont and TimestampFont default to the embedded face.
	TextFont       *Font
	TimestampFont  *Font
	TimestampAlign Align
}

// Generate produces the complete storyboard image.
func (s *StoryBoard) Generate(ctx context.Context, opts GenerateOptions) (image.Image, error) {
	cols, rows := opts.Cols, opts.Rows
	if cols == 0 {
		cols = defaultCols
	}
	if rows == 0 {
		rows = defaultRows
	}
	thumbWidth := opts.ThumbnailWidth
	if thumbWidth == 0 {
		thumbWidth = defaultThumbnailWidth
	}
	tileSpacing := defaultTileSpacing
	if opts.TileSpacing != nil {
		tileSpacing = *opts.TileSpacing
	}
	margins := defaultMargins
	if opts.Margins != nil {
		margins = *opts.Margins
	}
	sectionSpacing := tileSpacing.Y
	if opts.SectionSpacing != nil {
		sectionSpacing = *opts.SectionSpacing
	}
	background := opts.Background
	if background == nil {
		background = color.White
	}
	textColor := opts.TextColor
	if textColor == nil {
		textColor = color.Black
	}
	lineSpacing := opts.LineSpacing
	if lineSpacing == 0 {
		lineSpacing = 1.2
	}

	textFont := opts.TextFont
	timestampFont := opts.TimestampFont
	if textFont == nil || timestampFont == nil {
		def, err := DefaultFont()
		if err != nil {
			return nil, err
		}
		if textFont == nil {
			textFont = def
		}
		if timestampFont == nil {
			timestampFont = def
		}
	}

	s.log.Debug("generating storyboard grid", "video", s.Video.Filename, "cols", cols, "rows", rows)
	grid, err := s.genGrid(ctx, cols, rows, thumbWidth, gridOptions{
		aspectRatio:    opts.ThumbnailAspectRatio,
		tileSpacing:    tileSpacing,
		background:     background,
		drawTimestamp:  !opts.OmitTimestamps,
		timestampFont:  timestampFont,
		timestampAlign: opts.TimestampAlign,
	})
	if err != nil {
		return nil, err
	}
	totalWidth := grid.Bounds().Dx()

	sections := []image.Image{}
	if !opts.OmitMetadataSheet {
		s.log.Debug("generating metadata sheet", "video", s.Video.Filename)
		sheet, err := s.genMetadataSheet(totalWidth, textFont, textColor, background, lineSpacing, opts.IncludeSHA1, opts.Progress)
		if err != nil {
			return nil, err
		}
		sections = append(sections, sheet)
	}
	sections = append(sections, grid)
	if !opts.OmitBanner {
		sections = append(sections, genBanner(totalWidth, textFont, textColor, background))
	}

	return TileImages(sections, 1, len(sections), TileOptions{
		Spacing:        image.Pt(0, sectionSpacing),
		Margins:        margins,
		Background:     background,
		ReleaseSources: true,
	})
}

type gridOptions struct {
	aspectRatio    float64
	tileSpacing    image.Point
	background     color.Color
	drawTimestamp  bool
	timestampFont  *Font
	timestampAlign Align
}

// genGrid extracts the frames and tiles their thumbnails.
func (s *StoryBoard) genGrid(ctx context.Context, cols, rows, thumbWidth int, opts gridOptions) (image.Image, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("board: tile %dx%d is not positive", cols, rows)
	}
	if err := s.GenFrames(ctx, cols*rows); err != nil {
		return nil, err
	}

	aspect := opts.aspectRatio
	if aspect == 0 {
		aspect = s.Video.DAR
	}
	if aspect == 0 {
		size := s.frames[0].Image.Bounds().Size()
		aspect = float64(size.X) / float64(size.Y)
	}

	thumbs := make([]image.Image, 0, len(s.frames))
	for _, f := range s.frames {
		thumb, err := Thumbnail(f, thumbWidth, ThumbnailOptions{
			AspectRatio:    aspect,
			DrawTimestamp:  opts.drawTimestamp,
			TimestampFont:  opts.timestampFont,
			TimestampAlign: opts.timestampAlign,
		})
		if err != nil {
			return nil, err
		}
		thumbs = append(thumbs, thumb)
	}

	return TileImages(thumbs, cols, rows, TileOptions{
		Spacing:        opts.tileSpacing,
		Background:     opts.background,
		ReleaseSources: true,
	})
}

// genMetadataSheet renders the metadata report into a section as wide
// as the thumbnail grid.
func (s *StoryBoard) genMetadataSheet(totalWidth int, f *Font, textColor, background color.Color, lineSpacing float64, includeSHA1 bool, progress func(done, total int64)) (image.Image, error) {
	text, err := s.Video.FormatMetadata(videoinfo.ReportOptions{
		IncludeSHA1: includeSHA1,
		Progress:    progress,
	})
	if err != nil {
		return nil, err
	}

	_, height := MeasureTextBlock(f, text, lineSpacing)
	sheet := imaging.New(totalWidth, height, background)
	DrawTextBlock(sheet, 0, 0, text, f, textColor, lineSpacing)
	return sheet, nil
}

// genBanner renders the centered banner line.
func genBanner(totalWidth int, f *Font, textColor, background color.Color) image.Image {
	text := fmt.Sprintf("Generated by storyboard version %s", Version)
	width, height := MeasureTextBlock(f, text, 1.2)

	banner := imaging.New(totalWidth, height, background)
	DrawTextBlock(banner, (totalWidth-width)/2, 0, text, f, textColor, 1.2)
	return banner
}
