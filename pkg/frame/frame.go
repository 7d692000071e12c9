// Package frame extracts single video frames as in-memory images by
// shelling out to ffmpeg.
package frame

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"thirdcoast.systems/storyboard/pkg/ffmpeg"
)

var (
	// ErrNegativeTimestamp indicates a seek target before the start of
	// the video.
	ErrNegativeTimestamp = errors.New("frame: negative timestamp")

	// ErrNoFrame indicates ffmpeg exited cleanly but produced no image
	// data, which happens when seeking past the end of the video.
	ErrNoFrame = errors.New("frame: no frame extracted")

	// ErrBadImageData indicates ffmpeg produced output that does not
	// decode as an image.
	ErrBadImageData = errors.New("frame: bad image data")
)

// Frame is a single decoded video frame and the timestamp it was
// extracted at.
type Frame struct {
	Timestamp float64
	Image     image.Image
}

// Options controls frame extraction.
type Options struct {
	// FFmpegBin is the ffmpeg binary to run. Empty means the platform
	// default name, resolved through PATH.
	FFmpegBin string

	// Codec is the intermediate image codec ffmpeg encodes the frame
	// with. Empty means png, which is lossless and always compiled in.
	Codec string

	// OutputSeek makes ffmpeg decode every frame up to the target
	// instead of jumping via the container index. Much slower, but
	// accurate on containers with broken metadata.
	OutputSeek bool
}

// Extract seeks to timestamp in the video at path and returns the decoded
// frame. The frame travels from ffmpeg over stdout, so nothing touches
// the filesystem.
func Extract(ctx context.Context, path string, timestamp float64, opts Options) (*Frame, error) {
	if timestamp < 0 {
		return nil, fmt.Errorf("%w: %f", ErrNegativeTimestamp, timestamp)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}

	codec := opts.Codec
	if codec == "" {
		codec = "png"
	}

	seek := ffmpeg.Seek(timestamp)
	if opts.OutputSeek {
		seek = ffmpeg.SeekOutput(timestamp)
	}

	cmd := ffmpeg.NewCommand(path, ffmpeg.StdoutTarget,
		seek,
		ffmpeg.Format("image2"),
		ffmpeg.VideoCodec(codec),
		ffmpeg.Frames(1),
	)

	data, err := cmd.Run(ctx, opts.FFmpegBin)
	if err != nil {
		return nil, fmt.Errorf("frame: extracting at %.2fs from %s: %w", timestamp, path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w at %fs from %s", ErrNoFrame, timestamp, path)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImageData, err)
	}

	return &Frame{Timestamp: timestamp, Image: img}, nil
}
