package ffmpeg

import (
	"context"
)

// Probe runs ffprobe against path and returns the raw JSON document with
// the container and per-stream metadata. Pass an empty bin to use the
// platform default binary name.
func Probe(ctx context.Context, bin, path string) ([]byte, error) {
	if bin == "" {
		_, bin = GuessBinaries()
	}
	args := []string{
		"-loglevel", "fatal",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		"-i", path,
	}
	return output(ctx, bin, args)
}
