package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

var (
	// ErrToolNotFound indicates a required binary is not on PATH.
	ErrToolNotFound = errors.New("ffmpeg: tool not found")

	// ErrToolCorrupted indicates a binary exists but does not behave like
	// the FFmpeg tool it is named after.
	ErrToolCorrupted = errors.New("ffmpeg: tool corrupted")
)

// ToolError wraps a locator failure with the binary name involved.
type ToolError struct {
	Bin string
	Err error
}

// Error implements error.
func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %v", e.Bin, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ToolError) Unwrap() error {
	return e.Err
}

// GuessBinaries returns the platform-conventional names for the ffmpeg and
// ffprobe binaries, in that order.
func GuessBinaries() (ffmpegBin, ffprobeBin string) {
	ffmpegBin, ffprobeBin = "ffmpeg", "ffprobe"
	if runtime.GOOS == "windows" {
		ffmpegBin += ".exe"
		ffprobeBin += ".exe"
	}
	return ffmpegBin, ffprobeBin
}

// CheckBinaries verifies that the named ffmpeg and ffprobe binaries exist on
// PATH and respond to -version. An empty name skips that binary, for callers
// that only need one of the two tools. Binaries are checked in order and the
// first failure is returned.
func CheckBinaries(ctx context.Context, ffmpegBin, ffprobeBin string) error {
	for _, bin := range []string{ffmpegBin, ffprobeBin} {
		if bin == "" {
			continue
		}
		if _, err := exec.LookPath(bin); err != nil {
			return &ToolError{Bin: bin, Err: ErrToolNotFound}
		}
		if err := run(ctx, bin, []string{"-version"}); err != nil {
			return &ToolError{Bin: bin, Err: fmt.Errorf("%w: %v", ErrToolCorrupted, err)}
		}
	}
	return nil
}
