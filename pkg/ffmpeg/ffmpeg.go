// Package ffmpeg provides a composable API for building and executing
// ffmpeg and ffprobe commands.
package ffmpeg

import (
	"context"
	"strconv"
)

// StdoutTarget makes ffmpeg write its encoded output to standard output
// instead of a file.
const StdoutTarget = "-"

// Command represents an ffmpeg command being built.
type Command struct {
	input     string
	output    string
	preInput  []string // args before -i (like -ss for input seeking)
	postInput []string // args after -i
}

// Option modifies a Command. Options are composable and order-independent
// (ffmpeg will receive args in correct order regardless of option order).
type Option interface {
	Apply(cmd *Command)
}

// OptionFunc is a function that implements Option.
type OptionFunc func(cmd *Command)

// Apply implements Option.
func (f OptionFunc) Apply(cmd *Command) { f(cmd) }

// NewCommand creates a command with input/output and applies options.
func NewCommand(input, output string, opts ...Option) *Command {
	cmd := &Command{
		input:  input,
		output: output,
	}
	for _, opt := range opts {
		opt.Apply(cmd)
	}
	return cmd
}

// Build returns the complete ffmpeg argument list.
func (c *Command) Build() []string {
	args := []string{"-hide_banner"}
	if c.output != StdoutTarget {
		args = append(args, "-y")
	}

	// Pre-input args (input seeking)
	args = append(args, c.preInput...)

	// Input
	args = append(args, "-i", c.input)

	// Post-input args
	args = append(args, c.postInput...)

	// Output
	args = append(args, c.output)

	return args
}

// Run executes the command with the given ffmpeg binary and returns
// captured stdout. Pass the empty string to use the platform default name.
func (c *Command) Run(ctx context.Context, bin string) ([]byte, error) {
	if bin == "" {
		bin, _ = GuessBinaries()
	}
	return output(ctx, bin, c.Build())
}

// --- Seeking Options ---

// Seek sets the start position before the input (input seeking). This is
// fast because it uses the container index, but may be inaccurate for
// containers with broken or missing metadata.
func Seek(seconds float64) Option {
	return OptionFunc(func(cmd *Command) {
		cmd.preInput = append(cmd.preInput, "-ss", formatSeconds(seconds))
	})
}

// SeekOutput sets the start position after the input (output seeking).
// ffmpeg decodes every frame up to the target, which is extremely slow but
// frame-accurate.
func SeekOutput(seconds float64) Option {
	return OptionFunc(func(cmd *Command) {
		cmd.postInput = append(cmd.postInput, "-ss", formatSeconds(seconds))
	})
}

// --- Output Options ---

// VideoCodec sets the video codec (-vcodec).
func VideoCodec(codec string) Option {
	return OptionFunc(func(cmd *Command) {
		cmd.postInput = append(cmd.postInput, "-vcodec", codec)
	})
}

// Frames sets the number of video frames to output (-vframes).
func Frames(n int) Option {
	return OptionFunc(func(cmd *Command) {
		cmd.postInput = append(cmd.postInput, "-vframes", strconv.Itoa(n))
	})
}

// Format forces the output container format (-f).
func Format(name string) Option {
	return OptionFunc(func(cmd *Command) {
		cmd.postInput = append(cmd.postInput, "-f", name)
	})
}

// --- Misc ---

// LogLevel sets the logging level.
func LogLevel(level string) Option {
	return OptionFunc(func(cmd *Command) {
		// Insert at beginning of preInput so it's early in args
		cmd.preInput = append([]string{"-loglevel", level}, cmd.preInput...)
	})
}

// ExtraArgs adds raw arguments (escape hatch for unsupported options).
func ExtraArgs(args ...string) Option {
	return OptionFunc(func(cmd *Command) {
		cmd.postInput = append(cmd.postInput, args...)
	})
}

// --- Utility ---

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
