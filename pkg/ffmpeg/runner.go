package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Process represents a running ffmpeg/ffprobe process with lifecycle
// management. Stderr is always captured for diagnostics.
type Process struct {
	cmd    *exec.Cmd
	bin    string
	args   []string
	done   chan struct{}
	err    error
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// PID returns the process ID, or 0 if not started.
func (p *Process) PID() int {
	if p.cmd == nil || p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Wait blocks until the process completes and returns any error.
func (p *Process) Wait() error {
	<-p.done
	return p.err
}

// Kill sends SIGKILL to the process.
func (p *Process) Kill() error {
	if p.cmd == nil || p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

// Stdout returns the captured stdout bytes (available after Wait).
func (p *Process) Stdout() []byte {
	return p.stdout.Bytes()
}

// Stderr returns the captured stderr output (available after Wait).
func (p *Process) Stderr() string {
	return p.stderr.String()
}

// StartProcess starts bin with args and returns a Process handle.
// The caller is responsible for calling Wait() or Kill() to clean up.
func StartProcess(ctx context.Context, bin string, args []string) (*Process, error) {
	cmd := exec.CommandContext(ctx, bin, args...)

	p := &Process{
		cmd:  cmd,
		bin:  bin,
		args: args,
		done: make(chan struct{}),
	}
	cmd.Stdout = &p.stdout
	cmd.Stderr = &p.stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%s: failed to start: %w", bin, err)
	}

	go func() {
		defer close(p.done)
		p.err = cmd.Wait()
		if p.err != nil {
			p.err = &Error{
				Bin:    bin,
				Args:   args,
				Stderr: p.stderr.String(),
				Err:    p.err,
			}
		}
	}()

	return p, nil
}

// run executes bin and waits for completion.
// This is the simple "fire and wait" path.
func run(ctx context.Context, bin string, args []string) error {
	proc, err := StartProcess(ctx, bin, args)
	if err != nil {
		return err
	}
	return proc.Wait()
}

// output executes bin, waits for completion, and returns captured stdout.
// On failure the returned error preserves the full stderr output.
func output(ctx context.Context, bin string, args []string) ([]byte, error) {
	proc, err := StartProcess(ctx, bin, args)
	if err != nil {
		return nil, err
	}
	if err := proc.Wait(); err != nil {
		return nil, err
	}
	return proc.Stdout(), nil
}

// Error represents an ffmpeg/ffprobe execution error with context.
type Error struct {
	Bin    string
	Args   []string
	Stderr string
	Err    error
}

// Error implements error.
func (e *Error) Error() string {
	// Extract just the last few lines of stderr for the error message
	lines := strings.Split(strings.TrimSpace(e.Stderr), "\n")
	var lastLines string
	if len(lines) > 3 {
		lastLines = strings.Join(lines[len(lines)-3:], "\n")
	} else {
		lastLines = strings.Join(lines, "\n")
	}

	if lastLines != "" {
		return fmt.Sprintf("%s: %v: %s", e.Bin, e.Err, lastLines)
	}
	return fmt.Sprintf("%s: %v", e.Bin, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// FullStderr returns the complete stderr output.
func (e *Error) FullStderr() string {
	return e.Stderr
}

// Command returns the command that was executed.
func (e *Error) Command() string {
	return e.Bin + " " + strings.Join(e.Args, " ")
}
