package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
)

// frameRecord is the subset of an ffprobe frame object we care about.
type frameRecord struct {
	InterlacedFrame int `json:"interlaced_frame"`
}

// ScanFrameFlags decodes up to maxFrames frames of the first video stream
// of path and returns, per frame, whether ffprobe flagged it as interlaced.
// Frame records are consumed from the ffprobe stdout stream as they are
// produced and the process is killed as soon as enough frames have been
// seen, so the cost is bounded regardless of video length.
//
// Fewer than maxFrames flags are returned when the video runs out of
// frames first; that is not an error.
func ScanFrameFlags(ctx context.Context, bin, path string, maxFrames int) ([]bool, error) {
	if bin == "" {
		_, bin = GuessBinaries()
	}
	args := []string{
		"-loglevel", "fatal",
		"-select_streams", "v",
		"-show_frames",
		"-print_format", "json",
		"-i", path,
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", bin, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%s: failed to start: %w", bin, err)
	}

	flags, decodeErr := decodeFrameFlags(json.NewDecoder(stdout), maxFrames)

	if len(flags) >= maxFrames {
		// Enough frames seen, stop decoding the rest of the video.
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return flags, nil
	}

	if decodeErr != nil {
		// The process may still be streaming frames. Reap it before
		// waiting or a full stdout pipe would block Wait forever.
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, &Error{Bin: bin, Args: args, Stderr: stderr.String(), Err: decodeErr}
	}
	waitErr := cmd.Wait()
	if waitErr != nil {
		return nil, &Error{Bin: bin, Args: args, Stderr: stderr.String(), Err: waitErr}
	}
	return flags, nil
}

// decodeFrameFlags walks the ffprobe JSON document token by token until the
// "frames" array, then decodes one frame object at a time so the caller
// never has to buffer the whole document.
func decodeFrameFlags(dec *json.Decoder, maxFrames int) ([]bool, error) {
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, fmt.Errorf("frame scan: %w", err)
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("frame scan: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("frame scan: unexpected token %v", tok)
		}
		if key == "frames" {
			break
		}
		// Skip the value of any key preceding "frames".
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, fmt.Errorf("frame scan: %w", err)
		}
	}
	if _, err := dec.Token(); err != nil { // opening bracket
		return nil, fmt.Errorf("frame scan: %w", err)
	}

	flags := make([]bool, 0, maxFrames)
	for dec.More() && len(flags) < maxFrames {
		var rec frameRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("frame scan: %w", err)
		}
		flags = append(flags, rec.InterlacedFrame != 0)
	}
	return flags, nil
}
