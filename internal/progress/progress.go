// Package progress renders single-line byte-count progress on a
// terminal, in the style of a download meter.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// Reporter writes an updating progress line for a byte-oriented
// operation. Updates rewrite the line in place with carriage returns; a
// trailing newline is emitted once done reaches total.
type Reporter struct {
	w     io.Writer
	label string
	start time.Time
}

// NewReporter returns a Reporter that writes to w, prefixing every
// update with label.
func NewReporter(w io.Writer, label string) *Reporter {
	return &Reporter{w: w, label: label}
}

// Update rewrites the progress line. It is shaped to be passed directly
// as a progress callback.
func (r *Reporter) Update(done, total int64) {
	if r.start.IsZero() {
		r.start = time.Now()
	}

	percent := int64(100)
	if total > 0 {
		percent = done * 100 / total
	}

	line := fmt.Sprintf("\r%s: %3d%% %s/%s", r.label, percent,
		humanize.IBytes(uint64(done)), humanize.IBytes(uint64(total)))
	if elapsed := time.Since(r.start).Seconds(); elapsed > 0 && done > 0 {
		line += fmt.Sprintf(" (%s/s)", humanize.IBytes(uint64(float64(done)/elapsed)))
	}

	fmt.Fprint(r.w, line)
	if done >= total {
		fmt.Fprintln(r.w)
	}
}
