package videoinfo

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// ReportOptions controls FormatMetadata.
type ReportOptions struct {
	// IncludeSHA1 adds the SHA-1 digest line, computing the digest if
	// it has not been computed yet.
	IncludeSHA1 bool

	// Progress receives digest progress, see Video.SHA1.
	Progress func(done, total int64)
}

// FormatMetadata renders the video metadata as a multi-line report ready
// for printing. Lines whose underlying value is unavailable are omitted,
// except duration which is reported as not available.
func (v *Video) FormatMetadata(opts ReportOptions) (string, error) {
	var b strings.Builder

	line := func(label, value string) {
		fmt.Fprintf(&b, "%-24s%s\n", label+":", value)
	}

	if v.Title != "" {
		line("Title", v.Title)
	}
	line("Filename", v.Filename)
	line("File size", fmt.Sprintf("%s (%s)", humanize.Comma(v.Size), v.SizeText))

	if opts.IncludeSHA1 {
		digest, err := v.SHA1(opts.Progress)
		if err != nil {
			return "", err
		}
		line("SHA-1 digest", digest)
	}

	line("Container format", v.Format)
	if v.DurationText != "" {
		line("Duration", v.DurationText)
	} else {
		line("Duration", "Not available")
	}
	if v.DimensionText != "" {
		line("Pixel dimensions", v.DimensionText)
	}
	if v.DARText != "" {
		line("Display aspect ratio", v.DARText)
	}
	if v.ScanType != ScanUnknown {
		line("Scan type", v.ScanType.String())
	}
	if v.FrameRateText != "" {
		line("Frame rate", v.FrameRateText)
	}

	b.WriteString("Streams:\n")
	for _, s := range v.Streams {
		fmt.Fprintf(&b, "    #%d: %s\n", s.Index, s.InfoString)
	}

	return strings.TrimSpace(b.String()), nil
}
