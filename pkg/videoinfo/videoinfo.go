// Package videoinfo extracts and normalizes video metadata via ffprobe.
//
// A Video aggregates container-level facts (format, size, duration) with
// per-stream summaries and a scan type heuristic, and can render the
// whole thing as a formatted report.
package videoinfo

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"thirdcoast.systems/storyboard/pkg/ffmpeg"
	"thirdcoast.systems/storyboard/pkg/utils/format"
)

// Stream holds the normalized metadata of a single container stream.
// Video-specific fields are zero for non-video streams.
type Stream struct {
	Index        int
	Type         string // "video", "audio", "subtitle", "data", "unknown"
	Codec        string
	BitRate      float64 // bits per second, 0 when unknown
	BitRateText  string
	LanguageCode string

	Width         int
	Height        int
	DimensionText string
	FrameRate     float64
	FrameRateText string
	DAR           float64
	DARText       string

	// InfoString is the assembled one-line summary for display.
	InfoString string
}

// Video holds the normalized metadata of a video file. Fields whose
// corresponding *Text field is empty were not available in the container.
type Video struct {
	Path     string
	Filename string
	Title    string
	Format   string

	Size     int64
	SizeText string

	Duration     float64
	DurationText string

	ScanType ScanType

	Width         int
	Height        int
	DimensionText string
	FrameRate     float64
	FrameRateText string
	DAR           float64
	DARText       string

	Streams []Stream

	sha1sum string
}

// Options controls metadata extraction.
type Options struct {
	// FFprobeBin is the ffprobe binary to run. Empty means the platform
	// default name, resolved through PATH.
	FFprobeBin string

	// DurationOverride substitutes the container duration, for files
	// whose metadata is broken or missing. Ignored when nil.
	DurationOverride *float64

	// SkipScanType disables the frame-level scan type probe, which
	// costs an extra ffprobe invocation per file.
	SkipScanType bool

	Logger *slog.Logger
}

// Probe extracts the metadata of the video file at path.
func Probe(ctx context.Context, path string, opts Options) (*Video, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("videoinfo: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("videoinfo: %w", err)
	}

	log.Debug("probing video", "path", abs)
	raw, err := ffmpeg.Probe(ctx, opts.FFprobeBin, abs)
	if err != nil {
		return nil, err
	}
	info := NewProbeInfo(raw)
	if info == nil {
		return nil, fmt.Errorf("videoinfo: unparseable ffprobe output for %s", abs)
	}

	v := buildVideo(abs, info)

	if opts.DurationOverride != nil {
		v.Duration = *opts.DurationOverride
		v.DurationText, _ = format.HumanTime(v.Duration, 2, false)
	}

	if !opts.SkipScanType && len(info.VideoStreams()) > 0 {
		log.Debug("detecting scan type", "path", abs)
		scan, err := detectScanType(ctx, opts.FFprobeBin, abs)
		if err != nil {
			// Scan type is best effort. A probe failure here should
			// not sink metadata that has already been extracted.
			log.Warn("scan type detection failed", "path", abs, "error", err)
		} else {
			v.ScanType = scan
		}
	}

	return v, nil
}

// buildVideo assembles a Video from parsed ffprobe output. It is pure so
// stream normalization can be tested without a video file on hand.
func buildVideo(path string, info *ProbeInfo) *Video {
	v := &Video{
		Path:     path,
		Filename: filepath.Base(path),
		Format:   describeContainer(info.Format.FormatName, path),
	}

	if t, ok := info.Format.Tags["title"]; ok {
		v.Title = t
	} else if t, ok := info.Format.Tags["TITLE"]; ok {
		v.Title = t
	}

	if size, err := strconv.ParseInt(info.Format.Size, 10, 64); err == nil {
		v.Size = size
		v.SizeText = format.HumanSize(size)
	}

	if info.Format.Duration != "" {
		if d, err := strconv.ParseFloat(info.Format.Duration, 64); err == nil {
			v.Duration = d
			v.DurationText, _ = format.HumanTime(d, 2, false)
		}
	}

	v.Streams = make([]Stream, 0, len(info.Streams))
	for _, ps := range info.Streams {
		s := buildStream(ps)

		// Container-level video facts come from the first video stream.
		if s.Type == "video" && v.DimensionText == "" {
			v.Width, v.Height = s.Width, s.Height
			v.DimensionText = s.DimensionText
			v.DAR, v.DARText = s.DAR, s.DARText
			v.FrameRate, v.FrameRateText = s.FrameRate, s.FrameRateText
		}

		v.Streams = append(v.Streams, s)
	}

	return v
}

// buildStream normalizes a single ffprobe stream object.
func buildStream(ps ProbeStream) Stream {
	switch ps.CodecType {
	case "video":
		return buildVideoStream(ps)
	case "audio":
		return buildAudioStream(ps)
	case "subtitle":
		return buildSubtitleStream(ps)
	case "":
		return Stream{Index: ps.Index, Type: "unknown", InfoString: "Data"}
	default:
		return Stream{Index: ps.Index, Type: ps.CodecType, InfoString: "Data"}
	}
}

func buildVideoStream(ps ProbeStream) Stream {
	s := Stream{
		Index: ps.Index,
		Type:  "video",
		Codec: describeVideoCodec(ps),
	}

	s.Width, s.Height = ps.Width, ps.Height
	s.DimensionText = fmt.Sprintf("%dx%d", ps.Width, ps.Height)

	if dar, ok := format.EvaluateRatio(ps.DisplayAspectRatio); ok {
		s.DAR = dar
		s.DARText = ps.DisplayAspectRatio
	} else if ps.Width > 0 && ps.Height > 0 {
		// No usable DAR in the container. Reduce the pixel dimensions
		// instead.
		g := gcd(ps.Width, ps.Height)
		s.DAR = float64(ps.Width/g) / float64(ps.Height/g)
		s.DARText = fmt.Sprintf("%d:%d", ps.Width/g, ps.Height/g)
	}

	if fps, ok := format.EvaluateRatio(ps.RFrameRate); ok {
		s.FrameRate = fps
	} else if fps, ok := format.EvaluateRatio(ps.AvgFrameRate); ok {
		s.FrameRate = fps
	}
	if s.FrameRate > 0 {
		if math.Abs(s.FrameRate-math.Trunc(s.FrameRate)) < 0.0001 {
			s.FrameRateText = fmt.Sprintf("%d fps", int(s.FrameRate))
		} else {
			s.FrameRateText = fmt.Sprintf("%.2f fps", s.FrameRate)
		}
	}

	s.BitRate, s.BitRateText = parseBitRate(ps.BitRate)

	s.InfoString = fmt.Sprintf("Video, %s, %s (DAR %s)", s.Codec, s.DimensionText, s.DARText)
	if s.FrameRateText != "" {
		s.InfoString += ", " + s.FrameRateText
	}
	if s.BitRateText != "" {
		s.InfoString += ", " + s.BitRateText
	}
	return s
}

func buildAudioStream(ps ProbeStream) Stream {
	s := Stream{
		Index:        ps.Index,
		Type:         "audio",
		Codec:        describeAudioCodec(ps),
		LanguageCode: ps.tag("language"),
	}
	s.BitRate, s.BitRateText = parseBitRate(ps.BitRate)

	if s.LanguageCode != "" {
		s.InfoString = fmt.Sprintf("Audio (%s), %s", s.LanguageCode, s.Codec)
	} else {
		s.InfoString = "Audio, " + s.Codec
	}
	if s.BitRateText != "" {
		s.InfoString += ", " + s.BitRateText
	}
	return s
}

func buildSubtitleStream(ps ProbeStream) Stream {
	s := Stream{
		Index:        ps.Index,
		Type:         "subtitle",
		Codec:        describeSubtitleCodec(ps),
		LanguageCode: ps.tag("language"),
	}
	if s.LanguageCode != "" {
		s.InfoString = fmt.Sprintf("Subtitle (%s), %s", s.LanguageCode, s.Codec)
	} else {
		s.InfoString = "Subtitle, " + s.Codec
	}
	return s
}

func parseBitRate(raw string) (float64, string) {
	if raw == "" {
		return 0, ""
	}
	br, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, ""
	}
	return br, fmt.Sprintf("%d kb/s", int(math.Round(br/1000)))
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
