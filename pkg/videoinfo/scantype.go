package videoinfo

import (
	"context"

	"thirdcoast.systems/storyboard/pkg/ffmpeg"
)

// ScanType classifies how the frames of a video stream were captured.
type ScanType int

const (
	// ScanUnknown means the scan type could not be determined, either
	// because the file has no video stream or too few frames.
	ScanUnknown ScanType = iota
	ScanProgressive
	ScanInterlaced
	ScanTelecined
)

// String implements fmt.Stringer.
func (t ScanType) String() string {
	switch t {
	case ScanProgressive:
		return "Progressive scan"
	case ScanInterlaced:
		return "Interlaced scan"
	case ScanTelecined:
		return "Telecined video"
	default:
		return ""
	}
}

// scanSampleSize is how many leading frames the scan type heuristic
// inspects. The first half is discarded as warmup.
const scanSampleSize = 40

// ClassifyScanFlags derives a scan type from per-frame interlace flags.
// The first half of the sample is dropped because encoders often emit
// junk frames at the start. Among the remaining frames: all progressive
// means progressive, all interlaced means interlaced, and an 8-of-20
// split is the signature of 3:2 pulldown. Any other mix is treated as
// interlaced since a deinterlacer will help either way.
func ClassifyScanFlags(flags []bool) ScanType {
	if len(flags) < scanSampleSize {
		return ScanUnknown
	}

	sample := flags[scanSampleSize/2 : scanSampleSize]
	interlaced := 0
	for _, f := range sample {
		if f {
			interlaced++
		}
	}

	switch interlaced {
	case 0:
		return ScanProgressive
	case len(sample):
		return ScanInterlaced
	case 8:
		return ScanTelecined
	default:
		return ScanInterlaced
	}
}

// detectScanType probes the first frames of path and classifies them.
func detectScanType(ctx context.Context, bin, path string) (ScanType, error) {
	flags, err := ffmpeg.ScanFrameFlags(ctx, bin, path, scanSampleSize)
	if err != nil {
		return ScanUnknown, err
	}
	return ClassifyScanFlags(flags), nil
}
