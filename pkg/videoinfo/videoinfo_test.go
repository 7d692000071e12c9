package videoinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func sampleProbeInfo() *ProbeInfo {
	return &ProbeInfo{
		Format: ProbeFormat{
			FormatName: "matroska,webm",
			Duration:   "2.08",
			Size:       "4842",
			Tags: map[string]string{
				"title": "Example video: H.264 + AAC + SRT in Matroska container",
			},
		},
		Streams: []ProbeStream{
			{
				Index:     0,
				CodecType: "video",
				CodecName: "h264",
				Profile:   "High",
				Level:     intPtr(10),
				Width:     128, Height: 72,
				DisplayAspectRatio: "16:9",
				RFrameRate:         "25/1",
			},
			{
				Index:     1,
				CodecType: "audio",
				CodecName: "aac",
				Profile:   "LC",
				Tags:      map[string]string{"language": "und"},
			},
			{
				Index:     2,
				CodecType: "subtitle",
				CodecName: "subrip",
			},
		},
	}
}

func TestBuildVideo(t *testing.T) {
	v := buildVideo("/videos/sample-h264-aac-srt.mkv", sampleProbeInfo())

	assert.Equal(t, "sample-h264-aac-srt.mkv", v.Filename)
	assert.Equal(t, "Example video: H.264 + AAC + SRT in Matroska container", v.Title)
	assert.Equal(t, "Matroska", v.Format)
	assert.Equal(t, int64(4842), v.Size)
	assert.Equal(t, "4.73KiB", v.SizeText)
	assert.Equal(t, "00:00:02.08", v.DurationText)
	assert.Equal(t, "128x72", v.DimensionText)
	assert.Equal(t, "16:9", v.DARText)
	assert.Equal(t, "25 fps", v.FrameRateText)

	require.Len(t, v.Streams, 3)
	assert.Equal(t, "Video, H.264 (High Profile level 1.0), 128x72 (DAR 16:9), 25 fps",
		v.Streams[0].InfoString)
	assert.Equal(t, "Audio (und), AAC (Low-Complexity)", v.Streams[1].InfoString)
	assert.Equal(t, "Subtitle, SubRip", v.Streams[2].InfoString)
}

func TestBuildVideoNoDuration(t *testing.T) {
	info := sampleProbeInfo()
	info.Format.Duration = ""
	v := buildVideo("/videos/sample.mkv", info)
	assert.Empty(t, v.DurationText)

	out, err := v.FormatMetadata(ReportOptions{})
	require.NoError(t, err)
	assert.Contains(t, out, "Duration:               Not available")
}

func TestBuildVideoDARFallback(t *testing.T) {
	info := sampleProbeInfo()
	info.Streams[0].DisplayAspectRatio = "0:1"
	info.Streams[0].Width = 1920
	info.Streams[0].Height = 1080

	v := buildVideo("/videos/sample.mkv", info)
	assert.Equal(t, "16:9", v.DARText)
	assert.InDelta(t, 16.0/9.0, v.DAR, 1e-12)
}

func TestBuildVideoFractionalFrameRate(t *testing.T) {
	info := sampleProbeInfo()
	info.Streams[0].RFrameRate = "30000/1001"

	v := buildVideo("/videos/sample.mkv", info)
	assert.Equal(t, "29.97 fps", v.FrameRateText)
}

func TestBuildStreamDataAndUnknown(t *testing.T) {
	s := buildStream(ProbeStream{Index: 3, CodecType: "data"})
	assert.Equal(t, "Data", s.InfoString)
	assert.Equal(t, "data", s.Type)

	s = buildStream(ProbeStream{Index: 4})
	assert.Equal(t, "Data", s.InfoString)
	assert.Equal(t, "unknown", s.Type)
}

func TestBuildStreamBitRate(t *testing.T) {
	s := buildStream(ProbeStream{
		Index:     1,
		CodecType: "audio",
		CodecName: "mp3",
		BitRate:   "128000",
	})
	assert.Equal(t, "Audio, MP3, 128 kb/s", s.InfoString)
}

func TestDescribeVideoCodec(t *testing.T) {
	tests := []struct {
		name   string
		stream ProbeStream
		want   string
	}{
		{
			"h264 with profile and level",
			ProbeStream{CodecName: "h264", Profile: "High", Level: intPtr(41)},
			"H.264 (High Profile level 4.1)",
		},
		{
			"hevc with profile and level",
			ProbeStream{CodecName: "hevc", Profile: "Main", Level: intPtr(30)},
			"HEVC (Main Profile level 3.0)",
		},
		{
			"h264 without level",
			ProbeStream{CodecName: "h264", Profile: "High"},
			"H.264",
		},
		{
			"mpeg2 with profile",
			ProbeStream{CodecName: "mpeg2video", Profile: "Main"},
			"MPEG-2 Part 2 (Main Profile)",
		},
		{
			"mpeg4 profile already carries the word",
			ProbeStream{CodecName: "mpeg4", Profile: "Simple Profile"},
			"MPEG-4 Part 2 (Simple Profile)",
		},
		{
			"unmapped codec falls back to long name",
			ProbeStream{CodecName: "prores", CodecLongName: "Apple ProRes (iCodec Pro)"},
			"Apple ProRes (iCodec Pro)",
		},
		{
			"missing codec name",
			ProbeStream{},
			"unknown codec",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeVideoCodec(tt.stream))
		})
	}
}

func TestDescribeAudioCodec(t *testing.T) {
	assert.Equal(t, "AAC (Low-Complexity)",
		describeAudioCodec(ProbeStream{CodecName: "aac", Profile: "LC"}))
	assert.Equal(t, "AAC (HE-AAC v2)",
		describeAudioCodec(ProbeStream{CodecName: "aac", Profile: "HE-AACv2"}))
	assert.Equal(t, "AAC (Main)",
		describeAudioCodec(ProbeStream{CodecName: "aac", Profile: "Main"}))
	assert.Equal(t, "Dolby AC-3",
		describeAudioCodec(ProbeStream{CodecName: "ac3"}))
	assert.Equal(t, "unknown codec", describeAudioCodec(ProbeStream{}))
}

func TestDescribeSubtitleCodec(t *testing.T) {
	assert.Equal(t, "SubRip", describeSubtitleCodec(ProbeStream{CodecName: "srt"}))
	assert.Equal(t, "EIA-608", describeSubtitleCodec(ProbeStream{CodecTagString: "c608"}))
	assert.Equal(t, "unknown codec", describeSubtitleCodec(ProbeStream{}))
}

func TestDescribeContainer(t *testing.T) {
	tests := []struct {
		formatName string
		path       string
		want       string
	}{
		{"mov,mp4,m4a,3gp,3g2,mj2", "a.mp4", "MPEG-4 Part 14 (MP4)"},
		{"mov,mp4,m4a,3gp,3g2,mj2", "a.m4v", "MPEG-4 Part 14 (M4V)"},
		{"mov,mp4,m4a,3gp,3g2,mj2", "a.mov", "QuickTime movie"},
		{"mov,mp4,m4a,3gp,3g2,mj2", "a.qt", "QuickTime movie"},
		{"mov,mp4,m4a,3gp,3g2,mj2", "a.3gp", "3GPP"},
		{"mov,mp4,m4a,3gp,3g2,mj2", "a.3g2", "3GPP2"},
		{"mov,mp4,m4a,3gp,3g2,mj2", "a.mj2", "Motion JPEG 2000"},
		{"matroska,webm", "a.mkv", "Matroska"},
		{"matroska,webm", "a.webm", "WebM"},
		{"rm", "a.rm", "RealMedia"},
		{"rm", "a.rmvb", "RealMedia Variable Bitrate (RMVB)"},
		{"mpegts", "a.ts", "MPEG transport stream"},
		{"some_new_demuxer", "a.xyz", "XYZ"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, describeContainer(tt.formatName, tt.path))
		})
	}
}

func TestClassifyScanFlags(t *testing.T) {
	repeat := func(v bool, n int) []bool {
		out := make([]bool, n)
		for i := range out {
			out[i] = v
		}
		return out
	}

	t.Run("too few frames", func(t *testing.T) {
		assert.Equal(t, ScanUnknown, ClassifyScanFlags(repeat(false, 39)))
		assert.Equal(t, ScanUnknown, ClassifyScanFlags(nil))
	})

	t.Run("progressive", func(t *testing.T) {
		assert.Equal(t, ScanProgressive, ClassifyScanFlags(repeat(false, 40)))
	})

	t.Run("interlaced", func(t *testing.T) {
		assert.Equal(t, ScanInterlaced, ClassifyScanFlags(repeat(true, 40)))
	})

	t.Run("junk leading frames are ignored", func(t *testing.T) {
		flags := append(repeat(true, 20), repeat(false, 20)...)
		assert.Equal(t, ScanProgressive, ClassifyScanFlags(flags))
	})

	t.Run("telecined", func(t *testing.T) {
		flags := repeat(false, 40)
		for i := 0; i < 8; i++ {
			flags[20+i] = true
		}
		assert.Equal(t, ScanTelecined, ClassifyScanFlags(flags))
	})

	t.Run("ambiguous mix counts as interlaced", func(t *testing.T) {
		flags := repeat(false, 40)
		for i := 0; i < 5; i++ {
			flags[20+i] = true
		}
		assert.Equal(t, ScanInterlaced, ClassifyScanFlags(flags))
	})
}

func TestScanTypeString(t *testing.T) {
	assert.Equal(t, "Progressive scan", ScanProgressive.String())
	assert.Equal(t, "Interlaced scan", ScanInterlaced.String())
	assert.Equal(t, "Telecined video", ScanTelecined.String())
	assert.Empty(t, ScanUnknown.String())
}

func TestFormatMetadata(t *testing.T) {
	v := buildVideo("/videos/sample-h264-aac-srt.mkv", sampleProbeInfo())
	v.ScanType = ScanProgressive

	out, err := v.FormatMetadata(ReportOptions{})
	require.NoError(t, err)

	want := "Title:                  Example video: H.264 + AAC + SRT in Matroska container\n" +
		"Filename:               sample-h264-aac-srt.mkv\n" +
		"File size:              4,842 (4.73KiB)\n" +
		"Container format:       Matroska\n" +
		"Duration:               00:00:02.08\n" +
		"Pixel dimensions:       128x72\n" +
		"Display aspect ratio:   16:9\n" +
		"Scan type:              Progressive scan\n" +
		"Frame rate:             25 fps\n" +
		"Streams:\n" +
		"    #0: Video, H.264 (High Profile level 1.0), 128x72 (DAR 16:9), 25 fps\n" +
		"    #1: Audio (und), AAC (Low-Complexity)\n" +
		"    #2: Subtitle, SubRip"
	assert.Equal(t, want, out)
}

func TestSHA1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.bin")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	v := &Video{Path: path}

	var calls int
	var lastDone, lastTotal int64
	digest, err := v.SHA1(func(done, total int64) {
		calls++
		lastDone, lastTotal = done, total
	})
	require.NoError(t, err)
	assert.Equal(t, "A9993E364706816ABA3E25717850C26C9CD0D89D", digest)
	assert.Equal(t, 1, calls)
	assert.Equal(t, int64(3), lastDone)
	assert.Equal(t, int64(3), lastTotal)

	// Second call serves the cached digest without touching the file.
	require.NoError(t, os.Remove(path))
	again, err := v.SHA1(nil)
	require.NoError(t, err)
	assert.Equal(t, digest, again)
}

func TestSHA1MissingFile(t *testing.T) {
	v := &Video{Path: filepath.Join(t.TempDir(), "gone.mkv")}
	_, err := v.SHA1(nil)
	assert.Error(t, err)
}

func TestNewProbeInfo(t *testing.T) {
	raw := []byte(`{"format": {"format_name": "matroska,webm", "size": "100"}, "streams": [{"index": 0, "codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720}]}`)

	info := NewProbeInfo(raw)
	require.NotNil(t, info)
	assert.Equal(t, "matroska,webm", info.Format.FormatName)
	require.Len(t, info.Streams, 1)
	assert.Len(t, info.VideoStreams(), 1)
	assert.Empty(t, info.AudioStreams())
	assert.Equal(t, raw, info.RawJSON())

	assert.Nil(t, NewProbeInfo(nil))
	assert.Nil(t, NewProbeInfo([]byte("not json")))
}
