package videoinfo

import (
	"encoding/json"
	"strings"
)

// ProbeInfo is the parsed ffprobe output.
type ProbeInfo struct {
	raw     json.RawMessage `json:"-"`
	Streams []ProbeStream   `json:"streams"`
	Format  ProbeFormat     `json:"format"`
}

// ProbeStream represents a single stream from ffprobe output.
type ProbeStream struct {
	Index              int               `json:"index"`
	CodecType          string            `json:"codec_type"`
	CodecName          string            `json:"codec_name"`
	CodecLongName      string            `json:"codec_long_name"`
	CodecTagString     string            `json:"codec_tag_string"`
	Profile            string            `json:"profile"`
	Level              *int              `json:"level"`
	Width              int               `json:"width"`
	Height             int               `json:"height"`
	DisplayAspectRatio string            `json:"display_aspect_ratio"`
	RFrameRate         string            `json:"r_frame_rate"`
	AvgFrameRate       string            `json:"avg_frame_rate"`
	SampleRate         string            `json:"sample_rate"`
	Channels           int               `json:"channels"`
	ChannelLayout      string            `json:"channel_layout"`
	BitRate            string            `json:"bit_rate"`
	Duration           string            `json:"duration"`
	Tags               map[string]string `json:"tags"`
	Disposition        map[string]int    `json:"disposition"`
}

// ProbeFormat represents ffprobe format-level metadata.
type ProbeFormat struct {
	Filename       string            `json:"filename"`
	NbStreams      int               `json:"nb_streams"`
	FormatName     string            `json:"format_name"`
	FormatLongName string            `json:"format_long_name"`
	Duration       string            `json:"duration"`
	Size           string            `json:"size"`
	BitRate        string            `json:"bit_rate"`
	Tags           map[string]string `json:"tags"`
}

// NewProbeInfo parses raw ffprobe JSON into a ProbeInfo, preserving the
// original bytes for write-back fidelity.
func NewProbeInfo(data []byte) *ProbeInfo {
	if len(data) == 0 {
		return nil
	}
	var p ProbeInfo
	p.raw = append(json.RawMessage(nil), data...)
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	return &p
}

// RawJSON returns the original JSON bytes.
func (p ProbeInfo) RawJSON() []byte {
	if len(p.raw) > 0 {
		return p.raw
	}
	b, _ := json.Marshal(p)
	return b
}

// VideoStreams returns all video-type streams.
func (p *ProbeInfo) VideoStreams() []ProbeStream {
	var out []ProbeStream
	for _, s := range p.Streams {
		if s.CodecType == "video" {
			out = append(out, s)
		}
	}
	return out
}

// AudioStreams returns all audio-type streams.
func (p *ProbeInfo) AudioStreams() []ProbeStream {
	var out []ProbeStream
	for _, s := range p.Streams {
		if s.CodecType == "audio" {
			out = append(out, s)
		}
	}
	return out
}

// tag looks up key in the stream tags, accepting the uppercase variant
// some muxers write.
func (s ProbeStream) tag(key string) string {
	if v, ok := s.Tags[key]; ok {
		return v
	}
	if v, ok := s.Tags[strings.ToUpper(key)]; ok {
		return v
	}
	return ""
}
