package videoinfo

import (
	"fmt"
)

// Friendly names for codecs ffprobe reports with awkward short or long
// names. Anything not listed falls back to codec_long_name.
var videoCodecNames = map[string]string{
	"h264":       "H.264",
	"hevc":       "HEVC",
	"mjpeg":      "Motion JPEG",
	"mpeg1video": "MPEG-1 Part 2",
	"mpeg2video": "MPEG-2 Part 2",
	"mpeg4":      "MPEG-4 Part 2",
	"png":        "PNG",
	"rv10":       "RealVideo 1.0",
	"rv20":       "RealVideo 2.0",
	"rv30":       "RealVideo 3.0",
	"rv40":       "RealVideo 4.0",
	"theora":     "Theora",
	"vp8":        "VP8",
	"vp9":        "VP9",
}

var audioCodecNames = map[string]string{
	"aac":      "AAC",
	"ac3":      "Dolby AC-3",
	"cook":     "Cook (RealAudio G2)",
	"flac":     "FLAC (Free Lossless Audio Codec)",
	"mp3":      "MP3",
	"ra_144":   "RealAudio 1.0",
	"ra_288":   "RealAudio 2.0",
	"ralf":     "RealAudio Lossless",
	"real_144": "RealAudio 1.0",
	"real_288": "RealAudio 2.0",
	"vorbis":   "Vorbis",
}

var subtitleCodecNames = map[string]string{
	"ass":    "SubStation Alpha",
	"cc_dec": "closed caption (EIA-608 / CEA-708)",
	"srt":    "SubRip",
	"subrip": "SubRip",
}

// describeVideoCodec renders the codec of a video stream, enriched with
// profile and level where the codec family defines them.
func describeVideoCodec(s ProbeStream) string {
	if s.CodecName == "" {
		return "unknown codec"
	}
	name, ok := videoCodecNames[s.CodecName]
	if !ok {
		return s.CodecLongName
	}

	switch s.CodecName {
	case "h264", "hevc":
		if s.Profile != "" && s.Level != nil {
			return fmt.Sprintf("%s (%s Profile level %.1f)",
				name, s.Profile, float64(*s.Level)/10.0)
		}
	case "mpeg1video", "mpeg2video":
		if s.Profile != "" {
			return fmt.Sprintf("%s (%s Profile)", name, s.Profile)
		}
	case "mpeg4":
		// ffprobe's profile field already carries the word "Profile"
		// for this family.
		if s.Profile != "" {
			return fmt.Sprintf("%s (%s)", name, s.Profile)
		}
	}
	return name
}

// describeAudioCodec renders the codec of an audio stream, spelling out
// the AAC profile when present.
func describeAudioCodec(s ProbeStream) string {
	if s.CodecName == "" {
		return "unknown codec"
	}
	name, ok := audioCodecNames[s.CodecName]
	if !ok {
		return s.CodecLongName
	}

	if s.CodecName == "aac" && s.Profile != "" {
		profile := s.Profile
		switch profile {
		case "LC":
			profile = "Low-Complexity"
		case "HE-AACv2":
			profile = "HE-AAC v2"
		}
		return fmt.Sprintf("AAC (%s)", profile)
	}
	return name
}

// describeSubtitleCodec renders the codec of a subtitle stream. QuickTime
// closed captions carry no codec_name, only the c608 codec tag.
func describeSubtitleCodec(s ProbeStream) string {
	if s.CodecName == "" {
		if s.CodecTagString == "c608" {
			return "EIA-608"
		}
		return "unknown codec"
	}
	if name, ok := subtitleCodecNames[s.CodecName]; ok {
		return name
	}
	return s.CodecLongName
}
