package videoinfo

import (
	"path/filepath"
	"strings"
)

// Friendly names for ffprobe format_name values. ffprobe's own long names
// are inconsistent for common containers, so we carry our own table.
var containerNames = map[string]string{
	"aac":                     "Raw ADTS AAC",
	"ac3":                     "Raw AC-3",
	"aiff":                    "Audio Interchange File Format (AIFF)",
	"asf":                     "Advanced Systems Format",
	"avi":                     "Audio Video Interleaved",
	"flac":                    "Native FLAC",
	"flv":                     "Flash video",
	"jpeg_pipe":               "JPEG",
	"matroska,webm":           "Matroska",
	"mp3":                     "MP3",
	"mpeg":                    "MPEG program stream",
	"mpegts":                  "MPEG transport stream",
	"mpegvideo":               "Raw MPEG video",
	"mov,mp4,m4a,3gp,3g2,mj2": "MPEG-4 Part 14",
	"ogg":                     "Ogg",
	"rm":                      "RealMedia",
	"png_pipe":                "PNG",
}

// describeContainer renders the container format for display. Several
// demuxers serve whole families of containers under one format_name, so
// the filename extension disambiguates within the family.
func describeContainer(formatName, path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	name, ok := containerNames[formatName]
	if !ok {
		return strings.ToUpper(ext)
	}

	switch formatName {
	case "mov,mp4,m4a,3gp,3g2,mj2":
		switch ext {
		case "mov", "qt":
			return "QuickTime movie"
		case "3gp":
			return "3GPP"
		case "3g2":
			return "3GPP2"
		case "mj2", "mjp2":
			return "Motion JPEG 2000"
		default:
			// mp4, m4v, m4a and friends
			return "MPEG-4 Part 14 (" + strings.ToUpper(ext) + ")"
		}
	case "matroska,webm":
		if ext == "webm" {
			return "WebM"
		}
		return "Matroska"
	case "rm":
		if ext == "rmvb" {
			return "RealMedia Variable Bitrate (RMVB)"
		}
		return "RealMedia"
	}
	return name
}
