package frame

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNegativeTimestamp(t *testing.T) {
	_, err := Extract(context.Background(), "whatever.mkv", -1, Options{})
	assert.ErrorIs(t, err, ErrNegativeTimestamp)
}

func TestExtractMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist.mkv")
	_, err := Extract(context.Background(), missing, 0, Options{})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestExtractRunFailureReportsTimestamp(t *testing.T) {
	video := filepath.Join(t.TempDir(), "clip.mkv")
	require.NoError(t, os.WriteFile(video, []byte("not a real video"), 0o644))

	bin := filepath.Join(t.TempDir(), "no-such-ffmpeg")
	_, err := Extract(context.Background(), video, 3.5, Options{FFmpegBin: bin})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3.50s")
	assert.Contains(t, err.Error(), video)
}
