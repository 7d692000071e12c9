package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporterUpdate(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, "Computing SHA-1 digest")

	r.Update(512, 2048)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\rComputing SHA-1 digest:"))
	assert.Contains(t, out, "25%")
	assert.Contains(t, out, "512 B/2.0 KiB")
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestReporterCompletionNewline(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, "Computing SHA-1 digest")

	r.Update(1024, 2048)
	r.Update(2048, 2048)
	out := buf.String()
	assert.Contains(t, out, "100%")
	assert.True(t, strings.HasSuffix(out, "\n"))
	// Only the completion update ends the line.
	require.Equal(t, 1, strings.Count(out, "\n"))
}

func TestReporterZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, "hashing")

	r.Update(0, 0)
	assert.Contains(t, buf.String(), "100%")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}
