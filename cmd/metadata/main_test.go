package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressEnabled(t *testing.T) {
	assert.True(t, progressEnabled("on", false))
	assert.False(t, progressEnabled("off", true))

	// auto never shows progress when there is no digest to compute,
	// terminal or not.
	assert.False(t, progressEnabled("auto", false))
	assert.False(t, progressEnabled("", false))
}
