package config

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Success_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "jpeg", cfg.OutputFormat) // default
	require.Equal(t, 85, cfg.Quality)          // default
	require.Equal(t, "auto", cfg.Verbose)      // default
	require.Empty(t, cfg.FFmpegBin)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("STORYBOARD_OUTPUT_FORMAT", "png")
	t.Setenv("STORYBOARD_QUALITY", "90")
	t.Setenv("STORYBOARD_FFMPEG_BIN", "/opt/ffmpeg/bin/ffmpeg")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "png", cfg.OutputFormat)
	require.Equal(t, 90, cfg.Quality)
	require.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpegBin)
}

func TestLoadConfig_ValidationError(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("STORYBOARD_OUTPUT_FORMAT", "gif")

	cfg, err := LoadConfig(context.Background())
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoadConfig_VerboseValues(t *testing.T) {
	for _, mode := range []string{"auto", "on", "off"} {
		t.Run(mode, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)

			t.Setenv("XDG_CONFIG_HOME", t.TempDir())
			t.Setenv("STORYBOARD_VERBOSE", mode)

			cfg, err := LoadConfig(context.Background())
			require.NoError(t, err)
			require.Equal(t, mode, cfg.Verbose)
		})
	}
}

func TestLoadConfig_VerboseInvalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("STORYBOARD_VERBOSE", "loud")

	cfg, err := LoadConfig(context.Background())
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoadConfig_QualityOutOfRange(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("STORYBOARD_QUALITY", "101")

	cfg, err := LoadConfig(context.Background())
	require.Error(t, err)
	require.Nil(t, cfg)
}
