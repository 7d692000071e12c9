package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// FFmpeg Configuration
	FFmpegBin  string `mapstructure:"FFMPEG_BIN"`
	FFprobeBin string `mapstructure:"FFPROBE_BIN"`

	// Output Configuration
	OutputFormat string `mapstructure:"OUTPUT_FORMAT" validate:"oneof=jpeg png"`
	Quality      int    `mapstructure:"QUALITY" validate:"min=1,max=100"`
	OutputDir    string `mapstructure:"OUTPUT_DIR"`

	// Metadata Configuration
	IncludeSHA1 bool `mapstructure:"INCLUDE_SHA1"`

	// Verbose selects progress output on stderr: on, off, or auto,
	// where auto enables progress only when stderr is a terminal.
	Verbose string `mapstructure:"VERBOSE" validate:"oneof=auto on off"`
}

// envPrefix namespaces every environment variable.
const envPrefix = "STORYBOARD"

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	val := reflect.ValueOf(c)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag != "" {
			viper.BindEnv(tag)
		}
	}
}

// configDir returns the XDG config directory for this tool.
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "storyboard")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "storyboard")
}

func LoadConfig(ctx context.Context) (*Config, error) {
	viper.SetEnvPrefix(envPrefix)
	bindEnv(Config{})
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("OUTPUT_FORMAT", "jpeg")
	viper.SetDefault("QUALITY", 85)
	viper.SetDefault("VERBOSE", "auto")

	// Optional config file at $XDG_CONFIG_HOME/storyboard/storyboard.yaml.
	if dir := configDir(); dir != "" {
		viper.SetConfigName("storyboard")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(dir)
		if err := viper.ReadInConfig(); err == nil {
			slog.Debug("loaded config file", "path", viper.ConfigFileUsed())
		}
	}

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
