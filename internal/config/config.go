// Package config loads diagnostics pipeline configuration from an
// optional YAML file and LUMEN_DIAG_* environment variables.
// Invalid values are clamped by the components that consume them,
// never rejected here.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the diagnostics pipeline configuration.
type Config struct {
	Buffer    BufferConfig    `mapstructure:"buffer"`
	Sampling  SamplingConfig  `mapstructure:"sampling"`
	Clipboard ClipboardConfig `mapstructure:"clipboard"`
	Log       LogConfig       `mapstructure:"log"`
}

// BufferConfig configures the event buffer and intake channel.
type BufferConfig struct {
	Capacity  int `mapstructure:"capacity"`
	QueueSize int `mapstructure:"queue_size"`
}

// SamplingConfig configures the resource sampler.
type SamplingConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// ClipboardConfig configures clipboard export.
type ClipboardConfig struct {
	MaxBytes int `mapstructure:"max_bytes"`
}

// LogConfig configures operational logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Buffer:    BufferConfig{Capacity: 2048, QueueSize: 256},
		Sampling:  SamplingConfig{Interval: time.Second},
		Clipboard: ClipboardConfig{MaxBytes: 1 << 20},
		Log:       LogConfig{Level: "info", Format: "auto"},
	}
}

// Load reads configuration from path (optional; "" skips the file)
// and the environment, on top of Default.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LUMEN_DIAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("buffer.capacity", def.Buffer.Capacity)
	v.SetDefault("buffer.queue_size", def.Buffer.QueueSize)
	v.SetDefault("sampling.interval", def.Sampling.Interval)
	v.SetDefault("clipboard.max_bytes", def.Clipboard.MaxBytes)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
}
