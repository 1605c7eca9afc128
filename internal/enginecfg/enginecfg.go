// Package enginecfg loads the small YAML configuration document used
// by the demo CLI and optionally by tests: device selection, log
// level, and a buffer-size override.
package enginecfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the engine's on-disk configuration.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`

	// Device names an output device. beepdemo logs it but does not pass
	// it to the sink: PortAudioOpener always opens the default output
	// device.
	Device string `yaml:"device"`

	// BufferSizeOverride, when positive, replaces sampletime.BufferSize.
	// Production code never sets this; it exists so tests can render
	// with a smaller buffer than the real 2048-sample window.
	BufferSizeOverride int `yaml:"buffer_size_override"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{LogLevel: "info"}
}

// Load reads and parses a YAML config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("enginecfg: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("enginecfg: parse %s: %w", path, err)
	}
	return cfg, nil
}
