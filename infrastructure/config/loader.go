package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Tools    ToolsConfig    `yaml:"tools"`
	Encoding EncodingConfig `yaml:"encoding"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// ToolsConfig locates the external engine's executables
type ToolsConfig struct {
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
}

// EncodingConfig contains size-reduction settings
type EncodingConfig struct {
	// Preset is the encoder speed/quality preset
	Preset string `yaml:"preset"`
	// AudioBitRate is the audio bitrate ceiling in bits/sec
	AudioBitRate int64 `yaml:"audio_bit_rate"`
	// SizeTolerance is the fraction by which output may exceed its target size
	SizeTolerance float64 `yaml:"size_tolerance"`
	// ContainerMargin is the fraction of the bit budget reserved for muxing overhead
	ContainerMargin float64 `yaml:"container_margin"`
	// MaxAttempts bounds the encode-verify-retry loop
	MaxAttempts int `yaml:"max_attempts"`
}

// PipelineConfig contains reduce-and-merge settings
type PipelineConfig struct {
	// Workers bounds concurrent per-file reductions; 1 means sequential
	Workers int `yaml:"workers"`
}

// Default returns a configuration with all defaults filled in
func Default() *Config {
	return &Config{
		Tools: ToolsConfig{
			FFmpegPath:  "ffmpeg",
			FFprobePath: "ffprobe",
		},
		Encoding: EncodingConfig{
			Preset:          "medium",
			AudioBitRate:    128_000,
			SizeTolerance:   0.01,
			ContainerMargin: 0.05,
			MaxAttempts:     3,
		},
		Pipeline: PipelineConfig{
			Workers: 1,
		},
	}
}

// Load reads and parses the configuration from the specified YAML file.
// Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
