package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
tools:
  ffmpeg_path: /opt/ffmpeg/bin/ffmpeg
encoding:
  preset: fast
  max_attempts: 5
pipeline:
  workers: 4
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Tools.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("FFmpegPath = %q", cfg.Tools.FFmpegPath)
	}
	if cfg.Encoding.Preset != "fast" {
		t.Errorf("Preset = %q, want fast", cfg.Encoding.Preset)
	}
	if cfg.Encoding.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.Encoding.MaxAttempts)
	}
	if cfg.Pipeline.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Pipeline.Workers)
	}

	// unspecified fields keep defaults
	if cfg.Tools.FFprobePath != "ffprobe" {
		t.Errorf("FFprobePath = %q, want default ffprobe", cfg.Tools.FFprobePath)
	}
	if cfg.Encoding.SizeTolerance != 0.01 {
		t.Errorf("SizeTolerance = %g, want default 0.01", cfg.Encoding.SizeTolerance)
	}
	if cfg.Encoding.AudioBitRate != 128_000 {
		t.Errorf("AudioBitRate = %d, want default 128000", cfg.Encoding.AudioBitRate)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("tools: ["), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := Default()
	cfg.Encoding.Preset = "veryslow"
	cfg.Pipeline.Workers = 8

	if err := Save(cfg, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Encoding.Preset != "veryslow" {
		t.Errorf("Preset = %q after round trip", loaded.Encoding.Preset)
	}
	if loaded.Pipeline.Workers != 8 {
		t.Errorf("Workers = %d after round trip", loaded.Pipeline.Workers)
	}
}
