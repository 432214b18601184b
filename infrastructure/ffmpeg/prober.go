package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/gabriel-melki/video-compressing/domain/media"
)

// Prober implements media.Prober using ffprobe
type Prober struct {
	ffprobePath string
	runner      CommandRunner
}

// ProberOption is a functional option for configuring Prober
type ProberOption func(*Prober)

// WithFFprobePath sets a custom ffprobe executable path
func WithFFprobePath(path string) ProberOption {
	return func(p *Prober) {
		p.ffprobePath = path
	}
}

// WithProberCommandRunner sets a custom command runner (for testing)
func WithProberCommandRunner(runner CommandRunner) ProberOption {
	return func(p *Prober) {
		p.runner = runner
	}
}

// NewProber creates a new ffprobe-based prober
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		ffprobePath: "ffprobe",
		runner:      &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Probe implements media.Prober. It makes a single JSON ffprobe call and
// parses format and stream metadata out of it.
func (p *Prober) Probe(ctx context.Context, path string) (*media.ProbeInfo, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &media.ProbeError{Path: path, Detail: "file not accessible", Err: err}
	}

	out, err := p.runner.Output(ctx, p.ffprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)
	if err != nil {
		detail := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail = string(exitErr.Stderr)
		}
		return nil, &media.ProbeError{Path: path, Detail: detail, Err: err}
	}

	info, err := ParseProbeJSON(out)
	if err != nil {
		return nil, &media.ProbeError{Path: path, Detail: err.Error()}
	}
	return info, nil
}

// Duration returns the playable duration of the file at path, in seconds
func (p *Prober) Duration(ctx context.Context, path string) (float64, error) {
	info, err := p.Probe(ctx, path)
	if err != nil {
		return 0, err
	}
	return info.Duration, nil
}

// VerifyInstalled checks that ffprobe is available
func (p *Prober) VerifyInstalled(ctx context.Context) error {
	_, err := p.runner.Output(ctx, p.ffprobePath, "-version")
	if err != nil {
		return fmt.Errorf("ffprobe not found or not executable: %w", err)
	}
	return nil
}

// ParseProbeJSON converts raw ffprobe JSON output into a media.ProbeInfo.
// Exported for testing without a real ffprobe binary.
func ParseProbeJSON(data []byte) (*media.ProbeInfo, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	info := &media.ProbeInfo{
		Duration:   parseFloat(raw.Format.Duration),
		Size:       parseInt64(raw.Format.Size),
		BitRate:    parseInt64(raw.Format.BitRate),
		FormatName: raw.Format.FormatName,
	}

	for _, s := range raw.Streams {
		if s.CodecType == "audio" && info.AudioBitRate == 0 {
			info.AudioBitRate = parseInt64(s.BitRate)
		}
	}

	if info.Duration <= 0 {
		return nil, fmt.Errorf("no playable duration reported")
	}

	return info, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

type ffprobeStream struct {
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
	BitRate   string `json:"bit_rate"`
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

// Ensure Prober implements media.Prober
var _ media.Prober = (*Prober)(nil)
