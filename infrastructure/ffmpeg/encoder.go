package ffmpeg

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-melki/video-compressing/domain/media"
)

// Encoder implements media.Encoder using ffmpeg
type Encoder struct {
	ffmpegPath string
	runner     CommandRunner
}

// EncoderOption is a functional option for configuring Encoder
type EncoderOption func(*Encoder)

// WithEncoderFFmpegPath sets a custom ffmpeg executable path
func WithEncoderFFmpegPath(path string) EncoderOption {
	return func(e *Encoder) {
		e.ffmpegPath = path
	}
}

// WithEncoderCommandRunner sets a custom command runner (for testing)
func WithEncoderCommandRunner(runner CommandRunner) EncoderOption {
	return func(e *Encoder) {
		e.runner = runner
	}
}

// NewEncoder creates a new ffmpeg-based encoder
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{
		ffmpegPath: "ffmpeg",
		runner:     &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Encode implements media.Encoder. Stream-copy jobs remux without touching
// the streams; encode jobs cap the video bitrate so the output lands under
// the caller's byte budget.
func (e *Encoder) Encode(ctx context.Context, job media.EncodeJob) error {
	args := []string{
		"-hide_banner", "-nostdin", "-y",
		"-loglevel", "error",
		"-i", job.InputPath,
	}

	if job.StreamCopy {
		args = append(args, "-c", "copy")
	} else {
		br := strconv.FormatInt(job.VideoBitRate, 10)
		args = append(args,
			"-c:v", "libx264",
			"-b:v", br,
			"-maxrate", br,
			"-bufsize", strconv.FormatInt(job.VideoBitRate*2, 10),
			"-preset", presetOrDefault(job.Preset),
			"-c:a", "aac",
			"-b:a", strconv.FormatInt(job.AudioBitRate, 10),
		)
	}

	args = append(args, containerOpts(job.OutputPath, filepath.Ext(job.InputPath))...)
	args = append(args, job.OutputPath)

	stderr, err := e.runner.Run(ctx, e.ffmpegPath, args...)
	if err != nil {
		return &media.EncodingError{Op: "encode", Detail: stderr, Err: err}
	}

	return nil
}

// VerifyInstalled checks that ffmpeg is available
func (e *Encoder) VerifyInstalled(ctx context.Context) error {
	_, err := e.runner.Output(ctx, e.ffmpegPath, "-version")
	if err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}

func presetOrDefault(preset string) string {
	if preset == "" {
		return "medium"
	}
	return preset
}

// muxerNames maps container extensions to ffmpeg muxer names.
var muxerNames = map[string]string{
	".mp4":  "mp4",
	".m4v":  "mp4",
	".mov":  "mov",
	".mkv":  "matroska",
	".webm": "webm",
	".avi":  "avi",
}

// containerOpts returns muxer flags for the output path. A known container
// extension lets ffmpeg pick the muxer itself; anything else (extension-less
// destinations, scratch suffixes) gets an explicit -f derived from
// fallbackExt. MP4-family outputs get faststart so the moov atom leads the
// file.
func containerOpts(outputPath, fallbackExt string) []string {
	ext := strings.ToLower(filepath.Ext(outputPath))
	var opts []string
	if _, known := muxerNames[ext]; !known {
		ext = strings.ToLower(fallbackExt)
		muxer, ok := muxerNames[ext]
		if !ok {
			ext, muxer = ".mp4", "mp4"
		}
		opts = append(opts, "-f", muxer)
	}
	if ext == ".mp4" || ext == ".mov" || ext == ".m4v" {
		opts = append(opts, "-movflags", "+faststart")
	}
	return opts
}

// Ensure Encoder implements media.Encoder
var _ media.Encoder = (*Encoder)(nil)
