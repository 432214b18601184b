package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-melki/video-compressing/domain/media"
)

// Concatenator implements media.Concatenator using ffmpeg's concat demuxer
type Concatenator struct {
	ffmpegPath string
	runner     CommandRunner
}

// ConcatenatorOption is a functional option for configuring Concatenator
type ConcatenatorOption func(*Concatenator)

// WithConcatFFmpegPath sets a custom ffmpeg executable path
func WithConcatFFmpegPath(path string) ConcatenatorOption {
	return func(c *Concatenator) {
		c.ffmpegPath = path
	}
}

// WithConcatCommandRunner sets a custom command runner (for testing)
func WithConcatCommandRunner(runner CommandRunner) ConcatenatorOption {
	return func(c *Concatenator) {
		c.runner = runner
	}
}

// NewConcatenator creates a new ffmpeg-based concatenator
func NewConcatenator(opts ...ConcatenatorOption) *Concatenator {
	c := &Concatenator{
		ffmpegPath: "ffmpeg",
		runner:     &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Concat implements media.Concatenator. Inputs are listed in order in a
// temporary concat-demuxer file; stream copy is the default, with a
// normalizing transcode when the job asks for it.
func (c *Concatenator) Concat(ctx context.Context, job media.ConcatJob) error {
	listPath, err := writeConcatList(job.InputPaths)
	if err != nil {
		return err
	}
	defer os.Remove(listPath)

	args := []string{
		"-hide_banner", "-nostdin", "-y",
		"-loglevel", "error",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
	}

	if job.Transcode {
		args = append(args,
			"-c:v", "libx264",
			"-preset", presetOrDefault(job.Preset),
			"-c:a", "aac",
		)
	} else {
		args = append(args, "-c", "copy")
	}

	// merged output is always MP4; extension-less destinations need -f
	args = append(args, containerOpts(job.OutputPath, ".mp4")...)
	args = append(args, job.OutputPath)

	stderr, err := c.runner.Run(ctx, c.ffmpegPath, args...)
	if err != nil {
		return &media.EncodingError{Op: "concat", Detail: stderr, Err: err}
	}

	return nil
}

// VerifyInstalled checks that ffmpeg is available
func (c *Concatenator) VerifyInstalled(ctx context.Context) error {
	_, err := c.runner.Output(ctx, c.ffmpegPath, "-version")
	if err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}

// writeConcatList writes the concat-demuxer input list to a temp file and
// returns its path. The caller removes it when done.
func writeConcatList(paths []string) (string, error) {
	f, err := os.CreateTemp("", "concat-*.txt")
	if err != nil {
		return "", &media.IOError{Op: "create concat list", Path: "", Err: err}
	}

	var b strings.Builder
	for _, p := range paths {
		fmt.Fprintf(&b, "file '%s'\n", escapeConcatPath(p))
	}

	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", &media.IOError{Op: "write concat list", Path: f.Name(), Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", &media.IOError{Op: "close concat list", Path: f.Name(), Err: err}
	}

	return f.Name(), nil
}

// escapeConcatPath escapes single quotes for the concat demuxer's
// single-quoted file directive.
func escapeConcatPath(p string) string {
	return strings.ReplaceAll(p, "'", `'\''`)
}

// Ensure Concatenator implements media.Concatenator
var _ media.Concatenator = (*Concatenator)(nil)
