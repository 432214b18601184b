package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gabriel-melki/video-compressing/domain/media"
	"github.com/gabriel-melki/video-compressing/infrastructure/ffmpeg"

	"github.com/spf13/cobra"
)

var durationInput string

var durationCmd = &cobra.Command{
	Use:   "duration",
	Short: "Print the playable duration of a media file",
	Long: `Probe a media file and print its playable duration in seconds.

Example:
  video-compressing duration --input clip.mp4`,
	RunE: runDuration,
}

func init() {
	rootCmd.AddCommand(durationCmd)
	durationCmd.Flags().StringVar(&durationInput, "input", "", "Path to the media file (required)")
	durationCmd.MarkFlagRequired("input")
}

func runDuration(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	prober := ffmpeg.NewProber(ffmpeg.WithFFprobePath(cfg.Tools.FFprobePath))

	return RunDurationWithDependencies(cmd.Context(), prober, durationInput, os.Stdout)
}

// RunDurationWithDependencies runs the duration command with injected
// dependencies (for testing)
func RunDurationWithDependencies(ctx context.Context, prober media.Prober, inputPath string, output io.Writer) error {
	info, err := prober.Probe(ctx, inputPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%.3f\n", info.Duration)
	return nil
}
