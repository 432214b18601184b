package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gabriel-melki/video-compressing/application/compress"
	"github.com/gabriel-melki/video-compressing/domain/media"
	"github.com/gabriel-melki/video-compressing/infrastructure/ffmpeg"
	"github.com/gabriel-melki/video-compressing/infrastructure/filesystem"

	"github.com/spf13/cobra"
)

var (
	reduceInput  string
	reduceFactor float64
	reduceOutput string
)

var reduceCmd = &cobra.Command{
	Use:   "reduce",
	Short: "Reduce a video to a fraction of its byte size",
	Long: `Re-encode a video so its file size is at most the input size scaled
by the reduction factor (a number in (0, 1]). A factor of 1 remuxes the file
without a size bound. Without --output a collision-free path is generated
beside the input.

Example:
  video-compressing reduce --input clip.mp4 --factor 0.2 --output small.mp4`,
	RunE: runReduce,
}

func init() {
	rootCmd.AddCommand(reduceCmd)
	reduceCmd.Flags().StringVar(&reduceInput, "input", "", "Path to the source video (required)")
	reduceCmd.Flags().Float64Var(&reduceFactor, "factor", 0, "Target size as a fraction of input size, in (0, 1] (required)")
	reduceCmd.Flags().StringVar(&reduceOutput, "output", "", "Explicit output path (optional)")
	reduceCmd.MarkFlagRequired("input")
	reduceCmd.MarkFlagRequired("factor")
}

func runReduce(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	prober := ffmpeg.NewProber(ffmpeg.WithFFprobePath(cfg.Tools.FFprobePath))
	encoder := ffmpeg.NewEncoder(ffmpeg.WithEncoderFFmpegPath(cfg.Tools.FFmpegPath))
	checker := filesystem.NewChecker()

	if err := verifyEngine(cmd.Context(), prober, encoder); err != nil {
		return err
	}

	service := compress.NewReduceService(prober, encoder, checker, checker, compressOptions(cfg))

	return RunReduceWithDependencies(cmd.Context(), service, reduceInput, reduceFactor, reduceOutput, os.Stdout)
}

// RunReduceWithDependencies runs the reduce command with an injected service
// (for testing)
func RunReduceWithDependencies(
	ctx context.Context,
	service *compress.ReduceService,
	inputPath string,
	factor float64,
	outputPath string,
	output io.Writer,
) error {
	spec := media.SynthesizeOutput()
	if outputPath != "" {
		spec = media.ExplicitOutput(outputPath)
	}

	fmt.Fprintf(output, "Reducing %s to %.0f%% of its size...\n", inputPath, factor*100)

	result, err := service.Reduce(ctx, compress.ReduceInput{
		InputPath: inputPath,
		Factor:    factor,
		Output:    spec,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Successfully created: %s (%d -> %d bytes, %.3fs)\n",
		result.File.Path, result.InputSize, result.OutputSize, result.Duration)
	return nil
}

// verifiable is satisfied by adapters that can check their engine binary
type verifiable interface {
	VerifyInstalled(ctx context.Context) error
}

// verifyEngine checks the engine binaries before any work starts
func verifyEngine(ctx context.Context, adapters ...any) error {
	verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	for _, a := range adapters {
		if v, ok := a.(verifiable); ok {
			if err := v.VerifyInstalled(verifyCtx); err != nil {
				return fmt.Errorf("engine verification failed: %w", err)
			}
		}
	}
	return nil
}
