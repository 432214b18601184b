package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gabriel-melki/video-compressing/application/compress"
	"github.com/gabriel-melki/video-compressing/domain/media"
	"github.com/gabriel-melki/video-compressing/infrastructure/ffmpeg"
	"github.com/gabriel-melki/video-compressing/infrastructure/filesystem"

	"github.com/spf13/cobra"
)

var (
	processInputs []string
	processFactor float64
	processOutput string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Reduce every clip, then merge the results into one MP4",
	Long: `Reduce each input by the given factor into temporary intermediates,
then concatenate them, in input order, into a single MP4. Intermediates are
always cleaned up, whether the run succeeds or fails.

Example:
  video-compressing process --input a.mp4 --input b.mp4 --factor 0.5 --output combined.mp4`,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().StringArrayVar(&processInputs, "input", nil, "Input video path, repeatable, order is preserved (required)")
	processCmd.Flags().Float64Var(&processFactor, "factor", 0, "Target size as a fraction of input size, in (0, 1] (required)")
	processCmd.Flags().StringVar(&processOutput, "output", "", "Explicit output path (optional)")
	processCmd.MarkFlagRequired("input")
	processCmd.MarkFlagRequired("factor")
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	prober := ffmpeg.NewProber(ffmpeg.WithFFprobePath(cfg.Tools.FFprobePath))
	encoder := ffmpeg.NewEncoder(ffmpeg.WithEncoderFFmpegPath(cfg.Tools.FFmpegPath))
	concatenator := ffmpeg.NewConcatenator(ffmpeg.WithConcatFFmpegPath(cfg.Tools.FFmpegPath))
	checker := filesystem.NewChecker()

	if err := verifyEngine(cmd.Context(), prober, encoder, concatenator); err != nil {
		return err
	}

	opts := compressOptions(cfg)
	reducer := compress.NewReduceService(prober, encoder, checker, checker, opts)
	merger := compress.NewMergeService(prober, concatenator, checker, checker, opts)
	service := compress.NewPipelineService(reducer, merger, cfg.Pipeline.Workers)

	return RunProcessWithDependencies(cmd.Context(), service, processInputs, processFactor, processOutput, os.Stdout)
}

// RunProcessWithDependencies runs the process command with an injected
// service (for testing)
func RunProcessWithDependencies(
	ctx context.Context,
	service *compress.PipelineService,
	inputPaths []string,
	factor float64,
	outputPath string,
	output io.Writer,
) error {
	spec := media.SynthesizeOutput()
	if outputPath != "" {
		spec = media.ExplicitOutput(outputPath)
	}

	fmt.Fprintf(output, "Reducing %d clips to %.0f%% and merging...\n", len(inputPaths), factor*100)

	result, err := service.ReduceAndMerge(ctx, compress.PipelineInput{
		InputPaths: inputPaths,
		Factor:     factor,
		Output:     spec,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Successfully created: %s (%d -> %d bytes, %.3fs)\n",
		result.File.Path, result.TotalInputSize, result.OutputSize, result.Duration)
	return nil
}
