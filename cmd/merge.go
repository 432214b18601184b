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
	mergeInputs []string
	mergeOutput string
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge ordered video clips into a single MP4",
	Long: `Concatenate video files, in the order given, into one MP4 container.
Stream copy is used when the inputs share compatible codecs; otherwise they
are transcoded to a common codec as part of the merge.

Example:
  video-compressing merge --input a.mp4 --input b.mp4 --output all.mp4`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringArrayVar(&mergeInputs, "input", nil, "Input video path, repeatable, order is preserved (required)")
	mergeCmd.Flags().StringVar(&mergeOutput, "output", "", "Explicit output path (optional)")
	mergeCmd.MarkFlagRequired("input")
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	prober := ffmpeg.NewProber(ffmpeg.WithFFprobePath(cfg.Tools.FFprobePath))
	concatenator := ffmpeg.NewConcatenator(ffmpeg.WithConcatFFmpegPath(cfg.Tools.FFmpegPath))
	checker := filesystem.NewChecker()

	if err := verifyEngine(cmd.Context(), prober, concatenator); err != nil {
		return err
	}

	service := compress.NewMergeService(prober, concatenator, checker, checker, compressOptions(cfg))

	return RunMergeWithDependencies(cmd.Context(), service, mergeInputs, mergeOutput, os.Stdout)
}

// RunMergeWithDependencies runs the merge command with an injected service
// (for testing)
func RunMergeWithDependencies(
	ctx context.Context,
	service *compress.MergeService,
	inputPaths []string,
	outputPath string,
	output io.Writer,
) error {
	spec := media.SynthesizeOutput()
	if outputPath != "" {
		spec = media.ExplicitOutput(outputPath)
	}

	fmt.Fprintf(output, "Merging %d clips...\n", len(inputPaths))

	result, err := service.Merge(ctx, compress.MergeInput{
		InputPaths: inputPaths,
		Output:     spec,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Successfully created: %s (%d -> %d bytes, %.3fs)\n",
		result.File.Path, result.TotalInputSize, result.OutputSize, result.Duration)
	if result.Transcoded {
		fmt.Fprintln(output, "Inputs required transcoding to a common codec.")
	}
	return nil
}
