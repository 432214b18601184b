package cmd

import (
	"fmt"
	"os"

	"github.com/gabriel-melki/video-compressing/application/compress"
	"github.com/gabriel-melki/video-compressing/infrastructure/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "video-compressing",
	Short: "Reduce video file sizes and merge clips into a single MP4",
	Long: `video-compressing is a thin orchestration layer over ffmpeg for
shrinking video clips and concatenating them:

  - Probe a file's duration
  - Reduce a video to a fraction of its byte size
  - Merge ordered clips into one MP4
  - Reduce every clip, then merge the results

Example:
  video-compressing reduce --input clip.mp4 --factor 0.5
  video-compressing process --input a.mp4 --input b.mp4 --factor 0.2 --output small.mp4`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = "config/config.yaml"
	}

	loaded, err := config.Load(cfgFile)
	if err != nil {
		// The config file is optional; commands run on defaults without one
		cfg = config.Default()
		return
	}
	cfg = loaded
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

// compressOptions maps the yaml configuration onto service options
func compressOptions(cfg *config.Config) compress.Options {
	return compress.Options{
		SizeTolerance:   cfg.Encoding.SizeTolerance,
		ContainerMargin: cfg.Encoding.ContainerMargin,
		AudioBitRate:    cfg.Encoding.AudioBitRate,
		MaxAttempts:     cfg.Encoding.MaxAttempts,
		Preset:          cfg.Encoding.Preset,
	}
}
