package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gabriel-melki/video-compressing/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through locating the ffmpeg binaries and tuning the
encoding defaults used by reduce, merge, and process.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, "config/config.yaml")
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	fmt.Println("Welcome to video-compressing setup!")
	fmt.Println()

	cfg := config.Default()

	if err := promptTools(prompter, cfg); err != nil {
		return err
	}
	if err := promptEncoding(prompter, cfg); err != nil {
		return err
	}
	if err := promptPipeline(prompter, cfg); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", configPath)
	return nil
}

func promptTools(prompter Prompter, cfg *config.Config) error {
	ffmpegPath, err := prompter.Input("Path to the ffmpeg executable:", cfg.Tools.FFmpegPath)
	if err != nil {
		return err
	}
	cfg.Tools.FFmpegPath = ffmpegPath

	ffprobePath, err := prompter.Input("Path to the ffprobe executable:", cfg.Tools.FFprobePath)
	if err != nil {
		return err
	}
	cfg.Tools.FFprobePath = ffprobePath

	return nil
}

func promptEncoding(prompter Prompter, cfg *config.Config) error {
	preset, err := prompter.Input("Encoder preset (ultrafast..veryslow):", cfg.Encoding.Preset)
	if err != nil {
		return err
	}
	cfg.Encoding.Preset = preset

	audioStr, err := prompter.Input("Audio bitrate ceiling (bits/sec):", strconv.FormatInt(cfg.Encoding.AudioBitRate, 10))
	if err != nil {
		return err
	}
	audioBitRate, err := strconv.ParseInt(audioStr, 10, 64)
	if err != nil || audioBitRate <= 0 {
		return fmt.Errorf("invalid audio bitrate %q: expected a positive integer", audioStr)
	}
	cfg.Encoding.AudioBitRate = audioBitRate

	attemptsStr, err := prompter.Input("Max encode attempts per reduction:", strconv.Itoa(cfg.Encoding.MaxAttempts))
	if err != nil {
		return err
	}
	attempts, err := strconv.Atoi(attemptsStr)
	if err != nil || attempts < 1 {
		return fmt.Errorf("invalid attempt count %q: expected a positive integer", attemptsStr)
	}
	cfg.Encoding.MaxAttempts = attempts

	return nil
}

func promptPipeline(prompter Prompter, cfg *config.Config) error {
	workersStr, err := prompter.Input("Concurrent reductions during process (1 = sequential):", strconv.Itoa(cfg.Pipeline.Workers))
	if err != nil {
		return err
	}
	workers, err := strconv.Atoi(workersStr)
	if err != nil || workers < 1 {
		return fmt.Errorf("invalid worker count %q: expected a positive integer", workersStr)
	}
	cfg.Pipeline.Workers = workers

	return nil
}
