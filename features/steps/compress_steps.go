//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gabriel-melki/video-compressing/application/compress"
	"github.com/gabriel-melki/video-compressing/cmd"
	"github.com/gabriel-melki/video-compressing/domain/media"
	"github.com/gabriel-melki/video-compressing/infrastructure/filesystem"

	"github.com/cucumber/godog"
)

// fakeProber answers with registered durations, and a fixed positive
// duration for engine-produced scratch files
type fakeProber struct {
	durations map[string]float64
}

func (p *fakeProber) Probe(ctx context.Context, path string) (*media.ProbeInfo, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &media.ProbeError{Path: path, Detail: "file not accessible", Err: err}
	}
	if d, ok := p.durations[path]; ok {
		return &media.ProbeInfo{Duration: d}, nil
	}
	return &media.ProbeInfo{Duration: 9.9}, nil
}

// fakeEncoder writes real files of a configurable size
type fakeEncoder struct {
	jobs       []media.EncodeJob
	outputSize int64
}

func (e *fakeEncoder) Encode(ctx context.Context, job media.EncodeJob) error {
	e.jobs = append(e.jobs, job)
	size := e.outputSize
	if size == 0 {
		size = 1000
	}
	return os.WriteFile(job.OutputPath, make([]byte, size), 0644)
}

// fakeConcatenator writes real files of a configurable size
type fakeConcatenator struct {
	jobs       []media.ConcatJob
	outputSize int64
}

func (c *fakeConcatenator) Concat(ctx context.Context, job media.ConcatJob) error {
	c.jobs = append(c.jobs, job)
	size := c.outputSize
	if size == 0 {
		size = 1000
	}
	return os.WriteFile(job.OutputPath, make([]byte, size), 0644)
}

// compressContext holds test state for compression scenarios
type compressContext struct {
	workDir      string
	prober       *fakeProber
	encoder      *fakeEncoder
	concatenator *fakeConcatenator
	inputs       []string
	output       *bytes.Buffer
	err          error
	resultPath   string
}

// SharedCompressContext is reset before each scenario via Before hook
var SharedCompressContext *compressContext

func getCompressContext() *compressContext {
	return SharedCompressContext
}

func InitializeCompressScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		workDir, err := os.MkdirTemp("", "features-")
		if err != nil {
			return c, err
		}
		SharedCompressContext = &compressContext{
			workDir:      workDir,
			prober:       &fakeProber{durations: make(map[string]float64)},
			encoder:      &fakeEncoder{},
			concatenator: &fakeConcatenator{},
			output:       &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if SharedCompressContext != nil {
			os.RemoveAll(SharedCompressContext.workDir)
		}
		SharedCompressContext = nil
		return c, nil
	})

	ctx.Step(`^a video "([^"]*)" of (\d+) bytes lasting ([0-9.]+) seconds$`, aVideoOfBytesLasting)
	ctx.Step(`^the engine produces outputs of (\d+) bytes$`, theEngineProducesOutputsOfBytes)
	ctx.Step(`^I reduce "([^"]*)" with factor ([0-9.]+)$`, iReduceWithFactor)
	ctx.Step(`^I reduce "([^"]*)" with factor ([0-9.]+) into "([^"]*)"$`, iReduceWithFactorInto)
	ctx.Step(`^I attempt to reduce "([^"]*)" with factor ([0-9.]+)$`, iAttemptToReduceWithFactor)
	ctx.Step(`^I merge the videos into "([^"]*)"$`, iMergeTheVideosInto)
	ctx.Step(`^I process the videos with factor ([0-9.]+) into "([^"]*)"$`, iProcessTheVideosWithFactorInto)
	ctx.Step(`^the operation should succeed$`, theOperationShouldSucceed)
	ctx.Step(`^the output file should exist$`, theOutputFileShouldExist)
	ctx.Step(`^the output file should be an MP4$`, theOutputFileShouldBeAnMP4)
	ctx.Step(`^I should receive a validation error$`, iShouldReceiveAValidationError)
	ctx.Step(`^no file should exist at "([^"]*)"$`, noFileShouldExistAt)
	ctx.Step(`^the merge should consume the inputs in order$`, theMergeShouldConsumeTheInputsInOrder)
}

func (c *compressContext) path(name string) string {
	return filepath.Join(c.workDir, name)
}

func (c *compressContext) reduceService() *compress.ReduceService {
	checker := filesystem.NewChecker()
	return compress.NewReduceService(c.prober, c.encoder, checker, checker, compress.Options{})
}

func (c *compressContext) mergeService() *compress.MergeService {
	checker := filesystem.NewChecker()
	return compress.NewMergeService(c.prober, c.concatenator, checker, checker, compress.Options{})
}

func (c *compressContext) pipelineService() *compress.PipelineService {
	return compress.NewPipelineService(c.reduceService(), c.mergeService(), 1)
}

// captureResultPath extracts the created path from command output
func (c *compressContext) captureResultPath() {
	re := regexp.MustCompile(`Successfully created: (\S+)`)
	if m := re.FindStringSubmatch(c.output.String()); m != nil {
		c.resultPath = m[1]
	}
}

func aVideoOfBytesLasting(name, sizeStr, durationStr string) error {
	c := getCompressContext()

	size, err := strconv.ParseInt(sizeStr, 10, 64)
	if err != nil {
		return err
	}
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return err
	}

	path := c.path(name)
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		return err
	}
	c.prober.durations[path] = duration
	c.inputs = append(c.inputs, path)
	return nil
}

func theEngineProducesOutputsOfBytes(sizeStr string) error {
	c := getCompressContext()
	size, err := strconv.ParseInt(sizeStr, 10, 64)
	if err != nil {
		return err
	}
	c.encoder.outputSize = size
	c.concatenator.outputSize = size
	return nil
}

func iReduceWithFactor(name, factorStr string) error {
	return reduceInto(name, factorStr, "")
}

func iReduceWithFactorInto(name, factorStr, outputName string) error {
	return reduceInto(name, factorStr, outputName)
}

func reduceInto(name, factorStr, outputName string) error {
	c := getCompressContext()

	factor, err := strconv.ParseFloat(factorStr, 64)
	if err != nil {
		return err
	}

	outputPath := ""
	if outputName != "" {
		outputPath = c.path(outputName)
	}

	c.err = cmd.RunReduceWithDependencies(
		context.Background(),
		c.reduceService(),
		c.path(name),
		factor,
		outputPath,
		c.output,
	)
	c.captureResultPath()
	return nil
}

func iAttemptToReduceWithFactor(name, factorStr string) error {
	return reduceInto(name, factorStr, "")
}

func iMergeTheVideosInto(outputName string) error {
	c := getCompressContext()

	c.err = cmd.RunMergeWithDependencies(
		context.Background(),
		c.mergeService(),
		c.inputs,
		c.path(outputName),
		c.output,
	)
	c.captureResultPath()
	return nil
}

func iProcessTheVideosWithFactorInto(factorStr, outputName string) error {
	c := getCompressContext()

	factor, err := strconv.ParseFloat(factorStr, 64)
	if err != nil {
		return err
	}

	c.err = cmd.RunProcessWithDependencies(
		context.Background(),
		c.pipelineService(),
		c.inputs,
		factor,
		c.path(outputName),
		c.output,
	)
	c.captureResultPath()
	return nil
}

func theOperationShouldSucceed() error {
	c := getCompressContext()
	if c.err != nil {
		return fmt.Errorf("unexpected error: %v", c.err)
	}
	return nil
}

func theOutputFileShouldExist() error {
	c := getCompressContext()
	if c.resultPath == "" {
		return fmt.Errorf("no result path was reported")
	}
	if _, err := os.Stat(c.resultPath); err != nil {
		return fmt.Errorf("output file %q does not exist: %v", c.resultPath, err)
	}
	return nil
}

func theOutputFileShouldBeAnMP4() error {
	c := getCompressContext()
	if !strings.HasSuffix(c.resultPath, ".mp4") {
		return fmt.Errorf("output %q is not an MP4", c.resultPath)
	}
	return nil
}

func iShouldReceiveAValidationError() error {
	c := getCompressContext()
	if c.err == nil {
		return fmt.Errorf("expected an error, got none")
	}
	var verr *media.ValidationError
	if !errors.As(c.err, &verr) {
		return fmt.Errorf("expected a validation error, got %v", c.err)
	}
	return nil
}

func noFileShouldExistAt(name string) error {
	c := getCompressContext()
	path := c.path(name)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return fmt.Errorf("expected no file at %q", path)
	}
	return nil
}

func theMergeShouldConsumeTheInputsInOrder() error {
	c := getCompressContext()
	if len(c.concatenator.jobs) == 0 {
		return fmt.Errorf("the engine's concatenation was never invoked")
	}
	got := c.concatenator.jobs[len(c.concatenator.jobs)-1].InputPaths
	if len(got) != len(c.inputs) {
		return fmt.Errorf("merged %d files, want %d", len(got), len(c.inputs))
	}
	for i, p := range got {
		wantStem := strings.TrimSuffix(filepath.Base(c.inputs[i]), filepath.Ext(c.inputs[i]))
		if !strings.Contains(filepath.Base(p), wantStem) {
			return fmt.Errorf("position %d holds %q, want a file derived from %q", i, p, c.inputs[i])
		}
	}
	return nil
}
