package compress

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gabriel-melki/video-compressing/domain/media"
)

// PipelineService composes ReduceService over each input and MergeService
// over the reduced intermediates. Intermediates live in a scoped work
// directory that is removed on every exit path.
type PipelineService struct {
	reducer *ReduceService
	merger  *MergeService
	workers int
}

// NewPipelineService creates a new PipelineService. workers bounds how many
// per-file reductions run concurrently; values below 1 mean sequential.
func NewPipelineService(reducer *ReduceService, merger *MergeService, workers int) *PipelineService {
	if workers < 1 {
		workers = 1
	}
	return &PipelineService{
		reducer: reducer,
		merger:  merger,
		workers: workers,
	}
}

// PipelineInput represents the input for a reduce-and-merge operation
type PipelineInput struct {
	InputPaths []string
	Factor     float64
	Output     media.OutputSpec
}

// PipelineResult contains the result of a successful reduce-and-merge
type PipelineResult struct {
	File           media.MediaFile
	TotalInputSize int64
	OutputSize     int64
	Duration       float64
}

// ReduceAndMerge reduces every input by Factor into temporary intermediates,
// then merges them in input order into the final destination. Any failure
// aborts the whole operation; intermediates are always cleaned up.
func (s *PipelineService) ReduceAndMerge(ctx context.Context, input PipelineInput) (*PipelineResult, error) {
	if _, err := media.NewMergeRequest(input.InputPaths); err != nil {
		return nil, err
	}
	if err := media.ValidateFactor(input.Factor); err != nil {
		return nil, err
	}

	workDir, err := os.MkdirTemp("", "video-compressing-")
	if err != nil {
		return nil, &media.IOError{Op: "create work dir", Path: "", Err: err}
	}
	defer os.RemoveAll(workDir)

	reduced := make([]string, len(input.InputPaths))
	inputSizes := make([]int64, len(input.InputPaths))
	errs := make([]error, len(input.InputPaths))

	// Reductions are independent; bound them with a semaphore. Merge order
	// is fixed by index, not by completion order.
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	for i, path := range input.InputPaths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			intermediate := filepath.Join(workDir, fmt.Sprintf("reduced_%03d_%s", i, filepath.Base(path)))
			res, err := s.reducer.Reduce(ctx, ReduceInput{
				InputPath: path,
				Factor:    input.Factor,
				Output:    media.ExplicitOutput(intermediate),
			})
			if err != nil {
				errs[i] = fmt.Errorf("reduce %s: %w", path, err)
				return
			}
			reduced[i] = res.File.Path
			inputSizes[i] = res.InputSize
		}(i, path)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	mergeResult, err := s.merger.Merge(ctx, MergeInput{
		InputPaths: reduced,
		Output:     input.Output,
	})
	if err != nil {
		return nil, err
	}

	var totalInputSize int64
	for _, size := range inputSizes {
		totalInputSize += size
	}

	return &PipelineResult{
		File:           mergeResult.File,
		TotalInputSize: totalInputSize,
		OutputSize:     mergeResult.OutputSize,
		Duration:       mergeResult.Duration,
	}, nil
}
