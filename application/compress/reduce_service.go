package compress

import (
	"context"
	"fmt"
	"os"

	"github.com/gabriel-melki/video-compressing/domain/media"
)

// ReduceService coordinates video size reduction: it plans a bitrate from
// the probed duration and the byte target, invokes the engine, and verifies
// the produced file before it becomes visible at the destination.
type ReduceService struct {
	prober      media.Prober
	encoder     media.Encoder
	fileChecker media.FileChecker
	fileSizer   media.FileSizer
	opts        Options
}

// NewReduceService creates a new ReduceService
func NewReduceService(
	prober media.Prober,
	encoder media.Encoder,
	fileChecker media.FileChecker,
	fileSizer media.FileSizer,
	opts Options,
) *ReduceService {
	return &ReduceService{
		prober:      prober,
		encoder:     encoder,
		fileChecker: fileChecker,
		fileSizer:   fileSizer,
		opts:        opts.withDefaults(),
	}
}

// ReduceInput represents the input for a size-reduction operation
type ReduceInput struct {
	InputPath string
	Factor    float64
	Output    media.OutputSpec
}

// ReduceResult contains the result of a successful size reduction
type ReduceResult struct {
	File       media.MediaFile
	InputSize  int64
	OutputSize int64
	Duration   float64
	Attempts   int
}

// Reduce shrinks the input to at most InputSize × Factor bytes (within the
// configured tolerance). A factor of exactly 1 remuxes without a size bound.
// On failure no file is left at the destination.
func (s *ReduceService) Reduce(ctx context.Context, input ReduceInput) (*ReduceResult, error) {
	req, err := media.NewReductionRequest(input.InputPath, input.Factor)
	if err != nil {
		return nil, err
	}

	if !s.fileChecker.Exists(req.InputPath) {
		return nil, media.NewValidationError("input file does not exist: %s", req.InputPath)
	}

	destPath := input.Output.ResolveReduced(req.InputPath)

	info, err := s.prober.Probe(ctx, req.InputPath)
	if err != nil {
		return nil, err
	}

	inputSize, err := s.fileSizer.Size(req.InputPath)
	if err != nil {
		return nil, err
	}

	// Parents are created only once the engine is about to run, and taken
	// back if no output is produced.
	parentDir, err := ensureParentDir(destPath)
	if err != nil {
		return nil, err
	}
	succeeded := false
	defer func() {
		if !succeeded {
			removeCreatedDirs(parentDir)
		}
	}()

	if req.Passthrough() {
		res, err := s.remux(ctx, req.InputPath, destPath, inputSize)
		succeeded = err == nil
		return res, err
	}

	targetSize := req.TargetSize(inputSize)
	budget := float64(targetSize) * (1 + s.opts.SizeTolerance)

	audioBitRate := s.opts.AudioBitRate
	if probed := info.AudioBitRate; probed > 0 && probed < audioBitRate {
		audioBitRate = probed
	}
	videoBitRate := media.PlanVideoBitRate(targetSize, info.Duration, audioBitRate, s.opts.ContainerMargin)

	var lastSize int64
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		tmpPath := tempOutputPath(destPath)

		job := media.EncodeJob{
			InputPath:    req.InputPath,
			OutputPath:   tmpPath,
			VideoBitRate: videoBitRate,
			AudioBitRate: audioBitRate,
			Preset:       s.opts.Preset,
		}
		if err := s.encoder.Encode(ctx, job); err != nil {
			os.Remove(tmpPath)
			return nil, err
		}

		size, err := s.fileSizer.Size(tmpPath)
		if err != nil {
			os.Remove(tmpPath)
			return nil, err
		}

		if float64(size) <= budget {
			res, err := s.finish(ctx, tmpPath, destPath, inputSize, size, attempt)
			succeeded = err == nil
			return res, err
		}

		// Overshoot: discard and tighten the bitrate in proportion
		os.Remove(tmpPath)
		lastSize = size
		videoBitRate = rescaleBitRate(videoBitRate, targetSize, size)
	}

	return nil, &media.EncodingError{
		Op: "reduce",
		Detail: fmt.Sprintf("output size %d still exceeds target %d after %d attempts",
			lastSize, targetSize, s.opts.MaxAttempts),
	}
}

// remux handles the factor == 1 case: stream copy, duration must survive
func (s *ReduceService) remux(ctx context.Context, inputPath, destPath string, inputSize int64) (*ReduceResult, error) {
	tmpPath := tempOutputPath(destPath)

	job := media.EncodeJob{
		InputPath:  inputPath,
		OutputPath: tmpPath,
		StreamCopy: true,
	}
	if err := s.encoder.Encode(ctx, job); err != nil {
		os.Remove(tmpPath)
		return nil, err
	}

	size, err := s.fileSizer.Size(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return nil, err
	}

	return s.finish(ctx, tmpPath, destPath, inputSize, size, 1)
}

// finish verifies the scratch output decodes with a positive duration, then
// renames it onto the destination.
func (s *ReduceService) finish(ctx context.Context, tmpPath, destPath string, inputSize, outputSize int64, attempts int) (*ReduceResult, error) {
	info, err := s.prober.Probe(ctx, tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return nil, &media.EncodingError{Op: "reduce", Detail: "produced output is not decodable", Err: err}
	}

	if err := moveIntoPlace(tmpPath, destPath); err != nil {
		return nil, err
	}

	return &ReduceResult{
		File:       media.NewMediaFile(destPath),
		InputSize:  inputSize,
		OutputSize: outputSize,
		Duration:   info.Duration,
		Attempts:   attempts,
	}, nil
}

// rescaleBitRate shrinks the video bitrate in proportion to the overshoot,
// with extra headroom so the next attempt lands under the target.
func rescaleBitRate(bitRate, targetSize, actualSize int64) int64 {
	scaled := int64(float64(bitRate) * float64(targetSize) / float64(actualSize) * 0.95)
	if scaled < media.MinVideoBitRate {
		return media.MinVideoBitRate
	}
	return scaled
}
