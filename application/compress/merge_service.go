package compress

import (
	"context"
	"errors"
	"os"

	"github.com/gabriel-melki/video-compressing/domain/media"
)

// MergeService coordinates concatenation of ordered media files into a
// single MP4. Stream copy is attempted first; when the engine cannot bridge
// the inputs it falls back to a normalizing transcode.
type MergeService struct {
	prober       media.Prober
	concatenator media.Concatenator
	fileChecker  media.FileChecker
	fileSizer    media.FileSizer
	opts         Options
}

// NewMergeService creates a new MergeService
func NewMergeService(
	prober media.Prober,
	concatenator media.Concatenator,
	fileChecker media.FileChecker,
	fileSizer media.FileSizer,
	opts Options,
) *MergeService {
	return &MergeService{
		prober:       prober,
		concatenator: concatenator,
		fileChecker:  fileChecker,
		fileSizer:    fileSizer,
		opts:         opts.withDefaults(),
	}
}

// MergeInput represents the input for a merge operation. InputPaths order
// determines output order.
type MergeInput struct {
	InputPaths []string
	Output     media.OutputSpec
}

// MergeResult contains the result of a successful merge
type MergeResult struct {
	File           media.MediaFile
	TotalInputSize int64
	OutputSize     int64
	Duration       float64
	Transcoded     bool
}

// Merge concatenates the inputs, in order, into one MP4 container.
// On failure no file is left at the destination.
func (s *MergeService) Merge(ctx context.Context, input MergeInput) (*MergeResult, error) {
	req, err := media.NewMergeRequest(input.InputPaths)
	if err != nil {
		return nil, err
	}

	var totalInputSize int64
	for _, p := range req.InputPaths {
		if !s.fileChecker.Exists(p) {
			return nil, media.NewValidationError("input file does not exist: %s", p)
		}
		size, err := s.fileSizer.Size(p)
		if err != nil {
			return nil, err
		}
		totalInputSize += size
	}

	destPath := input.Output.ResolveMerged(req.InputPaths[0])
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

	tmpPath := tempOutputPath(destPath)
	transcoded := false

	err = s.concatenator.Concat(ctx, media.ConcatJob{
		InputPaths: req.InputPaths,
		OutputPath: tmpPath,
		Preset:     s.opts.Preset,
	})
	if err != nil {
		os.Remove(tmpPath)

		var encErr *media.EncodingError
		if !errors.As(err, &encErr) {
			return nil, err
		}

		// Stream copy rejects mixed codecs; harmonize with a transcode
		transcoded = true
		tmpPath = tempOutputPath(destPath)
		err = s.concatenator.Concat(ctx, media.ConcatJob{
			InputPaths: req.InputPaths,
			OutputPath: tmpPath,
			Transcode:  true,
			Preset:     s.opts.Preset,
		})
		if err != nil {
			os.Remove(tmpPath)
			return nil, err
		}
	}

	info, err := s.prober.Probe(ctx, tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return nil, &media.EncodingError{Op: "merge", Detail: "produced output is not decodable", Err: err}
	}

	outputSize, err := s.fileSizer.Size(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return nil, err
	}

	if err := moveIntoPlace(tmpPath, destPath); err != nil {
		return nil, err
	}
	succeeded = true

	return &MergeResult{
		File:           media.NewMediaFile(destPath),
		TotalInputSize: totalInputSize,
		OutputSize:     outputSize,
		Duration:       info.Duration,
		Transcoded:     transcoded,
	}, nil
}
