package media

import "math"

// MinVideoBitRate is the floor for planned video bitrates. Below this the
// encoder produces unusable output, so planning clamps rather than going lower.
const MinVideoBitRate = 64_000

// ReductionRequest represents a request to shrink a video to a fraction of
// its current byte size.
type ReductionRequest struct {
	InputPath string
	Factor    float64
}

// NewReductionRequest creates a ReductionRequest, validating its inputs
func NewReductionRequest(inputPath string, factor float64) (*ReductionRequest, error) {
	if inputPath == "" {
		return nil, NewValidationError("input path is required")
	}
	if err := ValidateFactor(factor); err != nil {
		return nil, err
	}
	return &ReductionRequest{InputPath: inputPath, Factor: factor}, nil
}

// ValidateFactor checks that a reduction factor lies in (0, 1]
func ValidateFactor(factor float64) error {
	if factor <= 0 || factor > 1 {
		return NewValidationError("reduction factor must be in (0, 1], got %g", factor)
	}
	return nil
}

// Passthrough reports whether the request asks for a re-encode without a
// size bound (factor exactly 1).
func (r *ReductionRequest) Passthrough() bool {
	return r.Factor == 1
}

// TargetSize returns the byte budget for the output given the input's size
func (r *ReductionRequest) TargetSize(inputSize int64) int64 {
	return int64(float64(inputSize) * r.Factor)
}

// PlanVideoBitRate derives the video bitrate (bits/sec) that fits targetSize
// bytes into duration seconds, after reserving the audio bitrate and a
// container overhead margin. The result is clamped to MinVideoBitRate.
func PlanVideoBitRate(targetSize int64, duration float64, audioBitRate int64, margin float64) int64 {
	if duration <= 0 {
		return MinVideoBitRate
	}
	totalBits := float64(targetSize) * 8
	budget := totalBits / duration * (1 - margin)
	video := int64(math.Floor(budget)) - audioBitRate
	if video < MinVideoBitRate {
		return MinVideoBitRate
	}
	return video
}
