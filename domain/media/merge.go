package media

// MergeRequest represents a request to concatenate an ordered list of
// media files into a single MP4 container. Order is significant.
type MergeRequest struct {
	InputPaths []string
}

// NewMergeRequest creates a MergeRequest, validating its inputs. A
// single-element list is valid and degenerates to a remux of that file.
func NewMergeRequest(inputPaths []string) (*MergeRequest, error) {
	if len(inputPaths) == 0 {
		return nil, NewValidationError("at least one input file is required")
	}
	for i, p := range inputPaths {
		if p == "" {
			return nil, NewValidationError("input file %d has an empty path", i)
		}
	}
	return &MergeRequest{InputPaths: inputPaths}, nil
}
