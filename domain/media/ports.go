package media

import "context"

// Prober defines the read-only duration/metadata query against the external
// engine. This is a port implemented by infrastructure adapters.
type Prober interface {
	// Probe returns the media properties of the file at path
	Probe(ctx context.Context, path string) (*ProbeInfo, error)
}

// EncodeJob describes one re-encode invocation of the external engine.
type EncodeJob struct {
	InputPath  string
	OutputPath string
	// StreamCopy remuxes without re-encoding; bitrates are ignored
	StreamCopy bool
	// VideoBitRate and AudioBitRate are target bits/sec for the encode path
	VideoBitRate int64
	AudioBitRate int64
	Preset       string
}

// Encoder defines the engine's re-encode operation.
type Encoder interface {
	// Encode produces OutputPath from InputPath according to the job
	Encode(ctx context.Context, job EncodeJob) error
}

// ConcatJob describes one concatenation invocation of the external engine.
// InputPaths are consumed in order.
type ConcatJob struct {
	InputPaths []string
	OutputPath string
	// Transcode re-encodes inputs to a common codec instead of stream copy,
	// used when the inputs cannot be concatenated as-is
	Transcode bool
	Preset    string
}

// Concatenator defines the engine's concatenation operation.
type Concatenator interface {
	// Concat joins the job's inputs into a single container at OutputPath
	Concat(ctx context.Context, job ConcatJob) error
}

// FileChecker defines the interface for checking file existence
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool
}

// FileSizer provides file size information
type FileSizer interface {
	// Size returns the byte size of the file at path
	Size(path string) (int64, error)
}
