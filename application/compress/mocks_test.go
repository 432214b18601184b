package compress

import (
	"context"
	"os"
	"sync"

	"github.com/gabriel-melki/video-compressing/domain/media"
)

// --- Mock implementations for testing ---

// mockProber implements media.Prober with per-test behavior
type mockProber struct {
	fn func(path string) (*media.ProbeInfo, error)
}

func (m *mockProber) Probe(ctx context.Context, path string) (*media.ProbeInfo, error) {
	return m.fn(path)
}

// proberReporting answers every probe with the same info
func proberReporting(info media.ProbeInfo) *mockProber {
	return &mockProber{fn: func(string) (*media.ProbeInfo, error) {
		copied := info
		return &copied, nil
	}}
}

// mockEncoder implements media.Encoder by writing real files whose size is
// controlled per call, so size verification runs against the filesystem
type mockEncoder struct {
	mu     sync.Mutex
	jobs   []media.EncodeJob
	err    error
	errFor func(job media.EncodeJob) error
	// sizeFor decides how many bytes each invocation writes; nil writes 1000
	sizeFor func(call int, job media.EncodeJob) int64
}

func (m *mockEncoder) Encode(ctx context.Context, job media.EncodeJob) error {
	m.mu.Lock()
	m.jobs = append(m.jobs, job)
	call := len(m.jobs)
	m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	if m.errFor != nil {
		if err := m.errFor(job); err != nil {
			return err
		}
	}

	size := int64(1000)
	if m.sizeFor != nil {
		size = m.sizeFor(call, job)
	}
	return os.WriteFile(job.OutputPath, make([]byte, size), 0644)
}

func (m *mockEncoder) recorded() []media.EncodeJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]media.EncodeJob(nil), m.jobs...)
}

// mockConcatenator implements media.Concatenator, writing a real output file
type mockConcatenator struct {
	jobs       []media.ConcatJob
	failCopy   bool // reject stream-copy jobs, as with mixed codecs
	failAll    bool
	outputSize int64
}

func (m *mockConcatenator) Concat(ctx context.Context, job media.ConcatJob) error {
	m.jobs = append(m.jobs, job)
	if m.failAll || (m.failCopy && !job.Transcode) {
		return &media.EncodingError{Op: "concat", Detail: "codec mismatch"}
	}

	size := m.outputSize
	if size == 0 {
		size = 1000
	}
	return os.WriteFile(job.OutputPath, make([]byte, size), 0644)
}

// osFS backs the checker/sizer ports with the real filesystem, since the
// mock engine writes real scratch files
type osFS struct{}

func (osFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFS) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, &media.IOError{Op: "stat", Path: path, Err: err}
	}
	return info.Size(), nil
}
