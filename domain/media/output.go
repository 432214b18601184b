package media

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// OutputSpec describes where an operation writes its result: either an
// explicit caller-provided path, or a path synthesized to avoid collisions.
// A spec is resolved exactly once at the start of an operation.
type OutputSpec struct {
	path string
}

// ExplicitOutput returns a spec that writes to exactly the given path
func ExplicitOutput(path string) OutputSpec {
	return OutputSpec{path: path}
}

// SynthesizeOutput returns a spec that generates a fresh, collision-free path
func SynthesizeOutput() OutputSpec {
	return OutputSpec{}
}

// IsExplicit reports whether the caller supplied a destination
func (s OutputSpec) IsExplicit() bool {
	return s.path != ""
}

// ResolveReduced resolves the spec for a size-reduction of inputPath.
// Synthesized names keep the input's container extension and live beside it.
func (s OutputSpec) ResolveReduced(inputPath string) string {
	if s.path != "" {
		return s.path
	}
	dir := filepath.Dir(inputPath)
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(filepath.Base(inputPath), ext)
	return filepath.Join(dir, fmt.Sprintf("%s_reduced_%s%s", stem, uuid.NewString(), ext))
}

// ResolveMerged resolves the spec for a merge whose first input is
// firstInput. Synthesized names are always MP4.
func (s OutputSpec) ResolveMerged(firstInput string) string {
	if s.path != "" {
		return s.path
	}
	dir := filepath.Dir(firstInput)
	return filepath.Join(dir, fmt.Sprintf("merged_%s.mp4", uuid.NewString()))
}
