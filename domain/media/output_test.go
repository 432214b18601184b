package media

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputSpecExplicit(t *testing.T) {
	spec := ExplicitOutput("/out/final.mp4")

	if !spec.IsExplicit() {
		t.Errorf("explicit spec should report IsExplicit")
	}
	if got := spec.ResolveReduced("/videos/in.mov"); got != "/out/final.mp4" {
		t.Errorf("ResolveReduced = %q, want the explicit path", got)
	}
	if got := spec.ResolveMerged("/videos/in.mov"); got != "/out/final.mp4" {
		t.Errorf("ResolveMerged = %q, want the explicit path", got)
	}
}

func TestOutputSpecSynthesizeReduced(t *testing.T) {
	spec := SynthesizeOutput()

	if spec.IsExplicit() {
		t.Errorf("synthesized spec should not report IsExplicit")
	}

	got := spec.ResolveReduced("/videos/sample-1.mov")

	if filepath.Dir(got) != "/videos" {
		t.Errorf("synthesized path %q should live beside the input", got)
	}
	if filepath.Ext(got) != ".mov" {
		t.Errorf("synthesized path %q should keep the input extension", got)
	}
	if !strings.Contains(filepath.Base(got), "sample-1_reduced_") {
		t.Errorf("synthesized path %q should carry the input stem", got)
	}
}

func TestOutputSpecSynthesizeMerged(t *testing.T) {
	got := SynthesizeOutput().ResolveMerged("/videos/sample-1.mov")

	if filepath.Dir(got) != "/videos" {
		t.Errorf("synthesized path %q should live beside the first input", got)
	}
	if filepath.Ext(got) != ".mp4" {
		t.Errorf("merged output %q must be MP4", got)
	}
}

func TestOutputSpecSynthesizeNeverCollides(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		p := SynthesizeOutput().ResolveReduced("/videos/in.mp4")
		if seen[p] {
			t.Fatalf("synthesized path %q repeated", p)
		}
		seen[p] = true
	}
}
