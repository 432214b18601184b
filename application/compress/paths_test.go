package compress

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestTempOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		dest     string
		wantExt  string
		wantStem string
	}{
		{
			name:     "keeps the container extension",
			dest:     "/videos/out.mp4",
			wantExt:  ".mp4",
			wantStem: "out",
		},
		{
			name:     "extension-less destination",
			dest:     "/videos/0b4e5a6c-8f2e-11eb-b5f1",
			wantExt:  ".part",
			wantStem: "0b4e5a6c-8f2e-11eb-b5f1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tempOutputPath(tt.dest)

			if filepath.Dir(got) != filepath.Dir(tt.dest) {
				t.Errorf("scratch path %q must stay in the destination's directory", got)
			}
			base := filepath.Base(got)
			if !strings.HasPrefix(base, ".") {
				t.Errorf("scratch path %q should be hidden", got)
			}
			if !strings.Contains(base, tt.wantStem) {
				t.Errorf("scratch path %q should carry the destination stem %q", got, tt.wantStem)
			}
			if filepath.Ext(got) != tt.wantExt {
				t.Errorf("scratch path %q has extension %q, want %q", got, filepath.Ext(got), tt.wantExt)
			}
		})
	}
}

func TestTempOutputPathNeverCollides(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		p := tempOutputPath("/videos/out.mp4")
		if seen[p] {
			t.Fatalf("scratch path %q repeated", p)
		}
		seen[p] = true
	}
}
