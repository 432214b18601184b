package media

import (
	"errors"
	"strings"
	"testing"
)

func TestNewMergeRequest(t *testing.T) {
	tests := []struct {
		name    string
		paths   []string
		wantErr bool
		errMsg  string
	}{
		{
			name:  "two inputs",
			paths: []string{"/v/a.mp4", "/v/b.mp4"},
		},
		{
			name:  "single input degenerates to remux",
			paths: []string{"/v/a.mp4"},
		},
		{
			name:    "empty list",
			paths:   nil,
			wantErr: true,
			errMsg:  "at least one input file is required",
		},
		{
			name:    "empty path element",
			paths:   []string{"/v/a.mp4", ""},
			wantErr: true,
			errMsg:  "input file 1 has an empty path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewMergeRequest(tt.paths)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(req.InputPaths) != len(tt.paths) {
				t.Errorf("InputPaths length = %d, want %d", len(req.InputPaths), len(tt.paths))
			}
		})
	}
}
