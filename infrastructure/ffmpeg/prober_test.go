package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gabriel-melki/video-compressing/domain/media"
)

// mockRunner records invocations and plays back canned results
type mockRunner struct {
	calls     [][]string
	output    []byte
	outputErr error
	runStderr string
	runErr    error
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	m.calls = append(m.calls, append([]string{name}, args...))
	return m.runStderr, m.runErr
}

func (m *mockRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, append([]string{name}, args...))
	return m.output, m.outputErr
}

const sampleProbeJSON = `{
	"format": {
		"format_name": "mov,mp4,m4a,3gp,3g2,mj2",
		"duration": "5.312000",
		"size": "10485760",
		"bit_rate": "15728640"
	},
	"streams": [
		{"codec_type": "video", "codec_name": "h264", "bit_rate": "15000000"},
		{"codec_type": "audio", "codec_name": "aac", "bit_rate": "128000"}
	]
}`

func TestParseProbeJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    media.ProbeInfo
		wantErr bool
		errMsg  string
	}{
		{
			name: "full format and streams",
			data: sampleProbeJSON,
			want: media.ProbeInfo{
				Duration:     5.312,
				Size:         10485760,
				BitRate:      15728640,
				AudioBitRate: 128000,
				FormatName:   "mov,mp4,m4a,3gp,3g2,mj2",
			},
		},
		{
			name: "no audio stream",
			data: `{"format":{"format_name":"mp4","duration":"2.5","size":"100","bit_rate":"320"},"streams":[{"codec_type":"video"}]}`,
			want: media.ProbeInfo{Duration: 2.5, Size: 100, BitRate: 320, FormatName: "mp4"},
		},
		{
			name:    "missing duration",
			data:    `{"format":{"format_name":"mp4","size":"100"}}`,
			wantErr: true,
			errMsg:  "no playable duration",
		},
		{
			name:    "zero duration",
			data:    `{"format":{"duration":"0.0"}}`,
			wantErr: true,
			errMsg:  "no playable duration",
		},
		{
			name:    "malformed JSON",
			data:    `{"format":`,
			wantErr: true,
			errMsg:  "parse ffprobe JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProbeJSON([]byte(tt.data))

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *got != tt.want {
				t.Errorf("ParseProbeJSON = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestProberProbe(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.mp4")
	if err := os.WriteFile(input, []byte("not really a video"), 0644); err != nil {
		t.Fatal(err)
	}

	runner := &mockRunner{output: []byte(sampleProbeJSON)}
	prober := NewProber(WithProberCommandRunner(runner))

	info, err := prober.Probe(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Duration != 5.312 {
		t.Errorf("Duration = %g, want 5.312", info.Duration)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("expected one ffprobe call, got %d", len(runner.calls))
	}
	call := runner.calls[0]
	if call[0] != "ffprobe" {
		t.Errorf("invoked %q, want ffprobe", call[0])
	}
	if call[len(call)-1] != input {
		t.Errorf("last arg = %q, want the input path", call[len(call)-1])
	}
}

func TestProberProbeMissingFile(t *testing.T) {
	prober := NewProber(WithProberCommandRunner(&mockRunner{}))

	_, err := prober.Probe(context.Background(), "/nonexistent.mp4")
	if err == nil {
		t.Fatalf("expected error for missing file")
	}

	var perr *media.ProbeError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProbeError, got %T", err)
	}
	if perr.Path != "/nonexistent.mp4" {
		t.Errorf("ProbeError.Path = %q", perr.Path)
	}
}

func TestProberDuration(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.mov")
	if err := os.WriteFile(input, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	prober := NewProber(WithProberCommandRunner(&mockRunner{output: []byte(sampleProbeJSON)}))

	d, err := prober.Duration(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 5.312 {
		t.Errorf("Duration = %g, want 5.312", d)
	}
}

func TestProberProbeEngineFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.mp4")
	if err := os.WriteFile(input, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runner := &mockRunner{outputErr: errors.New("exit status 1")}
	prober := NewProber(WithProberCommandRunner(runner))

	_, err := prober.Probe(context.Background(), input)

	var perr *media.ProbeError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProbeError, got %v", err)
	}
}
