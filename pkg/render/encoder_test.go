package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestBuildArgs(t *testing.T) {
	enc := NewEncoder()
	args := enc.buildArgs("/base.mp4", "/overlay.png", "/out.mp4")

	expected := []string{
		"-hide_banner",
		"-v", "error",
		"-i", "/base.mp4",
		"-i", "/overlay.png",
		"-filter_complex", "overlay=x=0:y=0",
		"-c:v", "libx264",
		"-preset", "superfast",
		"-crf", "27",
		"-f", "mp4",
		"-c:a", "copy",
		"-y", "/out.mp4",
	}

	if len(args) != len(expected) {
		t.Fatalf("Expected %d args, got %d: %v", len(expected), len(args), args)
	}
	for i, want := range expected {
		if args[i] != want {
			t.Errorf("Arg %d: expected %s, got %s", i, want, args[i])
		}
	}
}

func TestProbeSize(t *testing.T) {
	ffprobe := writeStub(t, "ffprobe", "#!/bin/sh\necho \"1920,1080\"\n")
	enc := &Encoder{FFprobePath: ffprobe}

	w, h, err := enc.ProbeSize(context.Background(), "/clip.mp4")
	if err != nil {
		t.Fatalf("ProbeSize failed: %v", err)
	}
	if w != 1920 || h != 1080 {
		t.Errorf("Expected 1920x1080, got %dx%d", w, h)
	}
}

func TestProbeSizeBadOutput(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"garbage", "#!/bin/sh\necho \"not,numbers\"\n"},
		{"missing field", "#!/bin/sh\necho \"640\"\n"},
		{"zero dimensions", "#!/bin/sh\necho \"0,0\"\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ffprobe := writeStub(t, "ffprobe", test.script)
			enc := &Encoder{FFprobePath: ffprobe}

			_, _, err := enc.ProbeSize(context.Background(), "/clip.mp4")
			var encErr *EncodingError
			if !errors.As(err, &encErr) {
				t.Fatalf("Expected *EncodingError, got %v", err)
			}
		})
	}
}

func TestProbeSizeProcessFailure(t *testing.T) {
	ffprobe := writeStub(t, "ffprobe", "#!/bin/sh\necho 'invalid data' >&2\nexit 1\n")
	enc := &Encoder{FFprobePath: ffprobe}

	_, _, err := enc.ProbeSize(context.Background(), "/clip.mp4")
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("Expected *EncodingError, got %v", err)
	}
	if !strings.Contains(encErr.Stderr, "invalid data") {
		t.Errorf("Expected captured stderr, got %q", encErr.Stderr)
	}
}

func TestOverlaySuccess(t *testing.T) {
	ffmpeg := writeStub(t, "ffmpeg", "#!/bin/sh\nfor a in \"$@\"; do out=\"$a\"; done\nprintf 'ok' > \"$out\"\n")
	enc := &Encoder{FFmpegPath: ffmpeg, Timeout: 10 * time.Second}

	out := filepath.Join(t.TempDir(), "out.mp4")
	if err := enc.Overlay(context.Background(), "/base.mp4", "/overlay.png", out); err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil || string(data) != "ok" {
		t.Errorf("Encoder did not write output: %v %q", err, data)
	}
}

func TestOverlayTimeout(t *testing.T) {
	ffmpeg := writeStub(t, "ffmpeg", "#!/bin/sh\nsleep 10\n")
	enc := &Encoder{FFmpegPath: ffmpeg, Timeout: 100 * time.Millisecond}

	err := enc.Overlay(context.Background(), "/base.mp4", "/overlay.png", "/dev/null")
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("Expected *EncodingError on timeout, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline error in chain, got %v", err)
	}
}
