package render

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

const probeStub = "#!/bin/sh\necho \"640,360\"\n"

// assertNoTempLeftovers fails if anything survived in dir after a render.
func assertNoTempLeftovers(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("Temp files left behind: %v", names)
	}
}

func TestRenderVideo(t *testing.T) {
	ffprobe := writeStub(t, "ffprobe", probeStub)
	// Writes a marker to the output path (the final argument).
	ffmpeg := writeStub(t, "ffmpeg", "#!/bin/sh\nfor a in \"$@\"; do out=\"$a\"; done\nprintf 'FAKEMP4' > \"$out\"\n")

	scratch := t.TempDir()
	t.Setenv("TMPDIR", scratch)

	r := newTestRenderer(t, &Encoder{FFmpegPath: ffmpeg, FFprobePath: ffprobe, Timeout: 10 * time.Second})

	media, err := r.RenderVideo(context.Background(), "test", "classic")
	if err != nil {
		t.Fatalf("RenderVideo failed: %v", err)
	}

	if media.ContentType != MIMEMP4 {
		t.Errorf("Expected %s, got %s", MIMEMP4, media.ContentType)
	}
	if string(media.Bytes) != "FAKEMP4" {
		t.Errorf("Expected encoder output bytes, got %q", media.Bytes)
	}

	assertNoTempLeftovers(t, scratch)
}

func TestRenderVideoEncoderFailure(t *testing.T) {
	ffprobe := writeStub(t, "ffprobe", probeStub)
	ffmpeg := writeStub(t, "ffmpeg", "#!/bin/sh\necho 'overlay exploded' >&2\nexit 3\n")

	scratch := t.TempDir()
	t.Setenv("TMPDIR", scratch)

	r := newTestRenderer(t, &Encoder{FFmpegPath: ffmpeg, FFprobePath: ffprobe, Timeout: 10 * time.Second})

	_, err := r.RenderVideo(context.Background(), "test", "classic")
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("Expected *EncodingError, got %v", err)
	}
	if !strings.Contains(encErr.Stderr, "overlay exploded") {
		t.Errorf("Expected encoder diagnostics in error, got %q", encErr.Stderr)
	}

	assertNoTempLeftovers(t, scratch)
}

func TestRenderVideoUnknownStyle(t *testing.T) {
	r := newTestRenderer(t, &Encoder{FFmpegPath: "/nonexistent", FFprobePath: "/nonexistent"})

	_, err := r.RenderVideo(context.Background(), "test", "nope")
	if err == nil {
		t.Fatal("Expected error for unknown style")
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("Expected style id in error, got %v", err)
	}
}

func TestRenderVideoProbeFailure(t *testing.T) {
	ffprobe := writeStub(t, "ffprobe", "#!/bin/sh\necho 'no such stream' >&2\nexit 1\n")

	scratch := t.TempDir()
	t.Setenv("TMPDIR", scratch)

	r := newTestRenderer(t, &Encoder{FFmpegPath: "/nonexistent", FFprobePath: ffprobe, Timeout: 10 * time.Second})

	_, err := r.RenderVideo(context.Background(), "test", "classic")
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("Expected *EncodingError, got %v", err)
	}
	if !strings.Contains(encErr.Stderr, "no such stream") {
		t.Errorf("Expected probe diagnostics, got %q", encErr.Stderr)
	}

	assertNoTempLeftovers(t, scratch)
}

func TestRenderVideoCancelledContext(t *testing.T) {
	ffprobe := writeStub(t, "ffprobe", probeStub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestRenderer(t, &Encoder{FFmpegPath: "/nonexistent", FFprobePath: ffprobe, Timeout: 10 * time.Second})

	// The semaphore has a free slot, so cancellation surfaces from the
	// encoder invocation instead; either way the render must fail cleanly.
	if _, err := r.RenderVideo(ctx, "test", "classic"); err == nil {
		t.Fatal("Expected error for cancelled context")
	}
}
