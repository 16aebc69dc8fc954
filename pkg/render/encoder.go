// encoder.go — Drive the external ffmpeg/ffprobe binaries: probe base video
// geometry and composite the caption overlay onto every frame.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Executable names and encoding settings.
const (
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"

	// Video re-encodes at a fast preset and fixed quality; audio passes
	// through untouched.
	VideoCodec   = "libx264"
	VideoPreset  = "superfast"
	VideoCRF     = "27"
	AudioCodec   = "copy"
	OutputFormat = "mp4"

	// OverlayFilter pins the transparent caption frame at the origin.
	OverlayFilter = "overlay=x=0:y=0"
)

// DefaultTimeout bounds a single encoder run. Exceeding it surfaces as an
// *EncodingError rather than blocking the render forever.
const DefaultTimeout = 2 * time.Minute

// Encoder invokes the external video tooling. Paths are injectable so tests
// can stand in stub binaries. All fields are read-only after construction.
type Encoder struct {
	FFmpegPath  string
	FFprobePath string
	Timeout     time.Duration
}

// NewEncoder returns an encoder using the system ffmpeg/ffprobe and the
// default timeout.
func NewEncoder() *Encoder {
	return &Encoder{
		FFmpegPath:  FFmpegCommand,
		FFprobePath: FFprobeCommand,
		Timeout:     DefaultTimeout,
	}
}

// ProbeSize returns the pixel dimensions of the first video stream without
// decoding any frames.
func (e *Encoder) ProbeSize(ctx context.Context, videoPath string) (width, height int, err error) {
	cmd := exec.CommandContext(ctx, e.FFprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=p=0",
		videoPath,
	)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return 0, 0, &EncodingError{
				Err:    fmt.Errorf("probe %s: %w", videoPath, err),
				Stderr: strings.TrimSpace(string(exitErr.Stderr)),
			}
		}
		return 0, 0, &EncodingError{Err: fmt.Errorf("probe %s: %w", videoPath, err)}
	}

	parts := strings.Split(strings.TrimSpace(string(out)), ",")
	if len(parts) != 2 {
		return 0, 0, &EncodingError{Err: fmt.Errorf("probe %s: unexpected output %q", videoPath, strings.TrimSpace(string(out)))}
	}
	width, werr := strconv.Atoi(strings.TrimSpace(parts[0]))
	height, herr := strconv.Atoi(strings.TrimSpace(parts[1]))
	if werr != nil || herr != nil || width <= 0 || height <= 0 {
		return 0, 0, &EncodingError{Err: fmt.Errorf("probe %s: bad dimensions %q", videoPath, strings.TrimSpace(string(out)))}
	}

	return width, height, nil
}

// Overlay composites overlayPath at the origin onto every frame of basePath
// and writes the re-encoded result to outPath. A non-zero exit or a timeout
// is an *EncodingError carrying the process's stderr.
func (e *Encoder) Overlay(ctx context.Context, basePath, overlayPath, outPath string) error {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.FFmpegPath, e.buildArgs(basePath, overlayPath, outPath)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%v)", ctxErr, err)
		}
		return &EncodingError{Err: err, Stderr: strings.TrimSpace(stderr.String())}
	}
	return nil
}

// buildArgs assembles the overlay-and-reencode argument vector.
func (e *Encoder) buildArgs(basePath, overlayPath, outPath string) []string {
	return []string{
		"-hide_banner",
		"-v", "error",
		"-i", basePath,
		"-i", overlayPath,
		"-filter_complex", OverlayFilter,
		"-c:v", VideoCodec,
		"-preset", VideoPreset,
		"-crf", VideoCRF,
		"-f", OutputFormat,
		"-c:a", AudioCodec,
		"-y", outPath,
	}
}
