// gocaption - Centered, stroked caption rendering over meme base media.
//
// Usage:
//
//	gocaption serve  [--assets <dir>] [--font <ttf>] [-p <port>] [options]
//	gocaption render --style <id> --text <caption> -o <file.png|file.mp4>
//	gocaption styles [--assets <dir>]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/xob0t/GoCaption/clients/server"
	"github.com/xob0t/GoCaption/pkg/caption"
	"github.com/xob0t/GoCaption/pkg/render"
	"github.com/xob0t/GoCaption/pkg/style"
)

const defaultAssets = "assets/templates"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "render":
		if err := runRender(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "styles":
		if err := runStyles(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)

	var (
		assets    string
		fontPath  string
		port      string
		ffmpeg    string
		ffprobe   string
		timeout   time.Duration
		videoJobs int
	)

	fs.StringVar(&assets, "assets", defaultAssets, "Style assets directory")
	fs.StringVar(&fontPath, "font", "", "Caption font TTF path (default: embedded)")
	fs.StringVar(&port, "p", "8080", "Port to listen on")
	fs.StringVar(&port, "port", "8080", "Port to listen on")
	fs.StringVar(&ffmpeg, "ffmpeg", render.FFmpegCommand, "ffmpeg executable")
	fs.StringVar(&ffprobe, "ffprobe", render.FFprobeCommand, "ffprobe executable")
	fs.DurationVar(&timeout, "timeout", render.DefaultTimeout, "Per-encode timeout")
	fs.IntVar(&videoJobs, "video-jobs", render.DefaultVideoJobs, "Max concurrent video encodes")

	if err := fs.Parse(args); err != nil {
		return err
	}

	renderer, err := buildRenderer(assets, fontPath, ffmpeg, ffprobe, timeout, videoJobs)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, server.Config{
		Addr:     ":" + port,
		Renderer: renderer,
	})
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)

	var (
		assets   string
		fontPath string
		styleID  string
		text     string
		output   string
		ffmpeg   string
		ffprobe  string
		timeout  time.Duration
	)

	fs.StringVar(&assets, "assets", defaultAssets, "Style assets directory")
	fs.StringVar(&fontPath, "font", "", "Caption font TTF path (default: embedded)")
	fs.StringVar(&styleID, "style", "", "Style id")
	fs.StringVar(&text, "text", "", "Caption text")
	fs.StringVar(&output, "o", "", "Output file path (.png or .mp4)")
	fs.StringVar(&output, "output", "", "Output file path (.png or .mp4)")
	fs.StringVar(&ffmpeg, "ffmpeg", render.FFmpegCommand, "ffmpeg executable")
	fs.StringVar(&ffprobe, "ffprobe", render.FFprobeCommand, "ffprobe executable")
	fs.DurationVar(&timeout, "timeout", render.DefaultTimeout, "Per-encode timeout")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if styleID == "" {
		return fmt.Errorf("style id is required (--style)")
	}
	if output == "" {
		return fmt.Errorf("output file is required (-o)")
	}

	renderer, err := buildRenderer(assets, fontPath, ffmpeg, ffprobe, timeout, 1)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var media render.Media
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".png":
		media, err = renderer.RenderImage(ctx, text, styleID)
	case ".mp4":
		media, err = renderer.RenderVideo(ctx, text, styleID)
	default:
		return fmt.Errorf("unsupported output format: %s (use .png or .mp4)", ext)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, media.Bytes, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	fmt.Printf("Successfully created: %s\n", output)
	return nil
}

func runStyles(args []string) error {
	fs := flag.NewFlagSet("styles", flag.ExitOnError)

	var assets string
	fs.StringVar(&assets, "assets", defaultAssets, "Style assets directory")

	if err := fs.Parse(args); err != nil {
		return err
	}

	registry, err := style.Load(assets)
	if err != nil {
		return err
	}

	for _, info := range registry.List() {
		fmt.Printf("%-20s %-30s %s\n", info.ID, info.Name, info.Source)
	}
	return nil
}

// buildRenderer loads the style catalog and font once and wires the renderer.
func buildRenderer(assets, fontPath, ffmpeg, ffprobe string, timeout time.Duration, videoJobs int) (*render.Renderer, error) {
	registry, err := style.Load(assets)
	if err != nil {
		return nil, fmt.Errorf("load styles: %w", err)
	}

	fonts, err := caption.NewFontManager(fontPath)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	encoder := &render.Encoder{
		FFmpegPath:  ffmpeg,
		FFprobePath: ffprobe,
		Timeout:     timeout,
	}

	return render.New(registry, fonts, encoder, videoJobs), nil
}

func printUsage() {
	fmt.Println(`GoCaption - Captioned meme stills and videos

USAGE:
    gocaption serve  [options]
    gocaption render [options]
    gocaption styles [options]

SERVE OPTIONS:
    --assets <dir>       Style assets directory (default: assets/templates)
    --font <path>        Caption font TTF (default: embedded Go font)
    -p, --port <port>    Port to listen on (default: 8080)
    --ffmpeg <path>      ffmpeg executable (default: ffmpeg)
    --ffprobe <path>     ffprobe executable (default: ffprobe)
    --timeout <dur>      Per-encode timeout (default: 2m)
    --video-jobs <n>     Max concurrent video encodes (default: 2)

RENDER OPTIONS:
    --style <id>         Style id (see 'gocaption styles')
    --text <caption>     Caption text
    -o, --output <path>  Output file path (.png or .mp4)
    --assets, --font, --ffmpeg, --ffprobe, --timeout as above

STYLES OPTIONS:
    --assets <dir>       Style assets directory

EXAMPLES:
    gocaption styles
    gocaption render --style classic --text "hello" -o out.png
    gocaption render --style classic --text "hello" -o out.mp4
    gocaption serve -p 8080`)
}
