// Package server exposes the caption renderer over HTTP: raw media bytes on
// /render plus the style catalog for menus. It owns the mapping from renderer
// failures to transport statuses; the core never formats responses itself.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xob0t/GoCaption/pkg/render"
	"github.com/xob0t/GoCaption/pkg/style"
)

const shutdownGrace = 10 * time.Second

// Config holds the server wiring.
type Config struct {
	Addr     string
	Renderer *render.Renderer
}

type srv struct {
	renderer *render.Renderer
	index    *template.Template
}

// Run serves until ctx is cancelled, then shuts down gracefully. In-flight
// video encodes get shutdownGrace to finish.
func Run(ctx context.Context, cfg Config) error {
	s := &srv{
		renderer: cfg.Renderer,
		index:    template.Must(template.New("index").Parse(indexHTML)),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /render", s.handleRender)
	mux.HandleFunc("GET /api/styles", s.handleStyles)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	httpSrv := &http.Server{Addr: cfg.Addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("gocaption → http://localhost%s", cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// handleRender serves one render: /render?style=<id>&text=<caption>&ext=png|mp4.
func (s *srv) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	styleID := q.Get("style")
	text := q.Get("text")
	ext := q.Get("ext")

	var (
		media render.Media
		err   error
	)
	switch ext {
	case "png":
		media, err = s.renderer.RenderImage(r.Context(), text, styleID)
	case "mp4":
		media, err = s.renderer.RenderVideo(r.Context(), text, styleID)
	default:
		http.Error(w, fmt.Sprintf("bad extension %q: want png or mp4", ext), http.StatusBadRequest)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", media.ContentType)
	w.Write(media.Bytes)
}

func (s *srv) handleStyles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.renderer.Styles())
}

func (s *srv) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.index.Execute(w, s.renderer.Styles()); err != nil {
		log.Printf("render index: %v", err)
	}
}

// writeError maps renderer failures onto transport statuses. Bad style ids
// are the caller's fault; everything else is ours or the encoder's.
func writeError(w http.ResponseWriter, err error) {
	var (
		unknownStyle *style.UnknownStyleError
		encoding     *render.EncodingError
	)
	switch {
	case errors.As(err, &unknownStyle):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &encoding):
		log.Printf("encoder failed: %v", err)
		http.Error(w, "video encoding failed", http.StatusBadGateway)
	default:
		log.Printf("render failed: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

const indexHTML = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>GoCaption</title></head>
<body>
<h1>GoCaption</h1>
<form action="/render" method="get">
  <select name="style">
    {{- range .}}
    <option value="{{.ID}}">{{.Name}}</option>
    {{- end}}
  </select>
  <input name="text" placeholder="caption text">
  <select name="ext">
    <option value="png">png</option>
    <option value="mp4">mp4</option>
  </select>
  <button type="submit">Render</button>
</form>
<ul>
  {{- range .}}
  <li>{{.Name}} — source: {{.Source}}</li>
  {{- end}}
</ul>
</body>
</html>
`
