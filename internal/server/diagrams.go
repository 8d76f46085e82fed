package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/deckroute/pkg/diagram"
	errs "github.com/matzehuels/deckroute/pkg/errors"
	"github.com/matzehuels/deckroute/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatJSON: "application/json",
}

// handleDiagram renders a diagram file below the served directory. Query
// parameters: format (default svg), viz, step and auto_layout.
func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	if s.dir == "" {
		s.writeError(w, errs.New(errs.ErrCodeNotFound, "no diagram directory is served"))
		return
	}
	rel := chi.URLParam(r, "*")
	if err := errs.ValidatePath(rel); err != nil {
		s.writeError(w, err)
		return
	}

	data, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if err != nil {
		if os.IsNotExist(err) {
			s.writeError(w, errs.New(errs.ErrCodeNotFound, "diagram %s not found", rel))
			return
		}
		s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "read diagram %s", rel))
		return
	}

	opts, err := diagramOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts.Source = string(data)
	opts.Format = string(diagram.FormatFromPath(rel))
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Diagram-Id", result.ID)
	w.Header().Set("X-Unrouted", strconv.Itoa(result.Stats.Failed))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// diagramOptions reads render options from the query string.
func diagramOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Formats: []string{pipeline.FormatSVG},
		VizType: q.Get("viz"),
	}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	if v := q.Get("step"); v != "" {
		step, err := strconv.Atoi(v)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "invalid step %q", v)
		}
		opts.Step = step
	}
	if v := q.Get("auto_layout"); v != "" {
		auto, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "invalid auto_layout %q", v)
		}
		opts.AutoLayout = auto
	}
	return opts, nil
}
