package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/matzehuels/deckroute/pkg/buildinfo"
	errs "github.com/matzehuels/deckroute/pkg/errors"
	"github.com/matzehuels/deckroute/pkg/graph"
	"github.com/matzehuels/deckroute/pkg/pipeline"
)

// Artifact is one rendered output. Binary formats are base64 encoded.
type Artifact struct {
	Encoding string `json:"encoding"` // "utf-8" or "base64"
	Data     string `json:"data"`
}

// RouteResponse is the body of a successful /v1/route call.
type RouteResponse struct {
	ID        string              `json:"id"`
	Document  *graph.Document     `json:"document"`
	Artifacts map[string]Artifact `json:"artifacts"`
	Failed    int                 `json:"failed"`
	Warnings  []string            `json:"warnings,omitempty"`
	Cached    CacheStatus         `json:"cached"`
	ElapsedMS int64               `json:"elapsed_ms"`
}

// CacheStatus reports which pipeline stages were served from cache.
type CacheStatus struct {
	Layout bool `json:"layout"`
	Routes bool `json:"routes"`
	Render bool `json:"render"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := RouteResponse{
		ID:        result.ID,
		Document:  result.Document,
		Artifacts: make(map[string]Artifact, len(result.Artifacts)),
		Failed:    result.Stats.Failed,
		Warnings:  result.Routes.Warnings(),
		Cached: CacheStatus{
			Layout: result.CacheInfo.LayoutHit,
			Routes: result.CacheInfo.RouteHit,
			Render: result.CacheInfo.RenderHit,
		},
		ElapsedMS: time.Since(start).Milliseconds(),
	}
	for format, data := range result.Artifacts {
		resp.Artifacts[format] = encodeArtifact(format, data)
	}
	writeJSON(w, http.StatusOK, resp)
}

func encodeArtifact(format string, data []byte) Artifact {
	switch format {
	case pipeline.FormatPNG, pipeline.FormatPDF:
		return Artifact{Encoding: "base64", Data: base64.StdEncoding.EncodeToString(data)}
	default:
		return Artifact{Encoding: "utf-8", Data: string(data)}
	}
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errs.ClassOf(err) {
	case errs.ClassValidation:
		return http.StatusBadRequest
	case errs.ClassNotFound:
		return http.StatusNotFound
	case errs.ClassUnsupported:
		return http.StatusUnprocessableEntity
	case errs.ClassCancelled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	} else {
		s.logger.Debug("request rejected", "status", status, "error", err)
	}
	writeJSON(w, status, ErrorResponse{
		Error: errs.UserMessage(err),
		Code:  string(errs.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
