package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/arcgraph/pkg/buildinfo"
	"github.com/matzehuels/arcgraph/pkg/errors"
	"github.com/matzehuels/arcgraph/pkg/graph"
	"github.com/matzehuels/arcgraph/pkg/pipeline"
	"github.com/matzehuels/arcgraph/pkg/scene"
)

type request struct {
	Graph   *graph.Graph     `json:"graph"`
	Options pipeline.Options `json:"options"`
}

// AnalyzeResponse is the body of a successful /v1/analyze call.
type AnalyzeResponse struct {
	GraphHash string        `json:"graph_hash"`
	Layout    *graph.Layout `json:"layout,omitempty"`
	LayoutHit bool          `json:"layout_cached"`
	Scene     graph.Scene   `json:"scene"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var contentTypes = map[string]string{
	scene.FormatJSON: "application/json",
	scene.FormatSVG:  "image/svg+xml",
	scene.FormatDOT:  "text/vnd.graphviz",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req.Options.Formats = nil

	res, err := s.runner.Execute(r.Context(), *req.Graph, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	err = writeJSON(w, http.StatusOK, AnalyzeResponse{
		GraphHash: res.GraphHash,
		Layout:    res.Layout,
		LayoutHit: res.CacheInfo.LayoutHit,
		Scene:     res.Scene,
	})
	if err != nil {
		s.logger.Error("encode scene", "path", r.URL.Path, "error", err)
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = scene.FormatSVG
	}
	if err := scene.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req.Options.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), *req.Graph, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Graph-Hash", res.GraphHash)
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[format])
}

// decode reads a request body on top of the configured defaults.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (request, error) {
	req := request{Options: s.cfg.Defaults}
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return request{}, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return request{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request")
	}
	if req.Graph == nil {
		return request{}, errors.New(errors.ErrCodeInvalidInput, "request has no graph")
	}
	req.Options.Logger = s.logger
	return req, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: errorBody{Code: string(code), Message: msg}})
}

// writeJSON encodes v before committing the status, so a value that cannot
// be encoded becomes a 500 instead of an empty response.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	var buf bytes.Buffer
	err := json.NewEncoder(&buf).Encode(v)
	if err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		json.NewEncoder(&buf).Encode(errorResponse{Error: errorBody{
			Code:    string(errors.ErrCodeInternal),
			Message: "internal error",
		}})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
	return err
}
