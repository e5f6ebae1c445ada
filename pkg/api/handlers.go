package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/graph"
	"github.com/matzehuels/bpmnlayout/pkg/httputil"
	"github.com/matzehuels/bpmnlayout/pkg/observability"
	"github.com/matzehuels/bpmnlayout/pkg/pipeline"
	"github.com/matzehuels/bpmnlayout/pkg/store"
)

// RelayoutRequest is the body of POST /v1/relayout.
type RelayoutRequest struct {
	Process json.RawMessage `json:"process"`
	Prior   json.RawMessage `json:"prior"`
	Toggles []string        `json:"toggles"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteBytes(w, http.StatusOK, "text/plain; charset=utf-8", []byte("ok"))
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	p, err := decodeProcess(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts := s.options(r)
	l, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), p, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondLayout(w, r, p, l, hit)
}

func (s *Server) handleLayoutSVG(w http.ResponseWriter, r *http.Request) {
	p, err := decodeProcess(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts := s.options(r)
	opts.Formats = []string{pipeline.FormatSVG}
	res, err := s.runner.Execute(r.Context(), p, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.persist(r.Context(), w, res.ProcessHash, res.Layout); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set(HeaderCache, cacheHeader(res.CacheInfo.LayoutHit))
	httputil.WriteBytes(w, http.StatusOK, httputil.ContentTypeSVG, res.Artifacts[pipeline.FormatSVG])
}

func (s *Server) handleRelayout(w http.ResponseWriter, r *http.Request) {
	var req RelayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, r, bodyError(err))
		return
	}
	if len(req.Process) == 0 || len(req.Prior) == 0 {
		s.fail(w, r, errs.New(errs.ErrCodeInvalidInput, "process and prior are required"))
		return
	}
	p, err := bpmn.ReadProcess(bytes.NewReader(req.Process))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	prior, err := graph.UnmarshalLayout(req.Prior)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts := s.options(r)
	opts.Toggles = req.Toggles
	l, err := s.runner.Relayout(r.Context(), p, prior, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondLayout(w, r, p, l, false)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, errs.New(errs.ErrCodeUnsupported, "layout storage is disabled"))
		return
	}
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, r, errs.New(errs.ErrCodeUnsupported, "layout storage is disabled"))
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) options(r *http.Request) pipeline.Options {
	opts := pipeline.Options{Layout: s.opts.Layout, Logger: s.logger}
	if v := r.URL.Query().Get("refresh"); v != "" {
		opts.Refresh, _ = strconv.ParseBool(v)
	}
	return opts
}

func (s *Server) respondLayout(w http.ResponseWriter, r *http.Request, p *bpmn.Process, l graph.Layout, hit bool) {
	data, err := graph.MarshalLayout(l)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.persist(r.Context(), w, pipeline.ProcessHash(p), l); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set(HeaderCache, cacheHeader(hit))
	httputil.WriteBytes(w, http.StatusOK, httputil.ContentTypeJSON, data)
}

// persist stores l and sets the layout id header. It is a no-op without a
// store.
func (s *Server) persist(ctx context.Context, w http.ResponseWriter, processHash string, l graph.Layout) error {
	if s.store == nil {
		return nil
	}
	rec := store.NewRecord(processHash, l)
	if err := s.store.Put(ctx, rec); err != nil {
		return err
	}
	w.Header().Set(HeaderLayoutID, rec.ID)
	return nil
}

// fail writes err and reports it to the HTTP hooks.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		err = errs.Wrap(errs.ErrCodeTimeout, err, "request timed out")
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if httputil.StatusFor(err) >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", httputil.RequestIDFrom(r.Context()), "err", err)
	}
	httputil.WriteError(w, err)
}

func decodeProcess(r *http.Request) (*bpmn.Process, error) {
	p, err := bpmn.ReadProcess(r.Body)
	if err != nil {
		return nil, bodyError(err)
	}
	return p, nil
}

// bodyError maps an oversized body to INVALID_INPUT and bare decode errors
// to INVALID_FORMAT.
func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errs.New(errs.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
	}
	if errs.GetCode(err) == "" {
		return errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode request body")
	}
	return err
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
