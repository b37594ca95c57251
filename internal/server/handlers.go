package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/bubbletreemap/pkg/buildinfo"
	"github.com/matzehuels/bubbletreemap/pkg/errors"
	"github.com/matzehuels/bubbletreemap/pkg/graph"
	bio "github.com/matzehuels/bubbletreemap/pkg/io"
	"github.com/matzehuels/bubbletreemap/pkg/pipeline"
	"github.com/matzehuels/bubbletreemap/pkg/render/sink"
	"github.com/matzehuels/bubbletreemap/pkg/storage"
)

// LayoutResponse is returned by the layout endpoints.
type LayoutResponse struct {
	ID            string       `json:"id"`
	HierarchyHash string       `json:"hierarchy_hash,omitempty"`
	Cached        bool         `json:"cached"`
	Layout        graph.Layout `json:"layout"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	data, opts, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	tree, err := pipeline.Decode(ctx, data, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, hit, err := s.runner.LayoutWithCacheInfo(ctx, tree, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	hash, err := pipeline.HierarchyHash(tree)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := storage.NewRecord(l, hash, storage.DefaultTTL)
	if err := s.store.Set(ctx, rec); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "store layout"))
		return
	}

	w.Header().Set("Location", "/v1/layouts/"+rec.ID)
	writeJSON(w, http.StatusCreated, LayoutResponse{
		ID:            rec.ID,
		HierarchyHash: hash,
		Cached:        hit,
		Layout:        l,
	})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, LayoutResponse{
		ID:            rec.ID,
		HierarchyHash: rec.HierarchyHash,
		Cached:        true,
		Layout:        rec.Layout,
	})
}

func (s *Server) handleLayoutSVG(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	var opts []sink.SVGOption
	if queryBool(q, "labels") {
		opts = append(opts, sink.WithLabels())
	}
	if queryBool(q, "internal") {
		opts = append(opts, sink.WithInternalNodes())
	}
	if bg := q.Get("background"); bg != "" {
		opts = append(opts, sink.WithBackground(bg))
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[pipeline.FormatSVG])
	w.Write(sink.RenderSVG(rec.Layout, opts...))
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "delete layout"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	data, opts, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), data, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Run-ID", res.RunID)
	w.Header().Set("X-Cache-Layout", strconv.FormatBool(res.CacheInfo.LayoutHit))
	w.Header().Set("X-Cache-Render", strconv.FormatBool(res.CacheInfo.RenderHit))
	w.Write(res.Artifacts[format])
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*storage.Record, bool) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "load layout"))
		return nil, false
	}
	if rec == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "layout %q not found", id))
		return nil, false
	}
	return rec, true
}

// readRequest reads the hierarchy body and builds options from the
// configured defaults and the query string.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) ([]byte, pipeline.Options, bool) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
				Error:     "request body too large",
				Code:      string(errors.ErrCodeInvalidInput),
				RequestID: GetRequestID(r.Context()),
			})
			return nil, pipeline.Options{}, false
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return nil, pipeline.Options{}, false
	}
	if len(data) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "empty request body"))
		return nil, pipeline.Options{}, false
	}

	opts, err := optionsFromQuery(s.cfg.Defaults, r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return nil, pipeline.Options{}, false
	}
	if opts.InputFormat == bio.FormatAuto {
		opts.InputFormat = formatFromContentType(r.Header.Get("Content-Type"))
	}
	opts.Logger = s.logger.With("request", GetRequestID(r.Context()))
	return data, opts, true
}

// optionsFromQuery applies query parameters on top of base. base is not
// modified.
func optionsFromQuery(base pipeline.Options, q url.Values) (pipeline.Options, error) {
	opts := base
	floats := map[string]*float64{
		"width":  &opts.Width,
		"height": &opts.Height,
		"scale":  &opts.Scale,
	}
	for name, dst := range floats {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidOption, "invalid %s: %q", name, v)
			}
			*dst = f
		}
	}
	for name, dst := range map[string]**float64{"padding": &opts.Padding, "curvature": &opts.Curvature} {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidOption, "invalid %s: %q", name, v)
			}
			*dst = pipeline.Float(f)
		}
	}
	if v := q.Get("precision"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidOption, "invalid precision: %q", v)
		}
		opts.Precision = n
	}
	if v := q.Get("spacing"); v != "" {
		opts.Spacing = v
	}
	if v := q.Get("target"); v != "" {
		opts.Target = v
	}
	if v := q.Get("colormap"); v != "" {
		opts.Colormap = strings.Split(v, ",")
	}
	if v := q.Get("input"); v != "" {
		opts.InputFormat = v
	}
	if v := q.Get("background"); v != "" {
		opts.Background = v
	}
	if q.Has("labels") {
		opts.Labels = queryBool(q, "labels")
	}
	if q.Has("internal") {
		opts.InternalNodes = queryBool(q, "internal")
	}
	if q.Has("detailed") {
		opts.Detailed = queryBool(q, "detailed")
	}
	if q.Has("refresh") {
		opts.Refresh = queryBool(q, "refresh")
	}
	return opts, nil
}

func queryBool(q url.Values, name string) bool {
	b, err := strconv.ParseBool(q.Get(name))
	return err == nil && b
}

func formatFromContentType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return bio.FormatAuto
	}
	switch mt {
	case "application/json":
		return bio.FormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return bio.FormatYAML
	}
	return bio.FormatAuto
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
