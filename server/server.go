// Package server serves Markdown rendering over HTTP.
//
// POST /render accepts JSON-encoded mdtree.Props and responds with the
// rendered HTML fragment. Props override the handler defaults. GET /healthz reports liveness.
//
//	curl -d '{"value":"**hi** [x](y)","baseURL":"https://a.test/"}' localhost:8080/render
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"pkt.systems/mdtree"
	"pkt.systems/mdtree/dom"
	"pkt.systems/mdtree/internal/logger"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 1 << 20

// Option configures the handler.
type Option func(*handler)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(h *handler) {
		if l != nil {
			h.log = &logger.Logger{Logger: l}
		}
	}
}

// WithSanitizer keeps raw HTML as markup filtered through policy.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(h *handler) {
		h.renderers = mdtree.Renderers[*html.Node]{
			mdtree.KindHTML: dom.Sanitized(policy),
		}
	}
}

// WithMaxBodyBytes bounds the request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(h *handler) {
		if n > 0 {
			h.maxBody = n
		}
	}
}

// WithDefaults applies opts before the options carried by each request, so
// request props win.
func WithDefaults(opts ...mdtree.Option) Option {
	return func(h *handler) {
		h.defaults = append(h.defaults, opts...)
	}
}

// WithRenderOptions applies opts after the options carried by each request.
func WithRenderOptions(opts ...mdtree.Option) Option {
	return func(h *handler) {
		h.opts = append(h.opts, opts...)
	}
}

type handler struct {
	log       *logger.Logger
	renderers mdtree.Renderers[*html.Node]
	maxBody   int64
	defaults  []mdtree.Option
	opts      []mdtree.Option
}

// New returns the HTTP handler.
func New(opts ...Option) http.Handler {
	h := &handler{log: logger.Discard(), maxBody: DefaultMaxBodyBytes}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /render", h.render)
	mux.HandleFunc("GET /healthz", h.healthz)
	return mux
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Got   string `json:"got,omitempty"`
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok\n")
}

func (h *handler) render(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := h.serveRender(w, r)
	h.log.Request(r, status, time.Since(start))
}

func (h *handler) serveRender(w http.ResponseWriter, r *http.Request) int {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return writeError(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
		}
		return writeError(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if err := mdtree.ValidateSource(body); err != nil {
		return writeError(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	var props mdtree.Props
	if err := json.Unmarshal(body, &props); err != nil {
		return writeError(w, http.StatusBadRequest, errorResponse{Error: "decode props: " + err.Error()})
	}
	src, err := props.Source()
	if err != nil {
		var typeErr *mdtree.TypeError
		if errors.As(err, &typeErr) {
			return writeError(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: typeErr.Field, Got: typeErr.Got})
		}
		return writeError(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if err := mdtree.ValidateSource([]byte(src)); err != nil {
		return writeError(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	var opts []mdtree.Option
	opts = append(opts, h.defaults...)
	opts = append(opts, props.Options()...)
	opts = append(opts, h.opts...)
	root, err := mdtree.Render(mdtree.Request[*html.Node]{
		Source:    src,
		Host:      dom.Host{},
		Renderers: h.renderers,
		Options:   opts,
	})
	if err != nil {
		switch {
		case errors.Is(err, mdtree.ErrMaxDepth):
			return writeError(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		default:
			h.log.RenderFailed(r.URL.Path, err)
			return writeError(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
	}
	var out bytes.Buffer
	if err := dom.Render(&out, root); err != nil {
		h.log.RenderFailed(r.URL.Path, err)
		return writeError(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Bytes())
	return http.StatusOK
}

func writeError(w http.ResponseWriter, status int, resp errorResponse) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
	return status
}
