package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/prepbuddy/export"
	"github.com/c360studio/prepbuddy/vocabulary/prepbuddy"
)

// RequestIDHeader carries the request correlation ID.
const RequestIDHeader = "X-Request-ID"

// RegisterHTTPHandlers registers the lookup handlers under the given prefix.
// The prefix is a path segment without a trailing slash (e.g. "api"), or
// empty to mount at the root. Handlers are registered as:
//
//	GET <prefix>/namespaces            ?format=json|yaml|text|csv|tsv|env|python
//	GET <prefix>/namespaces/{symbol}
//	GET <prefix>/match                 ?pattern=<glob>&format=...
//	GET <prefix>/healthz
func (s *Server) RegisterHTTPHandlers(prefix string, mux *http.ServeMux) {
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	prefix = strings.TrimSuffix(prefix, "/")

	mux.HandleFunc(prefix+"/namespaces", s.timed("namespaces", s.handleList))
	mux.HandleFunc(prefix+"/namespaces/{symbol}", s.timed("namespace", s.handleGet))
	mux.HandleFunc(prefix+"/match", s.timed("match", s.handleMatch))
	mux.HandleFunc(prefix+"/healthz", s.handleHealth)
}

// ----------------------------------------------------------------------------
// GET /namespaces
// ----------------------------------------------------------------------------

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeEntries(w, r, prepbuddy.Entries())
}

// ----------------------------------------------------------------------------
// GET /namespaces/{symbol}
// ----------------------------------------------------------------------------

// handleGet resolves one symbolic name. Names are parsed leniently, so
// "python-connector" resolves PYTHON_CONNECTOR.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.PathValue("symbol")
	sym, err := prepbuddy.ParseSymbol(name)
	if err != nil {
		s.metrics.recordLookup(name, false)
		s.logger.Debug("Unknown symbol requested", "symbol", name, "request_id", w.Header().Get(RequestIDHeader))
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	s.metrics.recordLookup(string(sym), true)
	writeJSON(w, http.StatusOK, prepbuddy.Entry{Symbol: sym, Value: prepbuddy.MustLookup(sym)})
}

// ----------------------------------------------------------------------------
// GET /match
// ----------------------------------------------------------------------------

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pattern := r.URL.Query().Get("pattern")
	if pattern == "" {
		writeJSONError(w, http.StatusBadRequest, "pattern is required")
		return
	}

	entries, err := prepbuddy.Match(pattern)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeEntries(w, r, entries)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// ----------------------------------------------------------------------------
// GET /metrics
// ----------------------------------------------------------------------------

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metricsHandler.ServeHTTP(w, r)
}

// writeEntries renders entries in the format named by ?format= (default json).
// Output is buffered so a render failure can still produce an error status.
func (s *Server) writeEntries(w http.ResponseWriter, r *http.Request, entries []prepbuddy.Entry) {
	format := export.FormatJSON
	if name := r.URL.Query().Get("format"); name != "" {
		f, err := export.ParseFormat(name)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		format = f
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, entries); err != nil {
		s.logger.Error("Failed to render namespaces", "format", format, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "render failed")
		return
	}

	info, _ := export.GetFormatInfo(format)
	w.Header().Set("Content-Type", info.MIMEType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// withRequestID propagates or assigns X-Request-ID.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		s.logger.Debug("HTTP request", "method", r.Method, "path", r.URL.Path, "request_id", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) timed(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer s.metrics.observe(route, time.Now())
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
