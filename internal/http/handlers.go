package http

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cansee/internal/core"
	applog "cansee/internal/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports ready once every tab fragment renders.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.Warm(r.Context()); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Readiness check failed", applog.FieldError, err)
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleIndex renders the full page. Every load starts on the overview tab.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var buf bytes.Buffer
	if err := s.renderer.Page(&buf, core.NewSelector()); err != nil {
		applog.FromContext(ctx).WithComponent(applog.ComponentRender).ErrorContext(ctx, "Page render failed", applog.FieldOperation, applog.OpRender, applog.FieldError, err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// handleTab renders the navigation and panel for one tab, for htmx swaps.
func (s *Server) handleTab(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.FromContext(ctx)

	tab, err := core.ParseTab(chi.URLParam(r, "tab"))
	if err != nil {
		logger.WarnContext(ctx, "Unknown tab requested", applog.FieldTab, chi.URLParam(r, "tab"))
		s.writeError(w, r, http.StatusNotFound, "Unknown tab")
		return
	}

	sel := core.NewSelector()
	if _, err := sel.Select(tab); err != nil {
		s.writeError(w, r, http.StatusNotFound, "Unknown tab")
		return
	}

	body, hit, err := s.fragment(sel.Active())
	if err != nil {
		logger.WithComponent(applog.ComponentRender).ErrorContext(ctx, "Fragment render failed", applog.FieldOperation, applog.OpRender, applog.FieldTab, tab.String(), applog.FieldError, err)
		s.writeError(w, r, http.StatusInternalServerError, "Error rendering tab")
		return
	}
	logger.DebugContext(ctx, "Tab selected",
		applog.FieldTab, tab.String(),
		applog.FieldCacheHit, hit,
		applog.FieldBytes, len(body))

	w.Header().Set("Content-Type", contentTypeHTML)
	_, _ = w.Write(body)
}

func (s *Server) fragment(tab core.Tab) ([]byte, bool, error) {
	return s.fragments.Get(tab.String(), func() ([]byte, error) {
		var buf bytes.Buffer
		if err := s.renderer.Fragment(&buf, tab); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusNotFound, "Page not found")
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WithComponent(applog.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded", applog.FieldPath, r.URL.Path)
	s.writeError(w, r, http.StatusTooManyRequests, "Too many requests. Please try again later.")
}

// writeError writes an error panel. Plain text is used if the error
// template itself fails.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	var buf bytes.Buffer
	if err := s.renderer.Error(&buf, msg); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Error template failed", applog.FieldError, err)
		http.Error(w, msg, status)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
