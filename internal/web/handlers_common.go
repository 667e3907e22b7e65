package web

// Shared utilities and helper functions used across handlers.

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/storeadmin/internal/core"
	"github.com/JonMunkholm/storeadmin/internal/logging"
	"github.com/JonMunkholm/storeadmin/internal/web/templates"
)

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// renderBytes renders a component into memory.
func renderBytes(ctx context.Context, c templ.Component) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// render writes a component as a complete HTML response. The page is rendered
// before the status is written so a template failure never leaves half a page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	body, err := renderBytes(r.Context(), c)
	if err != nil {
		logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
		http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, body)
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// page returns the shared page fields with activePath highlighted.
func (s *Server) page(title, activePath string) templates.Page {
	nav := []templates.NavItem{{Label: "Overview", Path: "/dashboard", Active: activePath == "/dashboard"}}
	for _, info := range s.service.Entities() {
		nav = append(nav, templates.NavItem{
			Label:  info.Label,
			Path:   info.ListPath(),
			Active: activePath == info.ListPath(),
		})
	}
	return templates.Page{Title: title, Nav: nav}
}

// entityDefinition resolves the {entity} URL parameter, writing a 404 page
// when it names no registered entity.
func (s *Server) entityDefinition(w http.ResponseWriter, r *http.Request) (core.EntityDefinition, bool) {
	def, err := s.service.Definition(chi.URLParam(r, "entity"))
	if err != nil {
		s.handleNotFound(w, r)
		return core.EntityDefinition{}, false
	}
	return def, true
}

// handleError answers not-found errors with the 404 page and everything else
// through respondError.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, def core.EntityDefinition, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		s.notFound(w, r,
			"Could not find the requested "+def.Info.Singular+".",
			def.Info.ListPath(), "Go back to "+def.Info.Label)
	case errors.Is(err, core.ErrUnknownEntity):
		s.handleNotFound(w, r)
	default:
		s.respondError(w, r, err, http.StatusInternalServerError)
	}
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request, msg, backPath, backLabel string) {
	if wantsJSON(r) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.render(w, r, http.StatusNotFound, templates.NotFoundPage(templates.NotFoundView{
		Page:      s.page("Not Found", ""),
		Message:   msg,
		BackPath:  backPath,
		BackLabel: backLabel,
	}))
}

// handleNotFound renders the 404 page for unmatched routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.notFound(w, r, "The page you are looking for does not exist.", "/dashboard", "Go to dashboard")
}
