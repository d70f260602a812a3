// Package handler contains the HTTP request handlers. Handlers parse the
// incoming form, call a service, and render an HTML template — business
// rules live in internal/service, storage in internal/repository.
package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/sakif/api-catalog/internal/apperror"
)

// pageNames lists every page template under the template directory. Each is
// parsed together with base.html so its {{define "content"}} block fills
// the base layout's {{template "content" .}} placeholder.
var pageNames = []string{
	"index",
	"generate",
	"result",
	"admin",
	"signup",
	"login",
	"profile",
}

// Renderer holds the parsed template set for each page. Templates are
// parsed once at startup, not per request.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// NewRenderer parses all page templates from templateDir.
func NewRenderer(templateDir string, logger *slog.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, name+".html"),
		)
		if err != nil {
			return nil, err
		}
		pages[name] = tmpl
	}

	return &Renderer{
		pages:  pages,
		logger: logger,
	}, nil
}

// Render writes the named page with the given status and data.
//
// Headers and status must go out before the body; if template execution
// fails after that, the status is already committed, so the failure can
// only be logged.
func (rd *Renderer) Render(w http.ResponseWriter, status int, page string, data map[string]any) {
	tmpl, ok := rd.pages[page]
	if !ok {
		rd.logger.Error("unknown template", slog.String("page", page))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		rd.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
	}
}

// Error maps a domain error to its HTTP response. NotFound becomes a plain
// 404; anything else is a generic 500 with the detail kept in the logs —
// raw errors can leak SQL or file paths.
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperror.ErrNotFound) {
		http.NotFound(w, r)
		return
	}

	rd.logger.Error("request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
