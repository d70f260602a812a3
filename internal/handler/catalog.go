package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/api-catalog/internal/apperror"
	"github.com/sakif/api-catalog/internal/auth"
	"github.com/sakif/api-catalog/internal/generator"
	"github.com/sakif/api-catalog/internal/model"
	"github.com/sakif/api-catalog/internal/service"
)

// CatalogHandler serves the catalog pages: listing, code generation,
// entry creation, rating and deletion.
type CatalogHandler struct {
	catalog *service.CatalogService
	users   *service.AuthService
	render  *Renderer
	logger  *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(
	catalog *service.CatalogService,
	users *service.AuthService,
	render *Renderer,
	logger *slog.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		users:   users,
		render:  render,
		logger:  logger,
	}
}

// entryID parses the {id} route parameter. A non-numeric id never matches
// an entry, so it gets the same 404 as a missing one.
func entryID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// currentUser resolves the session's account, if any. A dangling session
// (valid token, deleted account) yields a nil user rather than an error —
// sessions are never re-verified against the store.
func (h *CatalogHandler) currentUser(r *http.Request) (*model.User, error) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		return nil, nil
	}
	user, err := h.users.GetUserByID(r.Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// HandleHome lists all catalog entries.
//
// HTTP: GET /
func (h *CatalogHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	apis, err := h.catalog.List(r.Context())
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	user, err := h.currentUser(r)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.Render(w, http.StatusOK, "index", map[string]any{
		"Title": "API Catalog",
		"APIs":  apis,
		"User":  user,
	})
}

// HandleGenerateForm shows the language-selection form for an entry.
//
// HTTP: GET /generate/{id}
func (h *CatalogHandler) HandleGenerateForm(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	api, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.Render(w, http.StatusOK, "generate", map[string]any{
		"Title":     "Generate Code — " + api.Name,
		"API":       api,
		"Languages": generator.Languages(),
	})
}

// HandleGenerate renders the generated snippet for the submitted language.
// A missing or unrecognized language value gets the fixed placeholder text,
// same as any other unknown language.
//
// HTTP: POST /generate/{id}, form field: language
func (h *CatalogHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	api, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	lang := r.PostFormValue("language")
	code := generator.Generate(api.Endpoint, lang)

	h.render.Render(w, http.StatusOK, "result", map[string]any{
		"Title":    "Generated Code — " + api.Name,
		"API":      api,
		"Language": lang,
		"Code":     code,
	})
}

// HandleAdminForm shows the entry creation form.
//
// HTTP: GET /admin (session required; the router gates this route)
func (h *CatalogHandler) HandleAdminForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "admin", map[string]any{
		"Title": "Add API",
	})
}

// HandleAdminCreate persists a new catalog entry from the admin form.
// Missing required fields re-render the form with a 400 and the full list
// of what was missing.
//
// HTTP: POST /admin (session required)
func (h *CatalogHandler) HandleAdminCreate(w http.ResponseWriter, r *http.Request) {
	in := service.CreateAPIInput{
		Name:        r.PostFormValue("name"),
		Tech:        r.PostFormValue("tech"),
		Description: r.PostFormValue("desc"),
		URL:         r.PostFormValue("url"),
		Code:        r.PostFormValue("code"),
		Endpoint:    r.PostFormValue("endpoint"),
	}

	if _, err := h.catalog.Create(r.Context(), in); err != nil {
		if errors.Is(err, apperror.ErrValidation) {
			h.render.Render(w, http.StatusBadRequest, "admin", map[string]any{
				"Title": "Add API",
				"Error": err.Error(),
			})
			return
		}
		h.render.Error(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleDelete removes a catalog entry and returns to the listing.
//
// HTTP: GET /delete/{id}
//
// Deliberately reachable without a session and via plain navigational GET,
// preserving the application's historical behavior. See DESIGN.md.
func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		h.render.Error(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// HandleRate overwrites an entry's rating with the submitted value.
// A non-integer rating re-renders the listing with a 400.
//
// HTTP: POST /rate/{id} (session required), form field: rating
func (h *CatalogHandler) HandleRate(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	rating, err := strconv.Atoi(r.PostFormValue("rating"))
	if err != nil {
		apis, listErr := h.catalog.List(r.Context())
		if listErr != nil {
			h.render.Error(w, r, listErr)
			return
		}
		user, userErr := h.currentUser(r)
		if userErr != nil {
			h.render.Error(w, r, userErr)
			return
		}
		h.render.Render(w, http.StatusBadRequest, "index", map[string]any{
			"Title": "API Catalog",
			"APIs":  apis,
			"User":  user,
			"Error": "rating must be a whole number",
		})
		return
	}

	if err := h.catalog.Rate(r.Context(), id, rating); err != nil {
		h.render.Error(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
