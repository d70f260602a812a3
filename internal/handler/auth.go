package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/api-catalog/internal/apperror"
	"github.com/sakif/api-catalog/internal/auth"
	"github.com/sakif/api-catalog/internal/service"
)

// sessionCookieMaxAge matches the token's 24h validity, so the cookie and
// the claim inside it expire together.
const sessionCookieMaxAge = int(24 * time.Hour / time.Second)

// AuthHandler serves the account pages: signup, login, logout and profile.
type AuthHandler struct {
	authSvc  *service.AuthService
	catalog  *service.CatalogService
	sessions *auth.SessionService
	render   *Renderer
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(
	authSvc *service.AuthService,
	catalog *service.CatalogService,
	sessions *auth.SessionService,
	render *Renderer,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authSvc:  authSvc,
		catalog:  catalog,
		sessions: sessions,
		render:   render,
		logger:   logger,
	}
}

// setSessionCookie stores the signed session token in an HttpOnly cookie.
// HttpOnly keeps it out of reach of page scripts; SameSite=Lax withholds it
// from cross-site POSTs. Secure should be enabled behind HTTPS.
func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie tells the browser to drop the session cookie.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// HandleSignupForm shows the signup form.
//
// HTTP: GET /signup
func (h *AuthHandler) HandleSignupForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "signup", map[string]any{
		"Title": "Sign Up",
	})
}

// HandleSignup creates an account from the signup form and sends the new
// user to the login page. A duplicate username or email, like a missing
// field, re-renders the form with a 400 and the failure message.
//
// HTTP: POST /signup, form fields: username, email, password
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	_, err := h.authSvc.Signup(r.Context(),
		r.PostFormValue("username"),
		r.PostFormValue("email"),
		r.PostFormValue("password"),
	)
	if err != nil {
		if errors.Is(err, apperror.ErrValidation) || errors.Is(err, apperror.ErrConflict) {
			h.render.Render(w, http.StatusBadRequest, "signup", map[string]any{
				"Title": "Sign Up",
				"Error": err.Error(),
			})
			return
		}
		h.render.Error(w, r, err)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleLoginForm shows the login form.
//
// HTTP: GET /login
func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "login", map[string]any{
		"Title": "Log In",
	})
}

// HandleLogin attempts a login. Success sets the session cookie and
// redirects home. Any credential failure — unknown email or wrong
// password alike — re-renders the login form with no session change and no
// error detail, so the response never reveals whether the email exists.
//
// HTTP: POST /login, form fields: email, password
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	user, err := h.authSvc.Login(r.Context(),
		r.PostFormValue("email"),
		r.PostFormValue("password"),
	)
	if err != nil {
		if errors.Is(err, apperror.ErrUnauthorized) {
			h.render.Render(w, http.StatusOK, "login", map[string]any{
				"Title": "Log In",
			})
			return
		}
		h.render.Error(w, r, err)
		return
	}

	token, err := h.sessions.Issue(user)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	setSessionCookie(w, token)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the session cookie unconditionally and returns to
// the login page. The token itself stays valid until expiry — the server
// keeps no session state to revoke.
//
// HTTP: GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

// HandleProfile renders the profile page with the current user and the
// full catalog list. Entries are not owned by users, so the list is not
// filtered.
//
// HTTP: GET /profile (session required)
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		// RequireSession already gates this route; keep the guard anyway.
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.authSvc.GetUserByID(r.Context(), sess.UserID)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	apis, err := h.catalog.List(r.Context())
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.Render(w, http.StatusOK, "profile", map[string]any{
		"Title": "Profile — " + user.Username,
		"User":  user,
		"APIs":  apis,
	})
}
