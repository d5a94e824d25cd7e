// Package pages serves the server-rendered web front end. Every page is
// rendered from embedded templates and the session JWT travels in an
// HttpOnly cookie.
package pages

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/middleware"
	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

const loginPath = "/login"

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"day":   func(t time.Time) string { return t.Format(models.DateLayout) },
	"percent": func(part, whole float64) int {
		if whole <= 0 {
			return 0
		}
		return int(math.Max(0, math.Min(100, math.Round(part/whole*100))))
	},
}

// Handler renders the pages. Each view is parsed together with the base
// layout once, at construction.
type Handler struct {
	svc          *service.Services
	tokens       api.Tokens
	views        map[string]*template.Template
	secureCookie bool
}

// NewRouter returns the page routes. secureCookie marks the session cookie
// Secure and should be set when the site is served over TLS.
func NewRouter(svc *service.Services, tokens api.Tokens, secureCookie bool) (chi.Router, error) {
	h := &Handler{svc: svc, tokens: tokens, views: map[string]*template.Template{}, secureCookie: secureCookie}
	for _, name := range []string{"login.html", "register.html", "dashboard.html", "budgets.html", "goals.html"} {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templatesFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		h.views[name] = tmpl
	}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalCookie(tokens.Manager))
		r.Get("/login", h.loginForm)
		r.Post("/login", h.login)
		r.Get("/register", h.registerForm)
		r.Post("/register", h.register)
		r.Post("/logout", h.logout)
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireCookie(tokens.Manager, loginPath))
		r.Get("/", h.dashboard)
		r.Post("/transactions", h.addTransaction)
		r.Post("/transactions/{id}/delete", h.deleteTransaction)
		r.Get("/budgets", h.budgets)
		r.Post("/budgets", h.addBudget)
		r.Get("/goals", h.goals)
		r.Post("/goals", h.addGoal)
	})
	return r, nil
}

// layout is embedded in every view model.
type layout struct {
	Signed bool
	Error  string
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, view string, data any) {
	target := "base"
	if r.Header.Get("HX-Request") == "true" {
		target = "content"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.views[view].ExecuteTemplate(w, target, data); err != nil {
		slog.Error("Template execution failed", "view", view, "error", err)
	}
}

func (h *Handler) setSession(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// failure logs unexpected errors and returns the status and message the
// page should show.
func failure(r *http.Request, err error) (int, string) {
	status := api.StatusCode(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Page request failed", "path", r.URL.Path, "error", err)
	}
	return status, api.Message(err)
}
