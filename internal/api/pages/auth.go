package pages

import (
	"net/http"
	"strings"
	"time"

	"github.com/youridegraef/qash-backend-sub000/internal/middleware"
	"github.com/youridegraef/qash-backend-sub000/internal/models"
)

type loginView struct {
	layout
	Email string
}

type registerView struct {
	layout
	Name        string
	Email       string
	DateOfBirth string
}

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUserID(r.Context()) != 0 {
		redirect(w, r, "/")
		return
	}
	h.render(w, r, http.StatusOK, "login.html", loginView{})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "login.html", loginView{layout: layout{Error: "Invalid form submission"}})
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))

	res, err := h.svc.Users.Authenticate(r.Context(), email, r.FormValue("password"), h.tokens.Key, h.tokens.Issuer)
	if err != nil {
		status, msg := failure(r, err)
		h.render(w, r, status, "login.html", loginView{layout: layout{Error: msg}, Email: email})
		return
	}
	h.setSession(w, res.Token, res.ExpiresAt)
	redirect(w, r, "/")
}

func (h *Handler) registerForm(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUserID(r.Context()) != 0 {
		redirect(w, r, "/")
		return
	}
	h.render(w, r, http.StatusOK, "register.html", registerView{})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "register.html", registerView{layout: layout{Error: "Invalid form submission"}})
		return
	}
	view := registerView{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Email:       strings.TrimSpace(r.FormValue("email")),
		DateOfBirth: strings.TrimSpace(r.FormValue("dateOfBirth")),
	}
	password := r.FormValue("password")

	var dob *time.Time
	if view.DateOfBirth != "" {
		t, err := models.ParseDay(view.DateOfBirth)
		if err != nil {
			view.Error = "Date of birth must be a valid date"
			h.render(w, r, http.StatusBadRequest, "register.html", view)
			return
		}
		dob = &t
	}

	if _, err := h.svc.Users.Register(r.Context(), view.Name, view.Email, password, dob); err != nil {
		status, msg := failure(r, err)
		view.Error = msg
		h.render(w, r, status, "register.html", view)
		return
	}
	res, err := h.svc.Users.Authenticate(r.Context(), view.Email, password, h.tokens.Key, h.tokens.Issuer)
	if err != nil {
		status, msg := failure(r, err)
		h.render(w, r, status, "login.html", loginView{layout: layout{Error: msg}, Email: view.Email})
		return
	}
	h.setSession(w, res.Token, res.ExpiresAt)
	redirect(w, r, "/")
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.clearSession(w)
	redirect(w, r, loginPath)
}
