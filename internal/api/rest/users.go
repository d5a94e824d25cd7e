package rest

import (
	"net/http"

	"github.com/youridegraef/qash-backend-sub000/internal/middleware"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
)

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth *Date  `json:"dateOfBirth"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	DateOfBirth *Date  `json:"dateOfBirth"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.svc.Users.Register(r.Context(), req.Name, req.Email, req.Password, dateOrNil(req.DateOfBirth))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, service.NewUserDTO(user))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.Users.Authenticate(r.Context(), req.Email, req.Password, h.tokens.Key, h.tokens.Issuer)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Users.GetByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, service.NewUserDTO(user))
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.svc.Users.GetByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	user.Name = req.Name
	user.Email = req.Email
	user.DateOfBirth = dateOrNil(req.DateOfBirth)
	if err := h.svc.Users.Update(r.Context(), user); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Users.Delete(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
