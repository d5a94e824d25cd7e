package rest

import (
	"net/http"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/middleware"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
)

type tagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	page, pageSize, paged, ok := pageParams(w, r)
	if !ok {
		return
	}
	userID := middleware.GetUserID(r.Context())

	var (
		tags []service.TagDTO
		err  error
	)
	if paged {
		tags, err = h.svc.Tags.GetByUserIDPaged(r.Context(), userID, page, pageSize)
	} else {
		tags, err = h.svc.Tags.GetByUserID(r.Context(), userID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (h *Handler) getTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	t, ok := owned(w, r, middleware.GetUserID(r.Context()), id, service.EntityTag, h.svc.Tags.GetByID, api.TagOwner)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) createTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := h.svc.Tags.Add(r.Context(), req.Name, req.Color, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *Handler) updateTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(r.Context())
	if _, ok := owned(w, r, userID, id, service.EntityTag, h.svc.Tags.GetByID, api.TagOwner); !ok {
		return
	}
	var req tagRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeOutcome(w, h.svc.Tags.Edit(r.Context(), id, req.Name, req.Color, userID), service.EntityTag, id)
}

func (h *Handler) deleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, ok := owned(w, r, middleware.GetUserID(r.Context()), id, service.EntityTag, h.svc.Tags.GetByID, api.TagOwner); !ok {
		return
	}
	writeOutcome(w, h.svc.Tags.Delete(r.Context(), id), service.EntityTag, id)
}
