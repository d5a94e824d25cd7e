package rest

import (
	"net/http"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/middleware"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
)

type transactionRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        Date    `json:"date"`
	CategoryID  int     `json:"categoryId"`
	TagIDs      []int   `json:"tagIds"`
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	page, pageSize, paged, ok := pageParams(w, r)
	if !ok {
		return
	}
	userID := middleware.GetUserID(r.Context())

	var (
		txs []service.TransactionDTO
		err error
	)
	if paged {
		txs, err = h.svc.Transactions.GetByUserIDPaged(r.Context(), userID, page, pageSize)
	} else {
		txs, err = h.svc.Transactions.GetByUserID(r.Context(), userID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Transactions.GetSummary(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) getTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	tx, ok := owned(w, r, middleware.GetUserID(r.Context()), id, service.EntityTransaction, h.svc.Transactions.GetByID, api.TransactionOwner)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !decodeJSON(w, r, &req) || !requireDate(w, "date", req.Date) {
		return
	}
	userID := middleware.GetUserID(r.Context())
	if !h.ownsReferences(w, r, userID, req.CategoryID, req.TagIDs) {
		return
	}
	tx, err := h.svc.Transactions.Add(r.Context(), req.Description, req.Amount, req.Date.Time, userID, req.CategoryID, req.TagIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (h *Handler) updateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(r.Context())
	if _, ok := owned(w, r, userID, id, service.EntityTransaction, h.svc.Transactions.GetByID, api.TransactionOwner); !ok {
		return
	}
	var req transactionRequest
	if !decodeJSON(w, r, &req) || !requireDate(w, "date", req.Date) {
		return
	}
	if !h.ownsReferences(w, r, userID, req.CategoryID, req.TagIDs) {
		return
	}
	ok = h.svc.Transactions.Edit(r.Context(), id, req.Amount, req.Description, req.Date.Time, userID, req.CategoryID, req.TagIDs)
	writeOutcome(w, ok, service.EntityTransaction, id)
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, ok := owned(w, r, middleware.GetUserID(r.Context()), id, service.EntityTransaction, h.svc.Transactions.GetByID, api.TransactionOwner); !ok {
		return
	}
	writeOutcome(w, h.svc.Transactions.Delete(r.Context(), id), service.EntityTransaction, id)
}

// ownsReferences writes a 404 when the category or a tag belongs to
// someone else.
func (h *Handler) ownsReferences(w http.ResponseWriter, r *http.Request, userID, categoryID int, tagIDs []int) bool {
	if err := api.CheckReferences(r.Context(), h.svc, userID, categoryID, tagIDs); err != nil {
		writeError(w, r, err)
		return false
	}
	return true
}
