package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/models"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode response", "error", err)
	}
}

// writeError answers with the status mapped from err. Server-side failures
// are logged with their cause.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := api.StatusCode(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"cause", errors.Unwrap(err),
		)
	}
	writeJSON(w, status, errorResponse{Error: api.Message(err)})
}

func badRequest(w http.ResponseWriter, format string, args ...any) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf(format, args...)})
}

// writeOutcome maps the bool result of an Edit or Delete to 204 or 404.
func writeOutcome(w http.ResponseWriter, ok bool, entity string, id int) {
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("%s %d was not changed", entity, id)})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		badRequest(w, "invalid request body: %v", err)
		return false
	}
	return true
}

// requireDate writes a 400 when a date field was missing or null.
func requireDate(w http.ResponseWriter, name string, d Date) bool {
	if d.IsZero() {
		badRequest(w, "%s is required", name)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		badRequest(w, "invalid %s %q", name, raw)
		return 0, false
	}
	return id, true
}

// pageParams reads ?page=&pageSize=. paged is false when neither is set.
func pageParams(w http.ResponseWriter, r *http.Request) (page, pageSize int, paged, ok bool) {
	q := r.URL.Query()
	if q.Get("page") == "" && q.Get("pageSize") == "" {
		return 0, 0, false, true
	}
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		badRequest(w, "invalid page %q", q.Get("page"))
		return 0, 0, false, false
	}
	pageSize, err = strconv.Atoi(q.Get("pageSize"))
	if err != nil {
		badRequest(w, "invalid pageSize %q", q.Get("pageSize"))
		return 0, 0, false, false
	}
	return page, pageSize, true, true
}

// Date is a calendar date on the wire, written as YYYY-MM-DD. Full RFC 3339
// timestamps are accepted and truncated to their day.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := models.ParseDay(s)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return fmt.Errorf("date %q must be YYYY-MM-DD", s)
		}
	}
	d.Time = models.Day(t)
	return nil
}

func queryDate(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	t, err := models.ParseDay(raw)
	if err != nil {
		badRequest(w, "invalid %s %q: must be YYYY-MM-DD", name, raw)
		return time.Time{}, false
	}
	return t, true
}

// owned loads a resource and hides it when it belongs to another user.
func owned[T any](w http.ResponseWriter, r *http.Request, userID, id int, entity string,
	get func(context.Context, int) (*T, error), owner func(*T) int) (*T, bool) {
	v, err := api.Owned(r.Context(), userID, id, entity, get, owner)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return v, true
}

func dateOrNil(d *Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
