package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youridegraef/qash-backend-sub000/internal/auth"
	"github.com/youridegraef/qash-backend-sub000/internal/metrics"
	"github.com/youridegraef/qash-backend-sub000/internal/models"
)

const testKey = "0123456789abcdef0123456789abcdef"

func testToken(t *testing.T, m *auth.JWTManager, id int) string {
	t.Helper()
	token, _, err := m.Generate(&models.User{ID: id, Email: "u" + strconv.Itoa(id) + "@example.com"})
	require.NoError(t, err)
	return token
}

// whoami echoes the authenticated user id.
var whoami = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(strconv.Itoa(GetUserID(r.Context())) + " " + GetEmail(r.Context())))
})

func TestRequireBearer(t *testing.T) {
	m := auth.NewJWTManager(testKey, "qash", time.Hour)
	h := RequireBearer(m)(whoami)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid token", "Bearer " + testToken(t, m, 7), http.StatusOK, "7 u7@example.com"},
		{"missing header", "", http.StatusUnauthorized, `{"error":"authorization token required"}` + "\n"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, ""},
		{
			"foreign issuer",
			"Bearer " + testToken(t, auth.NewJWTManager(testKey, "other", time.Hour), 7),
			http.StatusUnauthorized, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestRequireCookie(t *testing.T) {
	m := auth.NewJWTManager(testKey, "qash", time.Hour)
	h := RequireCookie(m, "/login")(whoami)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: testToken(t, m, 3)})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3 u3@example.com", rec.Body.String())
}

func TestOptionalCookie(t *testing.T) {
	m := auth.NewJWTManager(testKey, "qash", time.Hour)
	h := OptionalCookie(m)(whoami)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "expired-or-bad"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "0 ", rec.Body.String())
}

func TestRequestLogger(t *testing.T) {
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.Header.Get(RequestIDHeader)))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	id := rec.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestInstrument(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Instrument)
	r.Get("/probe/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/probe/{id}", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/probe/"+id, nil))
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}
