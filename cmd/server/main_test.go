package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/auth"
	"github.com/youridegraef/qash-backend-sub000/internal/config"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
	"github.com/youridegraef/qash-backend-sub000/internal/storage/memory"
)

const testKey = "0123456789abcdef0123456789abcdef"

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	svc := service.New(memory.New(), hasher, time.Hour, discard())
	handler, err := newHandler(svc, api.NewTokens(testKey, "qash-test", time.Hour), false)
	require.NoError(t, err)
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestRoutes(t *testing.T) {
	server := newTestServer(t)
	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		ctype  string
		status int
	}{
		{"health", http.MethodGet, "/health", "", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK},
		{"rest requires token", http.MethodGet, "/api/transactions", "", "", http.StatusUnauthorized},
		{"rest public login", http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"x"}`, "application/json", http.StatusNotFound},
		{"graphql requires token", http.MethodPost, "/graphql", `{"query":"{ me { id } }"}`, "application/json", http.StatusUnauthorized},
		{"rpc requires token", http.MethodPost, "/qash.v1.LedgerService/GetSummary", `{}`, "application/json", http.StatusUnauthorized},
		{"rpc unknown procedure", http.MethodPost, "/qash.v1.LedgerService/Nope", `{}`, "application/json", http.StatusNotFound},
		{"login page", http.MethodGet, "/login", "", "", http.StatusOK},
		{"dashboard redirects", http.MethodGet, "/", "", "", http.StatusSeeOther},
		{"cors preflight", http.MethodOptions, "/api/transactions", "", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, server.URL+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)
			if tt.ctype != "" {
				req.Header.Set("Content-Type", tt.ctype)
			}
			resp, err := client.Do(req)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
		})
	}
}

func TestMetricsCountRequests(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `qash_http_requests_total{method="GET",route="/health",status="200"}`)
}

func TestRunShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	cfg := &config.Config{
		HTTPAddr:        addr,
		ShutdownTimeout: time.Second,
		DBDriver:        config.DriverMemory,
		JWTKey:          testKey,
		JWTIssuer:       "qash-test",
		JWTTTL:          time.Hour,
		BcryptCost:      bcrypt.MinCost,
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, discard()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
