package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/api/graphql"
	"github.com/youridegraef/qash-backend-sub000/internal/api/pages"
	"github.com/youridegraef/qash-backend-sub000/internal/api/rest"
	"github.com/youridegraef/qash-backend-sub000/internal/api/rpc"
	"github.com/youridegraef/qash-backend-sub000/internal/auth"
	"github.com/youridegraef/qash-backend-sub000/internal/backend"
	"github.com/youridegraef/qash-backend-sub000/internal/config"
	"github.com/youridegraef/qash-backend-sub000/internal/metrics"
	"github.com/youridegraef/qash-backend-sub000/internal/middleware"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
	"github.com/youridegraef/qash-backend-sub000/pkg/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

// run serves until ctx is cancelled, then shuts down within
// cfg.ShutdownTimeout.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	hasher, err := auth.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	svc := service.New(store, hasher, cfg.JWTTTL, logger)
	tokens := api.NewTokens(cfg.JWTKey, cfg.JWTIssuer, cfg.JWTTTL)

	handler, err := newHandler(svc, tokens, cfg.CookieSecure)
	if err != nil {
		return err
	}

	// h2c lets Connect clients use HTTP/2 without TLS.
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", "address", cfg.HTTPAddr, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newHandler assembles every adapter behind one router:
//
//	/health, /metrics     operations
//	/api/...              REST
//	/graphql              GraphQL
//	/qash.v1.LedgerService/...  Connect RPC
//	/...                  server-rendered pages
func newHandler(svc *service.Services, tokens api.Tokens, secureCookie bool) (http.Handler, error) {
	pagesRouter, err := pages.NewRouter(svc, tokens, secureCookie)
	if err != nil {
		return nil, err
	}
	rpcPath, rpcHandler := rpc.NewHandler(svc, tokens)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger, middleware.Instrument)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	r.With(corsMiddleware).Mount("/api", rest.NewRouter(svc, tokens))
	r.With(corsMiddleware).Handle("/graphql", graphql.NewHandler(svc, tokens))
	r.With(corsMiddleware).Handle(rpcPath+"*", rpcHandler)
	r.Mount("/", pagesRouter)
	return r, nil
}

// corsMiddleware adds CORS headers for browser clients of the API routes.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, "+middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
