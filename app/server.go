package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/ssbu-bot/app/shared/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// newHTTPRouter builds the router for health, metrics and the module APIs.
func (a *App) newHTTPRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)

	r.Get("/healthz", a.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(a.Observability.Registry.Prometheus, promhttp.HandlerOpts{}))
	return r
}

// handleHealth reports whether the database and the job queue answer.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := a.DB.PingContext(ctx); err != nil {
		a.Observability.Provider.Logger.WarnContext(ctx, "Health check failed: database", attr.Error(err))
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	if a.Queue != nil {
		if err := a.Queue.HealthCheck(ctx); err != nil {
			a.Observability.Provider.Logger.WarnContext(ctx, "Health check failed: queue", attr.Error(err))
			http.Error(w, "queue unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// serveHTTP runs the HTTP server until ctx is cancelled.
func (a *App) serveHTTP(ctx context.Context) error {
	logger := a.Observability.Provider.Logger
	srv := &http.Server{
		Addr:              a.Config.HTTP.Address,
		Handler:           a.HTTPRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", attr.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", attr.Error(err))
		return err
	}
	logger.Info("HTTP server stopped")
	return nil
}
