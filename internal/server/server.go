package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"paisabot/internal/handler/webhook"
	"paisabot/internal/httputil"
	"paisabot/internal/logging"
	"paisabot/internal/logic/pipeline"
	"paisabot/internal/svc"
)

// eventRetention is how long processed event ids are kept for dedupe.
const eventRetention = 7 * 24 * time.Hour

// Run starts the webhook server and blocks until ctx is cancelled.
func Run(ctx context.Context, svcCtx *svc.ServiceContext) error {
	if err := svcCtx.DB.PurgeProcessedEvents(ctx, eventRetention); err != nil {
		logging.Warnf("failed to purge stale event ids: %v", err)
	}

	p := pipeline.New(svcCtx)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.OkJSON(w, map[string]string{"status": "ok"})
	})
	r.Get("/webhook", webhook.VerifyHandler(svcCtx))
	r.Post("/webhook", webhook.EventHandler(svcCtx, p))

	httpServer := &http.Server{
		Addr:        fmt.Sprintf(":%d", svcCtx.Config.Port),
		Handler:     r,
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		logging.Infof("webhook server listening on :%d", svcCtx.Config.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Errorf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()

	logging.Info("shutting down server gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
