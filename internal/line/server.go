package line

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mtakahash/recipedog/internal/logger"
)

// Server hosts the webhook callback and a liveness endpoint.
type Server struct {
	webhook *Webhook
	log     *logger.Logger
	httpSrv *http.Server
}

// NewServer creates the HTTP server for the given listen address.
func NewServer(addr string, webhook *Webhook, log *logger.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /callback", webhook.Callback)
	mux.HandleFunc("GET /healthz", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
		rw.Write([]byte("ok"))
	})

	return &Server{
		webhook: webhook,
		log:     log,
		httpSrv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run serves until the context is cancelled, then shuts down gracefully and
// waits for in-flight event handlers to drain.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.ListenAndServe()
	}()

	s.log.Info("listening on %s", s.httpSrv.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		s.log.Error("shutdown: %v", err)
		return err
	}
	s.webhook.Wait()
	s.log.Info("server stopped")
	return nil
}
