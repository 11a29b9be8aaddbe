package bootstrap

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go-leave/internal/config"

	"go.uber.org/zap"
)

var shutdownTimeout = 10 * time.Second

func NewHTTPServer(handler http.Handler, cfg config.ServerConfig) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// StartHTTPServer runs the server until SIGINT or SIGTERM, then shuts it
// down gracefully.
func StartHTTPServer(handler http.Handler, cfg config.ServerConfig, events LifecycleLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return err
	}
	return Serve(ctx, NewHTTPServer(handler, cfg), ln, events)
}

// Serve accepts connections on ln until ctx is cancelled.
func Serve(ctx context.Context, server *http.Server, ln net.Listener, events LifecycleLogger) error {
	errCh := make(chan error, 1)

	go func() {
		zap.L().Info("HTTP server running", zap.String("addr", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	events.Log(ctx, LifecycleEvent{
		Action:  "SERVER_START",
		Message: "Server is accepting connections",
		Meta:    map[string]any{"addr": ln.Addr().String()},
	})

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	events.Log(context.Background(), LifecycleEvent{
		Action:  "SERVER_SHUTDOWN",
		Message: "Server is shutting down",
		Meta:    map[string]any{"cause": context.Cause(ctx).Error()},
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Forced shutdown", zap.Error(err))
		return err
	}
	zap.L().Info("Server exited gracefully")
	return nil
}
