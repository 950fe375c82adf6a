// Command catalogstub serves the demo assortment over HTTP so the storefront
// can be run against a real network endpoint during development.
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

	"github.com/spf13/pflag"

	"maxgear/internal/catalog/memory"
	"maxgear/internal/catalog/stub"
	"maxgear/internal/logging"
)

func main() {
	addr := pflag.StringP("addr", "a", "127.0.0.1:8000", "Listen address")
	latency := pflag.Duration("latency", 0, "Artificial delay added to every search")
	level := pflag.String("log-level", "info", "Log level (debug, info, warn, error)")
	format := pflag.String("log-format", "text", "Log format (text or json)")
	pflag.Parse()

	logger := logging.New(os.Stderr, *level, *format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, *addr, *latency, logger); err != nil {
		logger.Error("catalog stub failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func serve(ctx context.Context, addr string, latency time.Duration, logger *slog.Logger) error {
	products := memory.New(memory.SeedProducts(), memory.WithLatency(latency))

	srv := &http.Server{
		Addr:              addr,
		Handler:           stub.NewRouter(products, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("catalog stub listening",
			slog.String("addr", addr),
			slog.Int("products", products.Len()),
			slog.Duration("latency", latency),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
