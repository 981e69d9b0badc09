package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/choreboard/internal/server"
	"github.com/dukerupert/choreboard/internal/service"
)

type ServeCmd struct {
	Addr            string        `env:"CHOREBOARD_ADDR" default:":8080" help:"Listen address."`
	ReadTimeout     time.Duration `default:"5s" help:"HTTP read timeout."`
	WriteTimeout    time.Duration `default:"10s" help:"HTTP write timeout."`
	IdleTimeout     time.Duration `default:"120s" help:"HTTP idle timeout."`
	ShutdownTimeout time.Duration `default:"5s" help:"Grace period for in-flight requests on shutdown."`
	WriteRateLimit  int           `name:"write-rate-limit" env:"CHOREBOARD_WRITE_RATE_LIMIT" default:"120" help:"Write requests per minute per client IP; 0 disables."`
	WSOrigins       []string      `name:"ws-origins" env:"CHOREBOARD_WS_ORIGINS" help:"Extra origins allowed to open /ws; * allows any."`
}

func (c *ServeCmd) Run(g *Globals) error {
	logger := g.logger()

	loc, err := g.location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := g.open(ctx, true)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	srv := server.New(service.New(db, loc), server.Config{
		WriteLimit: c.WriteRateLimit,
		WSOrigins:  c.WSOrigins,
	}, logger)

	httpServer := &http.Server{
		Addr:         c.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
		IdleTimeout:  c.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("choreboard listening", "addr", c.Addr, "dialect", db.Dialect, "timezone", loc.String())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.ShutdownTimeout)
	defer cancel()

	srv.Hub().Close()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
