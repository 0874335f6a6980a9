package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Ayflow350/lexend-jobs/internal/server"
	"github.com/Ayflow350/lexend-jobs/internal/session"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the wizard API and web pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, nil)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

// serve runs the HTTP server until ctx is done, then drains it within the
// configured shutdown timeout. ready, when set, receives the bound address.
func (a *app) serve(ctx context.Context, ready chan<- string) error {
	cat, err := a.catalog()
	if err != nil {
		return err
	}

	registry := session.NewRegistry(session.FlowFactory(a.flowOptions(cat)...),
		session.WithTTL(a.cfg.Sessions.TTL.Std()),
		session.WithSweepInterval(a.cfg.Sessions.Sweep.Std()),
		session.WithLogger(a.logger),
	)
	defer func() { _ = registry.Close() }()

	srv, err := server.New(a.cfg.Server, registry,
		server.WithLogger(a.logger),
		server.WithCatalog(cat),
	)
	if err != nil {
		return err
	}
	httpServer := srv.HTTPServer()

	ln, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", httpServer.Addr, err)
	}
	a.logger.Info("lexend listening", zap.String("addr", ln.Addr().String()))
	if ready != nil {
		ready <- ln.Addr().String()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout.Std())
		defer cancel()
		a.logger.Info("lexend shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
