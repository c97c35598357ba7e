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

	"github.com/katalvlaran/critters/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API and the replay WebSocket",
	Long: `Routes:
  GET  /api/health
  POST /api/turtle/zigzag     {"matrix"?}
  POST /api/turtle/spiral     {"matrix"?, "start": {"row", "col"}}
  POST /api/turtle/routes     {"matrix"?, "start_value", "end_value"}
  POST /api/squirrel/parse    {"input"?, "ceiling"?}
  POST /api/squirrel/simulate {"input"?, "ceiling"?}
  GET  /api/squirrel/stream?input=...   (WebSocket)`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
	}
	srv := &http.Server{
		Handler:           api.NewHandler(*cfg, logger).Router(),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		// streams end with the server context
		BaseContext: func(net.Listener) context.Context { return ctx },
		ErrorLog:    zap.NewStdLog(logger),
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info("server is running", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err = eg.Wait(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info("server stopped")

	return nil
}
