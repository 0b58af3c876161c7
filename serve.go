package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"

	"scenario-runner/internal/handler"
)

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default :$PORT or :8080)")
	return cmd
}

func runServe(cmd *cobra.Command) error {
	e, err := loadEnv(cmd, os.Stderr)
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("addr"); f != nil && f.Value.String() != "" {
		e.cfg.Addr = f.Value.String()
	}

	h := handler.New(e.runner, e.cfg.DefaultJurisdiction, e.registry, e.logger)
	srv := &fasthttp.Server{
		Handler:     h.Handle,
		Name:        "scenario-runner",
		ReadTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		e.logger.Info("scenario runner starting",
			"addr", e.cfg.Addr,
			"api", e.cfg.APIBaseURL,
			"default_mode", e.cfg.DefaultJurisdiction)
		errCh <- srv.ListenAndServe(e.cfg.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	e.logger.Info("shutting down")
	return srv.ShutdownWithContext(shutdownCtx)
}
