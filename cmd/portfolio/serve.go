package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"portfolio.dev/internal/config"
	"portfolio.dev/internal/handlers"
	"portfolio.dev/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio site and its JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func runServe(ctx context.Context) error {
	projectService, err := newProjectService(cfg)
	if err != nil {
		return err
	}
	defer projectService.Close()

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		return err
	}

	router := handlers.SetupRoutes(cfg, projectService, services.NewProfileService(profile), logger.Named("http"))
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting",
			zap.String("addr", cfg.Server.Addr),
			zap.String("account", cfg.GitHub.Account))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
