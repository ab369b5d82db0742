package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"refugio-adopciones/internal/config"
	"refugio-adopciones/internal/platform/logger"
	"refugio-adopciones/internal/router"

	"github.com/spf13/cobra"
)

// @title Refugio Adopciones API
// @version 1.0
// @description Catálogo de perros en adopción del refugio, panel de admin y pedidos de información.
// @BasePath /
func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "refugio-api",
		Short:         "API del refugio: catálogo de perros, panel de admin y pedidos de adopción",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "archivo .env a cargar (si existe)")

	load := func() (*config.Config, logger.Logger, error) {
		cfg, err := config.Load(envFile)
		if err != nil {
			return nil, nil, err
		}
		log := logger.New(logger.Options{
			Level:  logger.ParseLevel(cfg.Log.Level),
			Format: logger.ParseFormat(cfg.Log.Format),
			App:    cfg.Log.App,
		})
		return cfg, log, nil
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, log)
		},
	}

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el schema de Postgres (DB_DSN)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			return runMigrate(cmd.Context(), cfg, log)
		},
	}

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Carga los perros de ejemplo si el catálogo está vacío",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			return runSeed(cmd.Context(), cfg, log)
		},
	}

	root.AddCommand(serve, migrate, seed)
	// sin subcomando => serve
	root.RunE = serve.RunE
	return root
}

func runServe(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := buildDeps(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	r := router.NewRouter(router.Options{
		Config:       cfg,
		Log:          log,
		DB:           deps.DB,
		Blobs:        deps.Blobs,
		AuthVerifier: deps.Verifier,
		Sender:       deps.Sender,
		Recorder:     deps.Recorder,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":      cfg.Addr(),
			"auth_mode": cfg.Auth.Mode,
			"notifier":  cfg.Notifier.Mode,
			"postgres":  deps.DB != nil,
		})
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

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
