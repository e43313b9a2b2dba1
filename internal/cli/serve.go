package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	artifactService "adsbuilder/internal/application/artifact"
	authService "adsbuilder/internal/application/auth"
	buildService "adsbuilder/internal/application/build"
	"adsbuilder/internal/delivery/http/handler"
	"adsbuilder/internal/delivery/http/router"
	"adsbuilder/internal/infrastructure/config"
	"adsbuilder/internal/infrastructure/database"
	"adsbuilder/internal/infrastructure/repository"
)

const shutdownTimeout = 5 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API that stores builds, applies edits and serves
JSON and CSV exports. The server stops cleanly on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), GetConfig(cmd.Context()), GetLogger(cmd.Context()))
		},
	}

	cmd.Flags().String("port", "", "port to listen on")
	cmd.Flags().String("storage-path", "", "directory for published exports")
	cmd.Flags().String("database-path", "", "path to the SQLite database")

	return cmd
}

// newHandler wires repositories, services and handlers into the router
func newHandler(cfg *config.Config, db *database.DB, logger *zap.Logger) (http.Handler, error) {
	artifactRepo, err := repository.NewFilesystemRepository(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	buildRepo := repository.NewBuildRepository(db, cfg.Limits)

	authSvc := authService.NewService(userRepo, sessionRepo, time.Duration(cfg.TokenExpiry)*time.Hour, logger)
	buildSvc := buildService.NewService(buildRepo, artifactRepo, cfg.Limits, logger)
	artifactSvc := artifactService.NewService(artifactRepo)

	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authSvc, logger),
		Build:    handler.NewBuildHandler(buildSvc, cfg.MaxUploadSize, logger),
		Artifact: handler.NewArtifactHandler(artifactSvc, logger),
	}
	return router.Setup(handlers, authSvc, cfg.AllowedOrigins, logger), nil
}

func runServe(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	h, err := newHandler(cfg, db, logger)
	if err != nil {
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server",
		zap.String("addr", "http://localhost"+srv.Addr),
		zap.String("storage", cfg.StoragePath),
		zap.String("database", cfg.DatabasePath),
		zap.Any("limits", cfg.Limits),
	)

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
