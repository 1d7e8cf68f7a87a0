package cmd

import (
	"context"
	"decide-backend/internal/api"
	"decide-backend/internal/database"
	"decide-backend/internal/services"
	"decide-backend/pkg/logger"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.CloseRedis()

	if err := database.Migrate(database.DB); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := services.EnsureAdminUser(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return errors.Wrap(err, "failed to ensure admin user")
	}
	services.CatalogCacheDuration = cfg.CatalogCacheTTL

	completed, err := services.CompleteAnsweredDecisions(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to complete answered decisions")
	}
	if completed > 0 {
		logger.Log.Info("Completed fully answered decisions", zap.Int("count", completed))
	}

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           api.NewRouter(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Log.Info("HTTP server listening", zap.String("addr", cfg.ServerAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
