package cmd

import (
	"context"
	"decide-backend/config"
	"decide-backend/internal/database"
	"decide-backend/pkg/logger"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:           "decide-backend",
	Short:         "Eisenhower matrix decision service",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		logger.Sync()
		os.Exit(1)
	}
}

// bootstrap loads configuration, starts logging and connects storage.
func bootstrap() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to init logger")
	}

	if _, err := database.Connect(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if cfg.RedisEnabled() {
		if err := database.ConnectRedis(context.Background(), cfg); err != nil {
			return nil, errors.Wrap(err, "failed to connect redis")
		}
	} else {
		logger.Log.Warn("REDIS_HOST not set, running without cache and token denylist")
	}

	logger.Log.Info("Storage connected", zap.String("driver", cfg.DBDriver))
	return cfg, nil
}
