package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/codezworl/spamshield/internal/core"
	"github.com/codezworl/spamshield/internal/di"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the spam detection service",
	Long:  `Start the configured frontend (HTTP API or SMTP proxy) and serve until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := di.BuildContainer()
		if err != nil {
			return fmt.Errorf("failed to build dependency container: %w", err)
		}
		return container.Invoke(runService)
	},
}

// runService is the main service function that gets all dependencies injected
func runService(logger *zap.Logger, frontend core.Frontend, cache core.VerdictCache) error {
	defer logger.Sync()

	if err := frontend.Start(); err != nil {
		return fmt.Errorf("failed to start frontend: %w", err)
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	if err := frontend.Stop(); err != nil {
		logger.Error("Failed to stop frontend", zap.Error(err))
	}

	// Stop the cache if it runs background cleanup
	if stopper, ok := cache.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
