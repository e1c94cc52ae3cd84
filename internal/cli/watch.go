package cli

import (
	"os/signal"
	"syscall"

	"github.com/daymxn/vidos/internal/logger"
	"github.com/daymxn/vidos/internal/output"
	"github.com/daymxn/vidos/internal/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the configuration and reconcile on change",
	Long: `Watch the declared configuration document and run a full refresh
whenever it changes. Runs until interrupted.

Examples:
  vidos watch`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Verify the configuration loads before starting the watch.
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	if !env.cfg.Settings.AutoRefresh {
		output.Warn("auto_refresh is off; watching anyway")
	}

	path, err := deps.ConfigLoader.Path()
	if err != nil {
		return err
	}

	w := watcher.New(path, func() {
		logger.Info("configuration changed, refreshing")
		if err := runRefresh(cmd, nil); err != nil {
			output.Error("Refresh failed: %v", err)
		}
	})
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	output.Info("Watching %s (ctrl-c to stop)", path)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	output.Info("Stopped")
	return nil
}
