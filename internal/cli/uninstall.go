package cli

import (
	"path/filepath"

	"github.com/daymxn/vidos/internal/input"
	"github.com/daymxn/vidos/internal/logger"
	"github.com/daymxn/vidos/internal/nginx"
	"github.com/daymxn/vidos/internal/output"
	"github.com/spf13/cobra"
)

var uninstallYes bool

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove everything vidos manages",
	Long: `Remove everything vidos manages: every managed hosts entry, every
generated proxy file, the include line in the main nginx config, and the
declared configuration document. Foreign hosts lines and the nginx install
itself are left untouched.

Examples:
  vidos uninstall
  vidos uninstall --yes`,
	RunE: runUninstall,
}

func init() {
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	if !uninstallYes {
		output.Warn("This removes all managed hosts entries and proxy files.")
		output.Print("Continue? [y/N]: ")
		if !input.Confirm(deps.StdinReader) {
			output.Info("Aborted")
			return nil
		}
	}

	if found, err := env.process.Kill(); err != nil {
		output.Warn("Failed to kill proxy: %v", err)
	} else if found {
		output.Info("Proxy killed")
	}

	// Reconciling against an empty set strips every managed line while
	// preserving foreign ones.
	if _, err := env.hosts.Reconcile(nil); err != nil {
		return err
	}

	if env.cfg.Settings.NginxInstallPath != "" {
		if _, err := env.proxy.Unlink(); err != nil {
			logger.Warn("unlink failed: %v", err)
		}

		names, err := env.proxy.ListManaged()
		if err != nil {
			logger.Warn("list managed directory failed: %v", err)
		}
		for _, name := range names {
			if err := deps.FileStore.Delete(filepath.Join(env.proxy.ManagedDir(), name)); err != nil {
				output.Warn("Failed to delete %s: %v", name, err)
			}
		}
		if deps.FileStore.Exists(env.proxy.CommonSettingsPath()) {
			if err := deps.FileStore.Delete(env.proxy.CommonSettingsPath()); err != nil {
				output.Warn("Failed to delete %s: %v", nginx.CommonSettingsFile, err)
			}
		}
	}

	if err := deps.ConfigLoader.Delete(); err != nil {
		return err
	}

	return outputResult(
		CommandResult{Success: true, Action: "uninstall"},
		"Uninstalled",
	)
}
