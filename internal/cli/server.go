package cli

import (
	"github.com/daymxn/vidos/internal/output"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the proxy",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		running, err := env.process.IsRunning()
		if err != nil {
			return err
		}
		if running {
			output.Info("Proxy already running")
			return nil
		}

		if err := env.process.Start(); err != nil {
			return err
		}
		return outputResult(
			CommandResult{Success: true, Action: "start"},
			"Proxy started",
		)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the proxy gracefully",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		if err := env.process.Stop(); err != nil {
			return err
		}
		return outputResult(
			CommandResult{Success: true, Action: "stop"},
			"Proxy stopped",
		)
	},
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload the proxy configuration",
	Long: `Reload the proxy configuration gracefully. Starts the proxy if it
is not running; an actual reload failure is reported, never papered over
with a restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		if err := env.process.Reload(); err != nil {
			return err
		}
		return outputResult(
			CommandResult{Success: true, Action: "reload"},
			"Proxy reloaded",
		)
	},
}

var killCmd = &cobra.Command{
	Use:   "kill",
	Short: "Forcibly terminate the proxy",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		found, err := env.process.Kill()
		if err != nil {
			return err
		}
		if !found {
			output.Info("No proxy instance found")
			return nil
		}
		return outputResult(
			CommandResult{Success: true, Action: "kill"},
			"Proxy killed",
		)
	},
}

type statusResult struct {
	Running bool `json:"running"`
	Linked  bool `json:"linked"`
	Domains int  `json:"domains"`
	Active  int  `json:"active"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show proxy and domain status",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		running, err := env.process.IsRunning()
		if err != nil {
			return err
		}
		linked, err := env.proxy.Linked()
		if err != nil {
			linked = false
		}

		result := statusResult{
			Running: running,
			Linked:  linked,
			Domains: len(env.cfg.Domains),
			Active:  len(env.cfg.ActiveDomains()),
		}

		if jsonOutput {
			return output.JSON(result)
		}

		if result.Running {
			output.Success("Proxy running")
		} else {
			output.Warn("Proxy not running")
		}
		if result.Linked {
			output.Info("Managed directory linked into main config")
		} else {
			output.Warn("Managed directory not linked into main config")
		}
		output.Print("%d domain(s) declared, %d active", result.Domains, result.Active)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(killCmd)
	rootCmd.AddCommand(statusCmd)
}
