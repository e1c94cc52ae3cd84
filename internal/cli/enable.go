package cli

import (
	"golang.org/x/sync/errgroup"

	"github.com/daymxn/vidos/internal/config"
	vderrors "github.com/daymxn/vidos/internal/errors"
	"github.com/daymxn/vidos/internal/hosts"
	"github.com/daymxn/vidos/internal/output"
	"github.com/spf13/cobra"
)

var enableCmd = &cobra.Command{
	Use:   "enable <hostname>",
	Short: "Enable a virtual domain",
	Long: `Enable a declared virtual domain: its hosts entry is restored, its
proxy file is uncommented, and its declared status becomes active.

Examples:
  vidos enable api.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runEnable,
}

func init() {
	enableCmd.Flags().BoolVar(&noReload, "no-reload", false, "Don't reload the proxy")

	rootCmd.AddCommand(enableCmd)
}

func runEnable(cmd *cobra.Command, args []string) error {
	source := args[0]

	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	domain := env.cfg.DomainByName(source)
	if domain == nil {
		return vderrors.NotFound(source)
	}

	var group errgroup.Group
	group.Go(func() error {
		_, err := env.hosts.Add(hosts.EntryFor(domain))
		return err
	})
	group.Go(func() error {
		_, err := env.proxy.EnableDomain(domain)
		return err
	})
	if err := group.Wait(); err != nil {
		return err
	}

	domain.SetStatus(config.StatusActive)
	if err := saveConfig(env.cfg); err != nil {
		return err
	}

	if err := refreshProxy(env, noReload); err != nil {
		output.Warn("Domain enabled but proxy reload failed: %v", err)
	}

	return outputResult(
		CommandResult{Success: true, Domain: source, Action: "enable"},
		"Domain %s enabled", source,
	)
}
