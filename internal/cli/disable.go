package cli

import (
	"golang.org/x/sync/errgroup"

	"github.com/daymxn/vidos/internal/config"
	vderrors "github.com/daymxn/vidos/internal/errors"
	"github.com/daymxn/vidos/internal/hosts"
	"github.com/daymxn/vidos/internal/output"
	"github.com/spf13/cobra"
)

var disableCmd = &cobra.Command{
	Use:   "disable <hostname>",
	Short: "Disable a virtual domain",
	Long: `Disable a declared virtual domain without removing it: its hosts
entry is dropped, its proxy file is fully commented out, and its declared
status becomes inactive.

Examples:
  vidos disable api.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runDisable,
}

func init() {
	disableCmd.Flags().BoolVar(&noReload, "no-reload", false, "Don't reload the proxy")

	rootCmd.AddCommand(disableCmd)
}

func runDisable(cmd *cobra.Command, args []string) error {
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
		_, err := env.hosts.Remove(hosts.EntryFor(domain))
		return err
	})
	group.Go(func() error {
		_, err := env.proxy.DisableDomain(domain)
		return err
	})
	if err := group.Wait(); err != nil {
		return err
	}

	domain.SetStatus(config.StatusInactive)
	if err := saveConfig(env.cfg); err != nil {
		return err
	}

	if err := refreshProxy(env, noReload); err != nil {
		output.Warn("Domain disabled but proxy reload failed: %v", err)
	}

	return outputResult(
		CommandResult{Success: true, Domain: source, Action: "disable"},
		"Domain %s disabled", source,
	)
}
