package cli

import (
	"golang.org/x/sync/errgroup"

	vderrors "github.com/daymxn/vidos/internal/errors"
	"github.com/daymxn/vidos/internal/hosts"
	"github.com/daymxn/vidos/internal/output"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <hostname>",
	Aliases: []string{"delete", "rm"},
	Short:   "Remove a declared virtual domain",
	Long: `Remove a declared virtual domain: its managed hosts entry, its
generated proxy file, and its entry in the declared configuration.

Examples:
  vidos remove api.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVar(&noReload, "no-reload", false, "Don't reload the proxy")

	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
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
		_, err := env.proxy.RemoveDomain(domain)
		return err
	})
	if err := group.Wait(); err != nil {
		return err
	}

	if err := env.cfg.RemoveDomain(source); err != nil {
		return err
	}
	if err := saveConfig(env.cfg); err != nil {
		return err
	}

	if err := refreshProxy(env, noReload); err != nil {
		output.Warn("Domain removed but proxy reload failed: %v", err)
	}

	return outputResult(
		CommandResult{Success: true, Domain: source, Action: "remove"},
		"Domain %s removed", source,
	)
}
