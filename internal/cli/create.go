package cli

import (
	"golang.org/x/sync/errgroup"

	"github.com/daymxn/vidos/internal/config"
	vderrors "github.com/daymxn/vidos/internal/errors"
	"github.com/daymxn/vidos/internal/hosts"
	"github.com/daymxn/vidos/internal/output"
	"github.com/spf13/cobra"
)

var noReload bool

var createCmd = &cobra.Command{
	Use:   "create <hostname> <ip:port>",
	Short: "Declare a new virtual domain",
	Long: `Declare a new virtual domain mapping a hostname to a local ip:port.

The hosts file gains a managed entry for the hostname and the managed nginx
directory gains a generated server block routing the hostname to the
destination.

Examples:
  vidos create api.example.com 127.0.0.1:5001
  vidos create web.example.com 127.0.0.1:3000 --no-reload`,
	Args: cobra.ExactArgs(2),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().BoolVar(&noReload, "no-reload", false, "Don't reload the proxy")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	source, destination := args[0], args[1]

	domain, err := config.NewDomain(source, destination)
	if err != nil {
		return err
	}

	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	if env.cfg.DomainByName(source) != nil {
		return vderrors.AlreadyExists(source)
	}

	// The hosts entry and the proxy file are independent; write both
	// concurrently and join before the declared config is saved.
	var group errgroup.Group
	group.Go(func() error {
		_, err := env.hosts.Add(hosts.EntryFor(domain))
		return err
	})
	group.Go(func() error {
		if _, err := env.proxy.EnsureCommonSettings(); err != nil {
			return err
		}
		_, err := env.proxy.AddDomain(domain)
		return err
	})
	if err := group.Wait(); err != nil {
		return err
	}

	if err := env.cfg.AddDomain(domain); err != nil {
		return err
	}
	if err := saveConfig(env.cfg); err != nil {
		return err
	}

	if err := refreshProxy(env, noReload); err != nil {
		output.Warn("Domain created but proxy reload failed: %v", err)
	}

	return outputResult(
		CommandResult{Success: true, Domain: source, Destination: destination, Action: "create"},
		"Domain %s -> %s created", source, destination,
	)
}
