package cli

import (
	"golang.org/x/sync/errgroup"

	"github.com/daymxn/vidos/internal/hosts"
	"github.com/daymxn/vidos/internal/nginx"
	"github.com/daymxn/vidos/internal/output"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reconcile external state with the declared domains",
	Long: `Reconcile the hosts file and the managed nginx directory with the
declared domain set, correcting any drift caused by manual edits or partial
prior failures. Reports exactly what changed; running it twice in a row
reports no changes the second time.

Examples:
  vidos refresh
  vidos refresh --json`,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().BoolVar(&noReload, "no-reload", false, "Don't reload the proxy")

	rootCmd.AddCommand(refreshCmd)
}

// refreshResult is the combined diff of one refresh run.
type refreshResult struct {
	HostsAdded   []string `json:"hosts_added"`
	HostsRemoved []string `json:"hosts_removed"`
	FilesAdded   []string `json:"files_added"`
	FilesRemoved []string `json:"files_removed"`
	StatusFlips  []string `json:"status_flips"`
}

func runRefresh(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	// The two stores are independent; reconcile both concurrently and join
	// before reporting.
	var (
		hostsDiff hosts.Diff
		proxyDiff nginx.Diff
		group     errgroup.Group
	)
	group.Go(func() error {
		var err error
		hostsDiff, err = env.hosts.Reconcile(env.cfg.Domains)
		return err
	})
	group.Go(func() error {
		var err error
		proxyDiff, err = env.proxy.Reconcile(env.cfg.Domains)
		return err
	})
	if err := group.Wait(); err != nil {
		return err
	}

	if err := refreshProxy(env, noReload); err != nil {
		output.Warn("Refreshed but proxy reload failed: %v", err)
	}

	result := refreshResult{
		HostsAdded:   entryNames(hostsDiff.Added),
		HostsRemoved: entryNames(hostsDiff.Removed),
		FilesAdded:   proxyDiff.AddedFiles,
		FilesRemoved: proxyDiff.RemovedFiles,
		StatusFlips:  proxyDiff.StatusFlips,
	}

	if jsonOutput {
		return output.JSON(result)
	}

	if hostsDiff.Empty() && proxyDiff.Empty() {
		output.Success("Everything already in sync")
		return nil
	}

	for _, name := range result.HostsAdded {
		output.Info("hosts: added %s", name)
	}
	for _, name := range result.HostsRemoved {
		output.Info("hosts: removed %s", name)
	}
	for _, name := range result.FilesAdded {
		output.Info("proxy: created %s", name)
	}
	for _, name := range result.FilesRemoved {
		output.Info("proxy: deleted orphan %s", name)
	}
	for _, name := range result.StatusFlips {
		output.Info("proxy: normalized %s", name)
	}
	output.Success("Refresh complete")
	return nil
}

func entryNames(entries []hosts.Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}
