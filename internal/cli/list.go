package cli

import (
	"github.com/daymxn/vidos/internal/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all declared virtual domains",
	Long: `List all declared virtual domains in declaration order.

Examples:
  vidos list
  vidos ls
  vidos list --json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

type domainListItem struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
	ProxyFile   string `json:"proxy_file"`
}

func runList(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	items := make([]domainListItem, 0, len(env.cfg.Domains))
	for _, d := range env.cfg.Domains {
		proxyFile := "missing"
		if env.proxy.Exists(d) {
			proxyFile = d.ConfigFileName()
		}
		items = append(items, domainListItem{
			Source:      d.Source,
			Destination: d.Destination,
			Status:      string(d.Status),
			ProxyFile:   proxyFile,
		})
	}

	if len(items) == 0 {
		if jsonOutput {
			return output.JSON([]domainListItem{})
		}
		output.Info("No virtual domains declared")
		return nil
	}

	if jsonOutput {
		return output.JSON(items)
	}

	headers := []string{"SOURCE", "DESTINATION", "STATUS", "PROXY FILE"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.Source, item.Destination, item.Status, item.ProxyFile})
	}

	output.Table(headers, rows)
	return nil
}
