package cli

import (
	"fmt"

	"github.com/daymxn/vidos/internal/config"
	vderrors "github.com/daymxn/vidos/internal/errors"
	"github.com/daymxn/vidos/internal/installer"
	"github.com/daymxn/vidos/internal/nginx"
	"github.com/daymxn/vidos/internal/output"
	"github.com/spf13/cobra"
)

// nginxVersion is the release fetched by --download.
const nginxVersion = "1.26.2"

var (
	initInstallPath string
	initHostsFile   string
	initAliasDir    string
	initBackupDir   string
	initAutoRefresh bool
	initDownload    bool
	initArchiveURL  string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize vidos",
	Long: `Initialize vidos: create the declared configuration document, the
managed nginx directory and its shared settings file, and link the managed
directory into the main nginx configuration.

With --download the nginx release archive is fetched and extracted into the
install path first.

Examples:
  vidos init
  vidos init --download
  vidos init --install-path /opt/nginx --hosts-file /etc/hosts`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initInstallPath, "install-path", "", "Nginx install path (default: ~/.vidos/nginx)")
	initCmd.Flags().StringVar(&initHostsFile, "hosts-file", "", "Hosts file path (default: platform hosts file)")
	initCmd.Flags().StringVar(&initAliasDir, "alias-dir", config.DefaultAliasDir, "Managed directory name under conf/")
	initCmd.Flags().StringVar(&initBackupDir, "backup-dir", "", "Directory for hosts file backups (empty disables backups)")
	initCmd.Flags().BoolVar(&initAutoRefresh, "auto-refresh", true, "Reload the proxy automatically after changes")
	initCmd.Flags().BoolVar(&initDownload, "download", false, "Download and extract the nginx release archive")
	initCmd.Flags().StringVar(&initArchiveURL, "archive-url", "", "Override the nginx archive URL")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := deps.ConfigLoader.Load(); err == nil {
		return vderrors.Validation("already initialized, remove the configuration with 'vidos uninstall' first")
	}

	plat, err := deps.PlatformDetector.Detect()
	if err != nil {
		return err
	}

	installPath := initInstallPath
	if installPath == "" {
		installPath, err = plat.DefaultInstallPath()
		if err != nil {
			return err
		}
	}
	hostsFile := initHostsFile
	if hostsFile == "" {
		hostsFile = plat.HostsFile
	}

	if initDownload {
		url := initArchiveURL
		if url == "" {
			url = fmt.Sprintf("https://nginx.org/download/nginx-%s%s", nginxVersion, plat.ArchiveExt)
		}
		output.Info("Downloading %s...", url)
		if err := installer.New(plat).Install(cmd.Context(), url, installPath); err != nil {
			return err
		}
		output.Info("Extracted to %s", installPath)
	}

	cfg := config.New(config.Settings{
		HostsFile:        hostsFile,
		NginxInstallPath: installPath,
		AliasDir:         initAliasDir,
		AutoRefresh:      initAutoRefresh,
		BackupDir:        initBackupDir,
	})

	proxy := nginx.NewReconciler(deps.FileStore, installPath, initAliasDir)
	if _, err := proxy.EnsureCommonSettings(); err != nil {
		return err
	}

	if deps.FileStore.Exists(proxy.MainConfigPath()) {
		if _, err := proxy.Link(); err != nil {
			return err
		}
	} else {
		output.Warn("Main nginx config not found at %s, skipping include link", proxy.MainConfigPath())
	}

	if err := saveConfig(cfg); err != nil {
		return err
	}

	return outputResult(
		CommandResult{Success: true, Action: "init", Message: installPath},
		"Initialized with install path %s", installPath,
	)
}
