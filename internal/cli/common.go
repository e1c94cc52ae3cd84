package cli

import (
	"fmt"

	"github.com/daymxn/vidos/internal/config"
	"github.com/daymxn/vidos/internal/hosts"
	"github.com/daymxn/vidos/internal/logger"
	"github.com/daymxn/vidos/internal/nginx"
	"github.com/daymxn/vidos/internal/output"
)

// environment bundles everything a command needs: the loaded declared
// configuration plus the two reconcilers and the process controller built
// from its settings.
type environment struct {
	cfg     *config.Config
	hosts   *hosts.Reconciler
	proxy   *nginx.Reconciler
	process *nginx.Process
}

// loadEnvironment loads the declared configuration and wires the
// reconcilers against its settings.
func loadEnvironment() (*environment, error) {
	cfg, err := deps.ConfigLoader.Load()
	if err != nil {
		return nil, err
	}

	plat, err := deps.PlatformDetector.Detect()
	if err != nil {
		return nil, err
	}

	return &environment{
		cfg:     cfg,
		hosts:   hosts.NewReconciler(deps.FileStore, cfg.Settings.HostsFile, cfg.Settings.BackupDir),
		proxy:   nginx.NewReconciler(deps.FileStore, cfg.Settings.NginxInstallPath, cfg.Settings.AliasDir),
		process: nginx.NewProcess(deps.Executor, plat, cfg.Settings.NginxInstallPath),
	}, nil
}

// saveConfig persists the declared configuration document.
func saveConfig(cfg *config.Config) error {
	if err := deps.ConfigLoader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// refreshProxy reloads nginx when auto refresh is on and reloading was not
// suppressed. A reload failure is reported, not swallowed.
func refreshProxy(env *environment, noReload bool) error {
	if noReload || !env.cfg.Settings.AutoRefresh {
		return nil
	}

	running, err := env.process.IsRunning()
	if err != nil {
		return err
	}
	if !running {
		logger.Debug("proxy not running, skipping reload")
		return nil
	}

	output.Info("Reloading proxy...")
	return env.process.Reload()
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}

// CommandResult represents a common result structure for CLI commands
type CommandResult struct {
	Success     bool   `json:"success"`
	Domain      string `json:"domain,omitempty"`
	Destination string `json:"destination,omitempty"`
	Action      string `json:"action,omitempty"`
	Message     string `json:"message,omitempty"`
}
