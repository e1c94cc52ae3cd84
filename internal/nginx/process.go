package nginx

import (
	"strings"

	vderrors "github.com/daymxn/vidos/internal/errors"
	"github.com/daymxn/vidos/internal/executor"
	"github.com/daymxn/vidos/internal/platform"
)

// Process controls the lifecycle of the managed nginx instance. Commands
// differ per OS family but behave identically; the platform command table
// supplies them.
type Process struct {
	exec        executor.CommandExecutor
	platform    *platform.Platform
	installPath string
}

// NewProcess creates a process controller for the nginx install at
// installPath.
func NewProcess(exec executor.CommandExecutor, p *platform.Platform, installPath string) *Process {
	return &Process{exec: exec, platform: p, installPath: installPath}
}

// binary returns the path of the managed nginx binary.
func (p *Process) binary() string {
	return p.platform.BinaryPath(p.installPath)
}

// Start launches nginx detached, with its prefix set to the install path so
// it picks up the managed configuration.
func (p *Process) Start() error {
	if err := p.exec.StartDetached(p.binary(), p.installPath, "-p", p.installPath); err != nil {
		return vderrors.Process("start proxy", err)
	}
	return nil
}

// Stop sends nginx a graceful quit signal.
func (p *Process) Stop() error {
	running, err := p.IsRunning()
	if err != nil {
		return err
	}
	if !running {
		return vderrors.ErrProxyNotRunning
	}

	if output, err := p.exec.Execute(p.binary(), "-p", p.installPath, "-s", "quit"); err != nil {
		return vderrors.Process("stop proxy", wrapOutput(err, output))
	}
	return nil
}

// Reload ensures nginx is running, then sends a graceful reload signal.
// A reload failure is reported, never papered over with a restart.
func (p *Process) Reload() error {
	running, err := p.IsRunning()
	if err != nil {
		return err
	}
	if !running {
		return p.Start()
	}

	if output, err := p.exec.Execute(p.binary(), "-p", p.installPath, "-s", "reload"); err != nil {
		return vderrors.Process("reload proxy", wrapOutput(err, output))
	}
	return nil
}

// IsRunning probes the OS process list for the nginx binary name. This is a
// single bounded query, not a wait loop.
func (p *Process) IsRunning() (bool, error) {
	query := p.platform.QueryProcesses
	output, err := p.exec.Execute(query.Name, query.Args...)
	if err != nil {
		return false, vderrors.Process("query processes", wrapOutput(err, output))
	}

	for _, line := range strings.Split(string(output), "\n") {
		for _, field := range strings.Fields(line) {
			if field == p.platform.BinaryName {
				return true, nil
			}
		}
	}
	return false, nil
}

// Kill forcibly terminates every nginx instance, returning whether one was
// found.
func (p *Process) Kill() (bool, error) {
	running, err := p.IsRunning()
	if err != nil {
		return false, err
	}
	if !running {
		return false, nil
	}

	kill := p.platform.KillProcess
	if output, err := p.exec.Execute(kill.Name, kill.Args...); err != nil {
		return true, vderrors.Process("kill proxy", wrapOutput(err, output))
	}
	return true, nil
}

// wrapOutput attaches captured command output to an execution error so
// failures name what the command reported.
func wrapOutput(err error, output []byte) error {
	text := strings.TrimSpace(string(output))
	if text == "" {
		return err
	}
	return vderrors.Wrap(vderrors.ErrCodeProcess, text, err)
}
