// Package platform provides platform-specific paths and process commands for
// controlling the managed nginx instance.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Family identifies the OS family the tool is running on. Process control
// commands differ between families but behave identically.
type Family string

// Supported OS families.
const (
	FamilyUnix    Family = "unix"
	FamilyWindows Family = "windows"
)

// Platform describes everything about the host OS the reconcilers and the
// process controller need: where the hosts file lives, how the nginx binary
// is named, and which commands query or kill running processes.
type Platform struct {
	Family     Family
	HostsFile  string // default hosts file path
	BinaryName string // nginx binary file name
	ArchiveExt string // release artifact extension for this platform

	// QueryProcesses lists running process names; output is scanned for
	// BinaryName by IsRunning.
	QueryProcesses Command

	// KillProcess force-terminates every instance of the binary.
	KillProcess Command
}

// Command is a single external command invocation.
type Command struct {
	Name string
	Args []string
}

// Detect returns the Platform for the current OS.
func Detect() (*Platform, error) {
	return detect(runtime.GOOS)
}

func detect(goos string) (*Platform, error) {
	switch goos {
	case "windows":
		return &Platform{
			Family:     FamilyWindows,
			HostsFile:  `C:\Windows\System32\drivers\etc\hosts`,
			BinaryName: "nginx.exe",
			ArchiveExt: ".zip",
			QueryProcesses: Command{
				Name: "tasklist",
				Args: []string{"/FI", "IMAGENAME eq nginx.exe"},
			},
			KillProcess: Command{
				Name: "taskkill",
				Args: []string{"/F", "/IM", "nginx.exe"},
			},
		}, nil
	case "linux", "darwin":
		return &Platform{
			Family:     FamilyUnix,
			HostsFile:  "/etc/hosts",
			BinaryName: "nginx",
			ArchiveExt: ".tar.gz",
			QueryProcesses: Command{
				Name: "ps",
				Args: []string{"-eo", "comm"},
			},
			KillProcess: Command{
				Name: "pkill",
				Args: []string{"-9", "-x", "nginx"},
			},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// DefaultInstallPath returns the default nginx install location, under the
// user's home directory so no elevated privileges are needed for the install
// itself.
func (p *Platform) DefaultInstallPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".vidos", "nginx"), nil
}

// BinaryPath returns the path of the nginx binary inside an install.
func (p *Platform) BinaryPath(installPath string) string {
	return filepath.Join(installPath, p.BinaryName)
}
