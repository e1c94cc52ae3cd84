package nginx

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	vderrors "github.com/daymxn/vidos/internal/errors"
	"github.com/daymxn/vidos/internal/executor"
	"github.com/daymxn/vidos/internal/platform"
)

func unixPlatform(t *testing.T) *platform.Platform {
	t.Helper()
	return &platform.Platform{
		Family:     platform.FamilyUnix,
		HostsFile:  "/etc/hosts",
		BinaryName: "nginx",
		QueryProcesses: platform.Command{
			Name: "ps",
			Args: []string{"-eo", "comm"},
		},
		KillProcess: platform.Command{
			Name: "pkill",
			Args: []string{"-9", "-x", "nginx"},
		},
	}
}

func TestStart(t *testing.T) {
	mock := &executor.MockExecutor{}
	p := NewProcess(mock, unixPlatform(t), "/opt/vidos/nginx")

	if err := p.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Calls))
	}
	call := mock.Calls[0]
	if !call.Detached {
		t.Error("Start should launch detached")
	}
	if call.Name != filepath.Join("/opt/vidos/nginx", "nginx") {
		t.Errorf("binary = %s", call.Name)
	}
	if call.Dir != "/opt/vidos/nginx" {
		t.Errorf("cwd = %s, want install path", call.Dir)
	}
	if strings.Join(call.Args, " ") != "-p /opt/vidos/nginx" {
		t.Errorf("args = %v", call.Args)
	}
}

func TestIsRunning(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   bool
	}{
		{"running", "COMMAND\nbash\nnginx\nps\n", true},
		{"not running", "COMMAND\nbash\nps\n", false},
		{"similar name does not match", "nginx-helper\n", false},
		{"empty output", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &executor.MockExecutor{
				ExecuteFunc: func(name string, args ...string) ([]byte, error) {
					return []byte(tt.output), nil
				},
			}
			p := NewProcess(mock, unixPlatform(t), "/opt/vidos/nginx")

			running, err := p.IsRunning()
			if err != nil {
				t.Fatalf("IsRunning failed: %v", err)
			}
			if running != tt.want {
				t.Errorf("IsRunning = %v, want %v", running, tt.want)
			}
		})
	}
}

func TestStopWhenNotRunning(t *testing.T) {
	mock := &executor.MockExecutor{
		ExecuteFunc: func(name string, args ...string) ([]byte, error) {
			return []byte(""), nil // empty process list
		},
	}
	p := NewProcess(mock, unixPlatform(t), "/opt/vidos/nginx")

	err := p.Stop()
	if !vderrors.Is(err, vderrors.ErrProxyNotRunning) {
		t.Errorf("Stop on stopped proxy should report ErrProxyNotRunning, got %v", err)
	}
}

func TestStopSendsQuit(t *testing.T) {
	mock := &executor.MockExecutor{
		ExecuteFunc: func(name string, args ...string) ([]byte, error) {
			if name == "ps" {
				return []byte("nginx\n"), nil
			}
			return []byte(""), nil
		},
	}
	p := NewProcess(mock, unixPlatform(t), "/opt/vidos/nginx")

	if err := p.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	last := mock.Calls[len(mock.Calls)-1]
	if strings.Join(last.Args, " ") != "-p /opt/vidos/nginx -s quit" {
		t.Errorf("quit args = %v", last.Args)
	}
}

func TestReloadStartsWhenStopped(t *testing.T) {
	mock := &executor.MockExecutor{
		ExecuteFunc: func(name string, args ...string) ([]byte, error) {
			return []byte(""), nil
		},
	}
	p := NewProcess(mock, unixPlatform(t), "/opt/vidos/nginx")

	if err := p.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	last := mock.Calls[len(mock.Calls)-1]
	if !last.Detached {
		t.Error("Reload on a stopped proxy should start it")
	}
}

func TestReloadSendsSignalWhenRunning(t *testing.T) {
	mock := &executor.MockExecutor{
		ExecuteFunc: func(name string, args ...string) ([]byte, error) {
			if name == "ps" {
				return []byte("nginx\n"), nil
			}
			return []byte(""), nil
		},
	}
	p := NewProcess(mock, unixPlatform(t), "/opt/vidos/nginx")

	if err := p.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	last := mock.Calls[len(mock.Calls)-1]
	if last.Detached {
		t.Error("Reload on a running proxy must not restart it")
	}
	if strings.Join(last.Args, " ") != "-p /opt/vidos/nginx -s reload" {
		t.Errorf("reload args = %v", last.Args)
	}
}

func TestReloadFailureSurfaced(t *testing.T) {
	mock := &executor.MockExecutor{
		ExecuteFunc: func(name string, args ...string) ([]byte, error) {
			if name == "ps" {
				return []byte("nginx\n"), nil
			}
			return []byte("nginx: [emerg] invalid config"), errors.New("exit status 1")
		},
	}
	p := NewProcess(mock, unixPlatform(t), "/opt/vidos/nginx")

	err := p.Reload()
	if err == nil {
		t.Fatal("Reload failure must be reported")
	}
	if !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("error should carry command output, got %v", err)
	}
}

func TestKill(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock := &executor.MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				if name == "ps" {
					return []byte("nginx\n"), nil
				}
				return []byte(""), nil
			},
		}
		p := NewProcess(mock, unixPlatform(t), "/opt/vidos/nginx")

		found, err := p.Kill()
		if err != nil {
			t.Fatalf("Kill failed: %v", err)
		}
		if !found {
			t.Error("Kill should report the instance it found")
		}
		last := mock.Calls[len(mock.Calls)-1]
		if last.Name != "pkill" {
			t.Errorf("kill command = %s", last.Name)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mock := &executor.MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return []byte(""), nil
			},
		}
		p := NewProcess(mock, unixPlatform(t), "/opt/vidos/nginx")

		found, err := p.Kill()
		if err != nil {
			t.Fatalf("Kill failed: %v", err)
		}
		if found {
			t.Error("Kill with no instance should report false")
		}
		// Only the process query ran.
		if len(mock.Calls) != 1 {
			t.Errorf("expected 1 call, got %d", len(mock.Calls))
		}
	})
}
