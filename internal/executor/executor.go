package executor

import "os/exec"

// CommandExecutor is an interface for executing system commands
type CommandExecutor interface {
	// Execute runs a command with the given name and arguments and waits
	// for it to finish, returning combined output
	Execute(name string, args ...string) ([]byte, error)

	// StartDetached launches a command in the given working directory
	// without waiting for it to exit
	StartDetached(name string, dir string, args ...string) error

	// LookPath searches for an executable in the directories named by the PATH
	LookPath(file string) (string, error)
}

// SystemExecutor implements CommandExecutor using os/exec
type SystemExecutor struct{}

// NewSystemExecutor creates a new SystemExecutor
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{}
}

// Execute runs a command and returns combined output
func (e *SystemExecutor) Execute(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	return cmd.CombinedOutput()
}

// StartDetached launches a command and releases the process handle so it
// outlives this process
func (e *SystemExecutor) StartDetached(name string, dir string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// LookPath searches for an executable
func (e *SystemExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// MockExecutor is a mock implementation for testing
type MockExecutor struct {
	ExecuteFunc       func(name string, args ...string) ([]byte, error)
	StartDetachedFunc func(name string, dir string, args ...string) error
	LookPathFunc      func(file string) (string, error)
	Calls             []CommandCall
}

// CommandCall records a command execution for verification
type CommandCall struct {
	Name     string
	Dir      string
	Args     []string
	Detached bool
}

// Execute calls the mock function
func (m *MockExecutor) Execute(name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args})
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(name, args...)
	}
	return []byte(""), nil
}

// StartDetached calls the mock function
func (m *MockExecutor) StartDetached(name string, dir string, args ...string) error {
	m.Calls = append(m.Calls, CommandCall{Name: name, Dir: dir, Args: args, Detached: true})
	if m.StartDetachedFunc != nil {
		return m.StartDetachedFunc(name, dir, args...)
	}
	return nil
}

// LookPath calls the mock function
func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return file, nil
}
