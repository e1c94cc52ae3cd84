package cli

import (
	"github.com/daymxn/vidos/internal/config"
	"github.com/daymxn/vidos/internal/executor"
	"github.com/daymxn/vidos/internal/input"
	"github.com/daymxn/vidos/internal/platform"
	"github.com/daymxn/vidos/internal/store"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader     ConfigLoader
	PlatformDetector PlatformDetector
	FileStore        store.FileStore
	Executor         executor.CommandExecutor
	StdinReader      input.Reader
}

// ConfigLoader handles configuration loading and saving
type ConfigLoader interface {
	Load() (*config.Config, error)
	Save(cfg *config.Config) error
	Path() (string, error)
	Delete() error
}

// PlatformDetector resolves the host platform
type PlatformDetector interface {
	Detect() (*platform.Platform, error)
}

// Package-level dependencies (can be overridden for testing)
var deps = defaultDeps()

func defaultDeps() *Dependencies {
	return &Dependencies{
		ConfigLoader:     &realConfigLoader{},
		PlatformDetector: &realPlatformDetector{},
		FileStore:        store.NewDiskStore(),
		Executor:         executor.NewSystemExecutor(),
		StdinReader:      input.NewStdinReader(),
	}
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// ResetDeps restores the real dependencies (for testing)
func ResetDeps() {
	deps = defaultDeps()
}

// Real implementations

type realConfigLoader struct{}

func (r *realConfigLoader) Path() (string, error) {
	return config.Path()
}

func (r *realConfigLoader) Load() (*config.Config, error) {
	path, err := config.Path()
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

func (r *realConfigLoader) Save(cfg *config.Config) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	return cfg.Save(path)
}

func (r *realConfigLoader) Delete() error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	return store.NewDiskStore().Delete(path)
}

type realPlatformDetector struct{}

func (r *realPlatformDetector) Detect() (*platform.Platform, error) {
	return platform.Detect()
}
