package cli

import (
	"github.com/daymxn/vidos/internal/config"
	vderrors "github.com/daymxn/vidos/internal/errors"
	"github.com/daymxn/vidos/internal/platform"
)

// mockConfigLoader is an in-memory ConfigLoader for testing.
type mockConfigLoader struct {
	cfg        *config.Config
	path       string
	loadErr    error
	saveErr    error
	saveCalled int
	deleted    bool
}

func (m *mockConfigLoader) Load() (*config.Config, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.cfg == nil || m.deleted {
		return nil, vderrors.ErrConfigNotFound
	}
	return m.cfg, nil
}

func (m *mockConfigLoader) Save(cfg *config.Config) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.cfg = cfg
	m.saveCalled++
	return nil
}

func (m *mockConfigLoader) Path() (string, error) {
	return m.path, nil
}

func (m *mockConfigLoader) Delete() error {
	m.deleted = true
	return nil
}

// mockPlatformDetector returns a fixed platform for testing.
type mockPlatformDetector struct {
	platform *platform.Platform
	err      error
}

func (m *mockPlatformDetector) Detect() (*platform.Platform, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.platform, nil
}
