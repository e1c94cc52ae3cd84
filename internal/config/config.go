package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	vderrors "github.com/daymxn/vidos/internal/errors"
)

// Settings holds the tool-level configuration shared by every command.
type Settings struct {
	HostsFile        string `yaml:"hosts_file"`
	NginxInstallPath string `yaml:"nginx_install_path"`
	AliasDir         string `yaml:"alias_dir"`
	AutoRefresh      bool   `yaml:"auto_refresh"`
	BackupDir        string `yaml:"backup_dir,omitempty"`
}

// Config is the declared configuration document: the ordered domain list
// plus settings. Order is preserved for display only; correctness never
// depends on it.
type Config struct {
	Domains  []*Domain `yaml:"domains"`
	Settings Settings  `yaml:"settings"`
}

// configDir is the directory holding the configuration document.
const configDir = ".vidos"
const configFile = "config.yaml"

// DefaultAliasDir is the name of the managed nginx config directory.
const DefaultAliasDir = "vidos"

// New creates an empty Config with the given settings.
func New(settings Settings) *Config {
	return &Config{
		Domains:  []*Domain{},
		Settings: settings,
	}
}

// Dir returns the config directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// Path returns the config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the configuration document from path. A missing document is a
// NotFound error; the init command must have run first.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, vderrors.ErrConfigNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, vderrors.IO("read configuration", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, vderrors.Wrap(vderrors.ErrCodeConfig, "parse configuration", err)
	}

	if cfg.Domains == nil {
		cfg.Domains = []*Domain{}
	}

	return cfg, nil
}

// Save serializes the document to path as a whole-document overwrite.
// Derived values such as config file names are never persisted.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return vderrors.IO("create configuration directory", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return vderrors.Wrap(vderrors.ErrCodeConfig, "marshal configuration", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return vderrors.IO("write configuration", err)
	}

	return nil
}

// DomainByName returns the domain with the given source, using exact
// case-sensitive matching, or nil if none is declared.
func (c *Config) DomainByName(source string) *Domain {
	for _, d := range c.Domains {
		if d.Source == source {
			return d
		}
	}
	return nil
}

// AddDomain appends a domain, enforcing source uniqueness.
func (c *Config) AddDomain(d *Domain) error {
	if c.DomainByName(d.Source) != nil {
		return vderrors.AlreadyExists(d.Source)
	}
	c.Domains = append(c.Domains, d)
	return nil
}

// RemoveDomain removes the domain with the given source.
func (c *Config) RemoveDomain(source string) error {
	for i, d := range c.Domains {
		if d.Source == source {
			c.Domains = append(c.Domains[:i], c.Domains[i+1:]...)
			return nil
		}
	}
	return vderrors.NotFound(source)
}

// ActiveDomains returns the domains declared active.
func (c *Config) ActiveDomains() []*Domain {
	active := make([]*Domain, 0, len(c.Domains))
	for _, d := range c.Domains {
		if d.Active() {
			active = append(active, d)
		}
	}
	return active
}
