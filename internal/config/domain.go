package config

import (
	"net"
	"strconv"
	"strings"

	vderrors "github.com/daymxn/vidos/internal/errors"
)

// Status is a domain's declared state.
type Status string

// Domain statuses.
const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// portSeparator replaces ':' in the destination when deriving the config
// file name, keeping the name filesystem-safe on every platform.
const portSeparator = "$"

// Domain represents one declared mapping from a hostname to a local ip:port.
// Source and Destination are fixed at construction; Status is the only field
// mutated afterwards.
type Domain struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
	Status      Status `yaml:"status"`
}

// NewDomain creates an active Domain after validating both fields.
func NewDomain(source, destination string) (*Domain, error) {
	if strings.TrimSpace(source) == "" {
		return nil, vderrors.ErrInvalidSource
	}
	if strings.Contains(source, " ") {
		return nil, vderrors.Validation("hostname cannot contain spaces")
	}
	if err := ValidateDestination(destination); err != nil {
		return nil, err
	}

	return &Domain{
		Source:      source,
		Destination: destination,
		Status:      StatusActive,
	}, nil
}

// ValidateDestination checks that destination is a well-formed ip:port.
func ValidateDestination(destination string) error {
	host, port, err := net.SplitHostPort(destination)
	if err != nil || host == "" {
		return vderrors.ErrInvalidDestination
	}
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		return vderrors.Validation("destination port must be 1-65535")
	}
	return nil
}

// ConfigFileName derives the deterministic nginx config file name for this
// domain. The same source/destination pair always yields the same name, and
// changing either field yields a different name, so renames leave an orphan
// file for reconciliation to clean up.
func (d *Domain) ConfigFileName() string {
	return d.Source + "-" + strings.ReplaceAll(d.Destination, ":", portSeparator) + ".conf"
}

// HostAddress returns the destination with the port stripped, which is what
// the hosts file entry points the source name at.
func (d *Domain) HostAddress() string {
	host, _, err := net.SplitHostPort(d.Destination)
	if err != nil {
		return d.Destination
	}
	return host
}

// Active reports whether the domain is declared active.
func (d *Domain) Active() bool {
	return d.Status == StatusActive
}

// SetStatus updates the declared status.
func (d *Domain) SetStatus(status Status) {
	d.Status = status
}
