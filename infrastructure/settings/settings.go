// Package settings loads and validates the TOML configuration of the provisioning process.
package settings

import (
	"errors"
	"fmt"
	"io"
	"net/netip"
	"strings"

	"github.com/BurntSushi/toml"

	"rawtun/domain/network/subnet"
)

var ErrEmptyPath = errors.New("settings file path can not be empty")

type Settings struct {
	Log    Log    `toml:"log"`
	Tunnel Tunnel `toml:"tunnel"`
}

type Log struct {
	Level string `toml:"level"`
}

type Tunnel struct {
	// Queues is the number of extra queues to request beyond the primary one.
	Queues     int      `toml:"queues"`
	MTU        int      `toml:"mtu"`
	Up         bool     `toml:"up"`
	Subnets    []string `toml:"subnets"`
	DevicePath string   `toml:"device_path"`
}

// Prefixes returns the configured subnets. Call after Validate.
func (t Tunnel) Prefixes() []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(t.Subnets))
	for _, s := range t.Subnets {
		if p, err := subnet.Parse(s); err == nil {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}

// Load reads settings from a TOML file.
func Load(path string) (*Settings, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	var s Settings
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if err := s.normalize(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return &s, nil
}

// Decode reads settings from a TOML stream.
func Decode(r io.Reader) (*Settings, error) {
	var s Settings
	if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.normalize(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

func (s *Settings) normalize() error {
	s.Log.Level = strings.ToLower(strings.TrimSpace(s.Log.Level))
	if s.Log.Level == "" {
		s.Log.Level = DefaultLogLevel
	}
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", s.Log.Level)
	}

	t := &s.Tunnel
	if t.MTU == 0 {
		t.MTU = DefaultEthernetMTU
	}
	if t.DevicePath == "" {
		t.DevicePath = DefaultDevicePath
	}
	if t.Queues < 0 {
		t.Queues = 0
	}
	if t.Queues > MaxExtraQueues {
		t.Queues = MaxExtraQueues
	}
	return t.Validate()
}

// Validate checks the tunnel section without applying defaults.
func (t Tunnel) Validate() error {
	if t.MTU < MinimumMTU || t.MTU > MaximumMTU {
		return fmt.Errorf("mtu %d is outside [%d, %d]", t.MTU, MinimumMTU, MaximumMTU)
	}
	for _, s := range t.Subnets {
		if _, err := subnet.Parse(s); err != nil {
			return err
		}
	}
	return nil
}
