// Package config loads this server's YAML configuration file: the listen
// address and the set of media items to register with the SourceManager at
// startup. Grounded on mediamtx's internal/conf package shape (load once at
// startup into an immutable struct, validate, no hot reload — this server
// has no fsnotify watch, matching spec §1's Non-goal scope for
// configuration), but reduced to the single flat document spec §6's
// Config collaborator actually names: "per-media-item { name, path, kind,
// source }; server { host, port }".
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind distinguishes a looping file source from a live network stream, per
// spec §6's "kind ∈ {file, stream}".
type Kind string

const (
	KindFile   Kind = "file"
	KindStream Kind = "stream"
)

// Media is one configured source: registered with the SourceManager under
// Path before the RTSP listener starts accepting connections.
type Media struct {
	Name   string `yaml:"name"`
	Path   string `yaml:"path"`
	Kind   Kind   `yaml:"kind"`
	Source string `yaml:"source"`
}

// Server is the listen address this server binds its RTSP TCP socket to.
type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Config is the full, immutable configuration loaded once at startup (spec
// §6: "Loaded before runtime start; passed as immutable").
type Config struct {
	Server Server  `yaml:"server"`
	Media  []Media `yaml:"media"`
}

// Addr renders Server as a net.Listen-style address.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads and validates the YAML document at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := &Config{
		Server: Server{Host: "0.0.0.0", Port: 8554},
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks Config for internal consistency. Grounded on mediamtx's
// internal/conf.Conf.Validate shape (field-by-field checks returning the
// first error found).
func (cfg *Config) Validate() error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("'server.port' must be between 1 and 65535")
	}

	seen := make(map[string]struct{}, len(cfg.Media))
	for i, m := range cfg.Media {
		if m.Name == "" {
			return fmt.Errorf("media[%d]: 'name' is required", i)
		}
		if m.Path == "" {
			return fmt.Errorf("media[%d] (%s): 'path' is required", i, m.Name)
		}
		if m.Kind != KindFile && m.Kind != KindStream {
			return fmt.Errorf("media[%d] (%s): 'kind' must be 'file' or 'stream', got %q", i, m.Name, m.Kind)
		}
		if m.Source == "" {
			return fmt.Errorf("media[%d] (%s): 'source' is required", i, m.Name)
		}
		if _, dup := seen[m.Path]; dup {
			return fmt.Errorf("media[%d] (%s): duplicate path %q", i, m.Name, m.Path)
		}
		seen[m.Path] = struct{}{}
	}
	return nil
}
