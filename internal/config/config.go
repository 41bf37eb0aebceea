package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// Defaults target the public Athom cloud. A config file is only needed for
// staging or self-hosted environments.
const (
	DefaultAPIRoot  = "https://api.athom.com"
	DefaultClientID = "5c1d2fce64a63e3c0a63e3c5"

	DefaultProbeTimeout = time.Second
	DefaultPingPath     = "/api/manager/webserver/ping"
)

type Config struct {
	Cloud     CloudConfig     `yaml:"cloud"`
	Discovery DiscoveryConfig `yaml:"discovery"`
}

// CloudConfig holds the OAuth client identity and API location used to
// construct the account session.
type CloudConfig struct {
	// APIRoot is the base URL of the cloud account API.
	APIRoot string `yaml:"api_root"`

	// ClientID and ClientSecret identify this CLI against the cloud.
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// DiscoveryConfig tunes the local network probe.
type DiscoveryConfig struct {
	// Timeout bounds each per-adapter probe.
	Timeout time.Duration `yaml:"timeout"`

	// PingPath is the well-known identity endpoint probed on candidate
	// gateways.
	PingPath string `yaml:"ping_path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cloud: CloudConfig{
			APIRoot:  DefaultAPIRoot,
			ClientID: DefaultClientID,
		},
		Discovery: DiscoveryConfig{
			Timeout:  DefaultProbeTimeout,
			PingPath: DefaultPingPath,
		},
	}
}

// Load reads and parses the configuration file at the given path, filling
// unset fields with defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Cloud.APIRoot == "" {
		c.Cloud.APIRoot = DefaultAPIRoot
	}
	if c.Cloud.ClientID == "" {
		c.Cloud.ClientID = DefaultClientID
	}
	if c.Discovery.Timeout <= 0 {
		c.Discovery.Timeout = DefaultProbeTimeout
	}
	if c.Discovery.PingPath == "" {
		c.Discovery.PingPath = DefaultPingPath
	}
}

func (c *Config) Validate() error {
	if c.Cloud.APIRoot == "" {
		return fmt.Errorf("cloud.api_root is required")
	}
	if c.Cloud.ClientID == "" {
		return fmt.Errorf("cloud.client_id is required")
	}
	return nil
}
