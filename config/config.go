// Package config loads the wildcat.toml configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "WILDCAT_CONFIG"

// DefaultFile is looked up in the working directory when EnvVar is unset.
const DefaultFile = "wildcat.toml"

type Config struct {
	Output    OutputConfig    `toml:"output"`
	Log       LogConfig       `toml:"log"`
	Workspace WorkspaceConfig `toml:"workspace"`
}

type OutputConfig struct {
	// Color is one of auto, always or never.
	Color string `toml:"color"`
	// Format is the default format of the parse command.
	Format string `toml:"format"`
}

type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

type WorkspaceConfig struct {
	Extensions   []string `toml:"extensions"`
	PollInterval Duration `toml:"poll_interval"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the TOML file at path and fills in defaults for missing keys.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDefault loads the file named by $WILDCAT_CONFIG, or wildcat.toml in
// the working directory. Without either, the defaults are returned.
func LoadDefault() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	}
	return Default(), nil
}

func (c *Config) applyDefaults() {
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if len(c.Workspace.Extensions) == 0 {
		c.Workspace.Extensions = []string{".wc"}
	}
	if c.Workspace.PollInterval.Duration == 0 {
		c.Workspace.PollInterval.Duration = time.Second
	}
}

// Validate checks values that decode fine but make no sense.
func (c *Config) Validate() error {
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color: unknown mode %q", c.Output.Color)
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity: must not be negative")
	}
	if c.Workspace.PollInterval.Duration < 0 {
		return fmt.Errorf("workspace.poll_interval: must be positive")
	}
	return nil
}
