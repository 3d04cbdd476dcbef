package config

import (
	"fmt"
	"os"

	"github.com/san-kum/chaospanel/internal/param"
	"github.com/san-kum/chaospanel/internal/pendulum"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTitle     = "Double pendulum"
	DefaultContainer = "controls"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

type Config struct {
	Panel      PanelConfig `yaml:"panel"`
	Log        LogConfig   `yaml:"log"`
	Preset     string      `yaml:"preset,omitempty"`
	Extended   bool        `yaml:"extended"`
	Parameters []param.Def `yaml:"parameters,omitempty"`
}

type PanelConfig struct {
	Title     string `yaml:"title"`
	Container string `yaml:"container"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Panel: PanelConfig{
			Title:     DefaultTitle,
			Container: DefaultContainer,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Definitions resolves the panel table: the configured parameters if any,
// otherwise the pendulum table, with the preset applied on top.
func (c *Config) Definitions() ([]param.Def, error) {
	var defs []param.Def
	switch {
	case len(c.Parameters) > 0:
		defs = make([]param.Def, len(c.Parameters))
		copy(defs, c.Parameters)
	case c.Extended:
		defs = pendulum.ExtendedDefinitions()
	default:
		defs = pendulum.Definitions()
	}
	if c.Preset == "" {
		return defs, nil
	}
	out, err := ApplyPreset(defs, c.Preset)
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", c.Preset, err)
	}
	return out, nil
}
