package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"gpumon/constants"
)

// Config is the optional on-disk configuration for gpumon.
type Config struct {
	SourcePath string `yaml:"sourcePath"`
	Interval   string `yaml:"interval"` // duration string, e.g. "10ms"
}

// Load reads a YAML config file. A missing or empty path yields defaults.
func Load(path string) (*Config, error) {
	c := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if c.SourcePath == "" {
		c.SourcePath = constants.DefaultGPULoadSysfsPath
	}
	if c.Interval == "" {
		c.Interval = constants.DefaultSamplingInterval.String()
	}
	return c, nil
}

// SamplingInterval parses the interval field.
func (c *Config) SamplingInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 0, fmt.Errorf("parse interval %q: %w", c.Interval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("interval %q must be positive", c.Interval)
	}
	return d, nil
}
