package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration, loaded from a YAML file with
// sensible defaults for anything left out.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Engine struct {
		Workers    int    `yaml:"workers"`
		JobTimeout string `yaml:"jobTimeout"`
	} `yaml:"engine"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var c Config
	c.Server.Addr = ":8080"
	c.Database.Path = "insight.db"
	c.Engine.Workers = 4
	c.Engine.JobTimeout = "5m"
	return c
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "insight.db"
	}
	if cfg.Engine.Workers <= 0 {
		cfg.Engine.Workers = 4
	}
	if cfg.Engine.JobTimeout == "" {
		cfg.Engine.JobTimeout = "5m"
	}
	return cfg, nil
}
