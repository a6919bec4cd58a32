package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/mcdev12/cubedraft/go/internal/models"
)

// serverConfig is read from the environment.
type serverConfig struct {
	Port        string `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	ConfigPath  string `env:"CONFIG_PATH" envDefault:"config.yaml"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"false"`
}

// Config is the YAML file at CONFIG_PATH.
type Config struct {
	Draft models.DraftRules `yaml:"draft"`
}

func loadServerConfig() (serverConfig, error) {
	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		return serverConfig{}, fmt.Errorf("failed to parse server env: %w", err)
	}
	return cfg, nil
}

// loadConfig reads path. A missing file yields the zero Config.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &config, nil
}
