package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads and validates the application configuration. When path is empty
// it tries config.yml in the working directory; a missing file yields the
// defaults.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig

	candidates := []string{path}
	if path == "" {
		candidates = []string{"config.yml", "./config/config.yml"}
	}
	var data []byte
	var err error
	for _, p := range candidates {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		if path != "" {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		// No config file is fine; run on defaults.
		applyDefaults(&cfg)
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Guidance.MarginMeters == 0 {
		cfg.Guidance.MarginMeters = 15
	}
	if cfg.Geocoder.Provider == "" {
		cfg.Geocoder.Provider = "photon"
	}
	if cfg.Geocoder.RequestsPerSec == 0 {
		cfg.Geocoder.RequestsPerSec = 1
	}
	if cfg.Feed.PollIntervalMS == 0 {
		cfg.Feed.PollIntervalMS = 30000
	}
}
