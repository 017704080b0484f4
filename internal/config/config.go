package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	libconfig "vizvolt/libs/config"
)

// ServiceName is reported by the health endpoint and attached to log entries.
const ServiceName = "vizvolt-ingestion"

const defaultAPIURL = "https://analytics.ursaaenergy.com/api/service/getlastknownlocation"

// Config defines ingestion service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	API      APIConfig      `yaml:"api"`
	Poll     PollConfig     `yaml:"poll"`
}

// HTTPConfig controls the liveness endpoint listener.
type HTTPConfig struct {
	Port string `yaml:"port" env:"HTTP_PORT"`
}

// DatabaseConfig carries the discrete Postgres connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"DB_HOST"`
	Name     string `yaml:"name" env:"DB_NAME"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Port     string `yaml:"port" env:"DB_PORT"`
}

// APIConfig describes the upstream analytics endpoint.
type APIConfig struct {
	URL       string        `yaml:"url" env:"API_URL"`
	SecretKey string        `yaml:"secret_key" env:"API_SECRET"`
	Timeout   time.Duration `yaml:"timeout" env:"API_TIMEOUT"`
}

// PollConfig controls the ingestion tick.
type PollConfig struct {
	Interval time.Duration `yaml:"interval" env:"POLL_INTERVAL"`
}

// Load builds configuration from defaults, optional YAML file and environment.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP:     HTTPConfig{Port: "8000"},
		Database: DatabaseConfig{Port: "5432"},
		API:      APIConfig{URL: defaultAPIURL, Timeout: 30 * time.Second},
		Poll:     PollConfig{Interval: 10 * time.Second},
	}

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.API.SecretKey) == "" {
		return nil, errors.New("config: api secret key required")
	}
	for _, field := range []struct{ name, value string }{
		{"DB_HOST", cfg.Database.Host},
		{"DB_NAME", cfg.Database.Name},
		{"DB_USER", cfg.Database.User},
	} {
		if strings.TrimSpace(field.value) == "" {
			return nil, fmt.Errorf("config: %s required", field.name)
		}
	}

	return cfg, nil
}

// DatabaseDSN assembles a postgres:// URL with encrypted transport enforced.
func (c *Config) DatabaseDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=require",
	}
	return u.String()
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8000"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
