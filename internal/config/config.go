package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dengas/devtimetracker/internal/keycloak"
)

// Environment variables overriding values from the config file.
const (
	EnvConfigPath           = "CONFIG_PATH"
	EnvDBConnection         = "DB_CONNECTION"
	EnvPort                 = "PORT"
	EnvKeycloakClientSecret = "KEYCLOAK_CLIENT_SECRET"
)

const defaultPort = 8600

// ErrMissingDatabaseDSN indicates no database DSN is present in the config
// file or environment.
var ErrMissingDatabaseDSN = errors.New("missing database dsn (set `database.dsn` in config file or DB_CONNECTION)")

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig holds the persistence settings.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// CORSConfig holds the allowed browser origins.
type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig    `yaml:"server"`
	Database DatabaseConfig  `yaml:"database"`
	Keycloak keycloak.Config `yaml:"keycloak"`
	CORS     CORSConfig      `yaml:"cors"`
}

// ResolveConfigPath normalizes the config path and applies defaults.
func ResolveConfigPath(p string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		trimmed = "./config.yaml"
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}
	return trimmed
}

// Load reads the YAML config file and applies environment overrides.
func Load(configPath string) (*Config, error) {
	data, errRead := os.ReadFile(configPath)
	if errRead != nil {
		return nil, fmt.Errorf("config: read config file: %w", errRead)
	}

	cfg := &Config{}
	if errUnmarshal := yaml.Unmarshal(data, cfg); errUnmarshal != nil {
		return nil, fmt.Errorf("config: parse config file: %w", errUnmarshal)
	}

	if dsn := strings.TrimSpace(os.Getenv(EnvDBConnection)); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if secret := strings.TrimSpace(os.Getenv(EnvKeycloakClientSecret)); secret != "" {
		cfg.Keycloak.ClientSecret = secret
	}
	if portRaw := strings.TrimSpace(os.Getenv(EnvPort)); portRaw != "" {
		if port, errParse := strconv.Atoi(portRaw); errParse == nil && port > 0 {
			cfg.Server.Port = port
		}
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = defaultPort
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, ErrMissingDatabaseDSN
	}
	return cfg, nil
}
