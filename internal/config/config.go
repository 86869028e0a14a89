// Package config loads and validates the centrum server configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete server configuration
type Config struct {
	Server  ServerConfig  `json:"server" mapstructure:"server"`
	Site    SiteConfig    `json:"site" mapstructure:"site"`
	Backend BackendConfig `json:"backend" mapstructure:"backend"`
	Render  RenderConfig  `json:"render" mapstructure:"render"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP listener configuration
type ServerConfig struct {
	Host string `json:"host" mapstructure:"host"`
	Port int    `json:"port" mapstructure:"port"`
}

// SiteConfig describes the public identity of the site
type SiteConfig struct {
	// BaseURL is prepended verbatim to request paths to form canonical URLs
	BaseURL string `json:"baseUrl" mapstructure:"baseUrl"`
	Name    string `json:"name" mapstructure:"name"`
}

// BackendConfig contains data API client configuration
type BackendConfig struct {
	BaseURL        string  `json:"baseUrl" mapstructure:"baseUrl"`
	FetchTimeoutMs int     `json:"fetchTimeoutMs" mapstructure:"fetchTimeoutMs"`
	RequestsPerSec float64 `json:"requestsPerSec" mapstructure:"requestsPerSec"`
}

// RenderConfig contains template and asset configuration
type RenderConfig struct {
	TemplatePath  string `json:"templatePath" mapstructure:"templatePath"`
	PublicDir     string `json:"publicDir" mapstructure:"publicDir"`
	MetaTablePath string `json:"metaTablePath" mapstructure:"metaTablePath"`
	// Dev reloads the template on change instead of reading it once at startup
	Dev bool `json:"dev" mapstructure:"dev"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Site: SiteConfig{
			BaseURL: "https://centrum.med.pl",
			Name:    "Centrum Medyczne",
		},
		Backend: BackendConfig{
			BaseURL:        "http://localhost:3001",
			FetchTimeoutMs: 4000,
			RequestsPerSec: 20,
		},
		Render: RenderConfig{
			TemplatePath:  "public/index.html",
			PublicDir:     "public",
			MetaTablePath: "",
			Dev:           false,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from centrum.json in dir, falling back to
// defaults when the file does not exist.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("centrum")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to centrum.json in dir
func (c *Config) Save(dir string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "centrum.json"), data, 0644)
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Site.BaseURL == "" {
		return fmt.Errorf("site.baseUrl must not be empty")
	}
	if strings.HasSuffix(c.Site.BaseURL, "/") {
		return fmt.Errorf("site.baseUrl must not end with a slash")
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.baseUrl must not be empty")
	}
	if c.Backend.FetchTimeoutMs <= 0 {
		return fmt.Errorf("backend.fetchTimeoutMs must be positive")
	}
	if c.Render.TemplatePath == "" {
		return fmt.Errorf("render.templatePath must not be empty")
	}
	return nil
}
