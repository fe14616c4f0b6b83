package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"scopereport/domain/document"
	"scopereport/internal/errors"
	"scopereport/internal/scope"
)

// Config represents the complete application configuration
type Config struct {
	Output   OutputConfig
	Source   SourceConfig
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
}

// OutputConfig says where reports go and in which formats
type OutputConfig struct {
	Path    string
	Formats []document.Format
}

// SourceConfig points at an optional report definition replacing the
// built-in content
type SourceConfig struct {
	Path string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds the optional generation ledger connection
type DatabaseConfig struct {
	URL string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Source:   SourceConfig{Path: getEnvOrDefault("REPORT_SOURCE", "")},
		Server:   *loadServerConfig(),
		Database: DatabaseConfig{URL: getEnvOrDefault("DATABASE_URL", "")},
		Log:      LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	outputConfig, err := loadOutputConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load output configuration")
	}
	config.Output = *outputConfig

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadOutputConfig() (*OutputConfig, error) {
	path := getEnvOrDefault("REPORT_OUTPUT", scope.DefaultFileName)
	formats, err := ParseFormats(os.Getenv("REPORT_FORMATS"), path)
	if err != nil {
		return nil, err
	}
	return &OutputConfig{Path: path, Formats: formats}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// ParseFormats parses a comma separated format list. An empty list falls
// back to the format implied by path, then to docx.
func ParseFormats(list, path string) ([]document.Format, error) {
	var formats []document.Format
	seen := make(map[document.Format]bool)
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		f, ok := document.ParseFormat(name)
		if !ok {
			return nil, errors.ConfigInvalid("unknown report format " + strconv.Quote(strings.TrimSpace(name)))
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	if len(formats) > 0 {
		return formats, nil
	}
	if f, ok := document.FormatFromPath(path); ok {
		return []document.Format{f}, nil
	}
	return []document.Format{document.FormatDOCX}, nil
}

func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Output.Path) == "" {
		return errors.ConfigInvalid("output path is required")
	}
	if len(config.Output.Formats) == 0 {
		return errors.ConfigInvalid("at least one report format is required")
	}
	return nil
}

// ValidateServer checks the settings only the HTTP server reads.
func (c *Config) ValidateServer() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	return nil
}

// ApplyFlags lets command line values override the environment. Empty
// values leave the loaded setting alone. When only the output path changes,
// formats are re-derived from REPORT_FORMATS or the new extension.
func (c *Config) ApplyFlags(out, format, in string) error {
	if in != "" {
		c.Source.Path = in
	}
	if out == "" && format == "" {
		return nil
	}
	if out != "" {
		c.Output.Path = out
	}
	list := format
	if list == "" {
		list = os.Getenv("REPORT_FORMATS")
	}
	formats, err := ParseFormats(list, c.Output.Path)
	if err != nil {
		return err
	}
	c.Output.Formats = formats
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
