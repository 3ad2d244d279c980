package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Upload    UploadConfig    `yaml:"upload"`
	Report    ReportConfig    `yaml:"report"`
	Renderer  RendererConfig  `yaml:"renderer"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Cleanup   CleanupConfig   `yaml:"cleanup"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// UploadConfig contains spreadsheet upload settings
type UploadConfig struct {
	MaxFileSizeMB     int      `yaml:"max_file_size_mb"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
}

// ReportConfig contains report content settings
type ReportConfig struct {
	PropertyName string `yaml:"property_name"`
	Year         int    `yaml:"year"`
}

// RendererConfig contains the headless Chrome PDF renderer settings
type RendererConfig struct {
	ChromePath     string `yaml:"chrome_path"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	WorkDir        string `yaml:"work_dir"`
}

// RateLimitConfig contains rate limiting settings for upload and
// report-generation endpoints
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
	RequestsPerHour   int  `yaml:"requests_per_hour"`
}

// CleanupConfig contains settings for the render-artifact sweep
type CleanupConfig struct {
	RetentionHours  int    `yaml:"retention_hours"`
	DailyRunEnabled bool   `yaml:"daily_run_enabled"`
	DailyRunTime    string `yaml:"daily_run_time"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8085,
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Upload: UploadConfig{
			MaxFileSizeMB:     50,
			AllowedExtensions: []string{".xlsx", ".xls"},
		},
		Report: ReportConfig{
			PropertyName: "Holiday Inn Express Markham",
			Year:         2026,
		},
		Renderer: RendererConfig{
			TimeoutSeconds: 30,
			WorkDir:        os.TempDir(),
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 10,
			RequestsPerHour:   120,
		},
		Cleanup: CleanupConfig{
			RetentionHours:  24,
			DailyRunEnabled: true,
			DailyRunTime:    "03:00",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file. A missing file is not
// an error; defaults apply.
func LoadConfig(filepath string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// MaxFileSizeBytes returns the upload size cap in bytes.
func (c *UploadConfig) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}

// GetTimeout returns the renderer timeout as a duration.
func (c *RendererConfig) GetTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Retention returns the cleanup retention as a duration.
func (c *CleanupConfig) Retention() time.Duration {
	return time.Duration(c.RetentionHours) * time.Hour
}
