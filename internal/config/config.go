package config

import (
	"os"
	"strconv"
	"strings"

	"gogeomap/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Render  RenderConfig
	Upload  UploadConfig
	Logging LoggingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	APIPort string
	GinMode string
}

// RenderConfig holds map document settings
type RenderConfig struct {
	Zoom         int
	MarkerRadius float64
	MarkerColor  string
	TileURL      string
	Attribution  string
	ArchiveName  string
	SummaryLimit int
}

// UploadConfig holds upload limits
type UploadConfig struct {
	MaxUploadMB int64
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// MaxUploadBytes returns the upload limit in bytes
func (c UploadConfig) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// Default returns the configuration used when no environment overrides are set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    "8080",
			APIPort: "8081",
			GinMode: "release",
		},
		Render: RenderConfig{
			Zoom:         12,
			MarkerRadius: 3,
			MarkerColor:  "blue",
			TileURL:      "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution:  "&copy; OpenStreetMap contributors",
			ArchiveName:  "generated_maps.zip",
			SummaryLimit: 10,
		},
		Upload: UploadConfig{
			MaxUploadMB: 32,
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	def := Default()
	config := &Config{
		Server:  *loadServerConfig(def.Server),
		Render:  *loadRenderConfig(def.Render),
		Upload:  *loadUploadConfig(def.Upload),
		Logging: LoggingConfig{Level: getEnvOrDefault("LOG_LEVEL", def.Logging.Level)},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig(def ServerConfig) *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", def.Port),
		APIPort: getEnvOrDefault("API_PORT", def.APIPort),
		GinMode: getEnvOrDefault("GIN_MODE", def.GinMode),
	}
}

func loadRenderConfig(def RenderConfig) *RenderConfig {
	return &RenderConfig{
		Zoom:         getEnvIntOrDefault("MAP_ZOOM", def.Zoom),
		MarkerRadius: getEnvFloatOrDefault("MARKER_RADIUS", def.MarkerRadius),
		MarkerColor:  getEnvOrDefault("MARKER_COLOR", def.MarkerColor),
		TileURL:      getEnvOrDefault("TILE_URL", def.TileURL),
		Attribution:  getEnvOrDefault("TILE_ATTRIBUTION", def.Attribution),
		ArchiveName:  getEnvOrDefault("ARCHIVE_NAME", def.ArchiveName),
		SummaryLimit: getEnvIntOrDefault("SUMMARY_LIMIT", def.SummaryLimit),
	}
}

func loadUploadConfig(def UploadConfig) *UploadConfig {
	return &UploadConfig{
		MaxUploadMB: int64(getEnvIntOrDefault("MAX_UPLOAD_MB", int(def.MaxUploadMB))),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if config.Render.Zoom < 0 || config.Render.Zoom > 22 {
		return errors.ConfigInvalid("MAP_ZOOM must be between 0 and 22")
	}
	if config.Render.MarkerRadius <= 0 {
		return errors.ConfigInvalid("MARKER_RADIUS must be positive")
	}
	if !strings.HasSuffix(strings.ToLower(config.Render.ArchiveName), ".zip") {
		return errors.ConfigInvalid("ARCHIVE_NAME must end in .zip")
	}
	if config.Render.SummaryLimit <= 0 {
		return errors.ConfigInvalid("SUMMARY_LIMIT must be positive")
	}
	if config.Upload.MaxUploadMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
