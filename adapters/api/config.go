package api

import (
	"time"

	"gogeomap/internal/config"
)

// APIConfig holds configuration for the JSON API adapter
type APIConfig struct {
	Port           string        `json:"port"`
	MaxUploadBytes int64         `json:"max_upload_bytes"`
	RequestTimeout time.Duration `json:"request_timeout"`
	CompressLevel  int           `json:"compress_level"`
}

// DefaultAPIConfig returns sensible defaults for the API adapter
func DefaultAPIConfig() APIConfig {
	return APIConfig{
		Port:           "8081",
		MaxUploadBytes: 32 << 20,
		RequestTimeout: 60 * time.Second,
		CompressLevel:  5,
	}
}

// APIConfigFrom derives the adapter configuration from application config
func APIConfigFrom(cfg *config.Config) APIConfig {
	c := DefaultAPIConfig()
	c.Port = cfg.Server.APIPort
	c.MaxUploadBytes = cfg.Upload.MaxUploadBytes()
	return c
}
