package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Generator GeneratorConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AuthConfig holds API access settings. A single shared API key guards the
// claim endpoints; an empty key disables the check (development only).
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// StorageConfig holds archive storage settings for original uploads.
type StorageConfig struct {
	Provider      string `mapstructure:"provider"` // "local" or "s3"
	LocalDir      string `mapstructure:"local_dir"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// GeneratorConfig holds structured-generator (LLM) provider settings.
type GeneratorConfig struct {
	Provider        string `mapstructure:"provider"`
	APIKey          string `mapstructure:"api_key"`
	DefaultModel    string `mapstructure:"default_model"`
	MaxRetries      int    `mapstructure:"max_retries"`
	TimeoutSecs     int    `mapstructure:"timeout_secs"`
	TaskTimeoutSecs int    `mapstructure:"task_timeout_secs"`
}

// Timeout returns the per-call HTTP timeout for generator invocations.
func (g *GeneratorConfig) Timeout() time.Duration {
	if g.TimeoutSecs <= 0 {
		return 120 * time.Second
	}
	return time.Duration(g.TimeoutSecs) * time.Second
}

// TaskTimeout returns the individual timeout carried by each extraction task.
func (g *GeneratorConfig) TaskTimeout() time.Duration {
	if g.TaskTimeoutSecs <= 0 {
		return 180 * time.Second
	}
	return time.Duration(g.TaskTimeoutSecs) * time.Second
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the CLAIMDESK_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLAIMDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Auth defaults
	v.SetDefault("auth.api_key", "")

	// Storage defaults
	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.local_dir", "uploaded_documents")
	v.SetDefault("storage.region", "ap-south-1")
	v.SetDefault("storage.bucket", "claimdesk-uploads")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.max_file_size_mb", 50)

	// Generator defaults
	v.SetDefault("generator.provider", "gemini")
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.default_model", "gemini-2.5-flash")
	v.SetDefault("generator.max_retries", 3)
	v.SetDefault("generator.timeout_secs", 120)
	v.SetDefault("generator.task_timeout_secs", 180)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "CLAIMDESK_SERVER_PORT",
		"server.read_timeout":         "CLAIMDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "CLAIMDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":          "CLAIMDESK_SERVER_ENVIRONMENT",
		"log.level":                   "CLAIMDESK_LOG_LEVEL",
		"log.format":                  "CLAIMDESK_LOG_FORMAT",
		"auth.api_key":                "CLAIMDESK_AUTH_API_KEY",
		"storage.provider":            "CLAIMDESK_STORAGE_PROVIDER",
		"storage.local_dir":           "CLAIMDESK_STORAGE_LOCAL_DIR",
		"storage.region":              "CLAIMDESK_STORAGE_REGION",
		"storage.bucket":              "CLAIMDESK_STORAGE_BUCKET",
		"storage.endpoint":            "CLAIMDESK_STORAGE_ENDPOINT",
		"storage.access_key":          "CLAIMDESK_STORAGE_ACCESS_KEY",
		"storage.secret_key":          "CLAIMDESK_STORAGE_SECRET_KEY",
		"storage.max_file_size_mb":    "CLAIMDESK_STORAGE_MAX_FILE_SIZE_MB",
		"generator.provider":          "CLAIMDESK_GENERATOR_PROVIDER",
		"generator.api_key":           "CLAIMDESK_GENERATOR_API_KEY",
		"generator.default_model":     "CLAIMDESK_GENERATOR_DEFAULT_MODEL",
		"generator.max_retries":       "CLAIMDESK_GENERATOR_MAX_RETRIES",
		"generator.timeout_secs":      "CLAIMDESK_GENERATOR_TIMEOUT_SECS",
		"generator.task_timeout_secs": "CLAIMDESK_GENERATOR_TASK_TIMEOUT_SECS",
		"cors.allowed_origins":        "CLAIMDESK_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding env %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Viper reads comma-separated origins from env as a single string
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		cfg.CORS.AllowedOrigins = strings.Split(cfg.CORS.AllowedOrigins[0], ",")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Provider {
	case "local", "s3":
	default:
		return fmt.Errorf("unknown storage provider: %s", c.Storage.Provider)
	}
	if c.Generator.Provider == "gemini" && c.Generator.APIKey == "" && c.Server.Environment == "production" {
		return fmt.Errorf("generator.api_key is required in production")
	}
	return nil
}
