package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "PELADA_"
	configFileEnv = "PELADA_CONFIG"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL     string `koanf:"database_url"`
	JWTSecretKey    string `koanf:"jwt_secret_key"`
	ServerPort      int    `koanf:"server_port"`
	LogLevel        string `koanf:"log_level"`
	TokenTTLMinutes int    `koanf:"token_ttl_minutes"`

	// CORSAllowedOrigins is a comma separated list; "*" allows any origin.
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`

	R2AccountID       string `koanf:"r2_account_id"`
	R2AccessKeyID     string `koanf:"r2_access_key_id"`
	R2SecretAccessKey string `koanf:"r2_secret_access_key"`
	R2BucketName      string `koanf:"r2_bucket_name"`
	R2PublicBaseURL   string `koanf:"r2_public_base_url"`
}

// Defaults returns the configuration used when nothing overrides a key.
func Defaults() Config {
	return Config{
		ServerPort:         8080,
		LogLevel:           "info",
		TokenTTLMinutes:    30,
		CORSAllowedOrigins: "*",
	}
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML файл из
// PELADA_CONFIG (если задан), затем переменные окружения PELADA_*.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if path := os.Getenv(configFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	// PELADA_SERVER_PORT -> server_port
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg := Defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("%sDATABASE_URL is not set", envPrefix)
	}
	if c.JWTSecretKey == "" {
		return fmt.Errorf("%sJWT_SECRET_KEY is not set", envPrefix)
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.ServerPort)
	}
	if c.TokenTTLMinutes <= 0 {
		return fmt.Errorf("token ttl must be positive, got %d minutes", c.TokenTTLMinutes)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.LogLevel)
	}

	r2 := []string{c.R2AccountID, c.R2AccessKeyID, c.R2SecretAccessKey, c.R2BucketName, c.R2PublicBaseURL}
	set := 0
	for _, v := range r2 {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(r2) {
		return fmt.Errorf("incomplete R2 configuration: either set all %sR2_* variables or none", envPrefix)
	}
	return nil
}

// StorageEnabled reports whether ranking PDFs can be published to R2.
func (c *Config) StorageEnabled() bool {
	return c.R2BucketName != ""
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// AllowedOrigins splits CORSAllowedOrigins into trimmed, non-empty entries.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
