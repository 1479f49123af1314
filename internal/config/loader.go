package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads .env files, the yaml config and environment overrides, in that
// order. Missing config files are fine: every knob has a default or an env
// fallback, and the local-only commands run with an empty config.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// loadEnvFile mirrors the deployment convention: .env.local wins over .env,
// both looked up from the working directory.
func loadEnvFile() {
	for _, path := range []string{".env.local", ".env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = "plantillas"
	}

	if cfg.Templates.Dir == "" {
		cfg.Templates.Dir = "plantillas"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

// overrideEmptyConfig fills fields still empty after file + automatic-env
// merge from their conventional environment variable names.
func overrideEmptyConfig(cfg *Config) {
	set := func(dst *string, envKeys ...string) {
		if *dst != "" {
			return
		}
		for _, key := range envKeys {
			if val := os.Getenv(key); val != "" {
				*dst = val
				return
			}
		}
	}

	set(&cfg.Database.Postgres.Host, "DB_HOST")
	set(&cfg.Database.Postgres.Database, "DB_NAME")
	set(&cfg.Database.Postgres.User, "DB_USER")
	set(&cfg.Database.Postgres.Password, "DB_PASSWORD")

	set(&cfg.Storage.Endpoint, "STORAGE_ENDPOINT")
	set(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	set(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")
	set(&cfg.Storage.Bucket, "STORAGE_BUCKET")
}
