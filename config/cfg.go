package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
	httpapi "github.com/zero2prod/newsletter/internal/api/http"
	"github.com/zero2prod/newsletter/internal/store"
	"github.com/zero2prod/newsletter/log"
)

// Config represents the global configuration for the service.
type Config struct {
	Database store.Config   `mapstructure:"database"`
	Logger   log.Config     `mapstructure:"logger"`
	HTTP     httpapi.Config `mapstructure:"http"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
// Nested keys map to upper case with double underscore, e.g. DATABASE__DSN
// for database.dsn; the flat names bound in bindEnvVars work as well.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	setDefaults(v)
	bindEnvVars(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			// If config file doesn't exist, continue with env vars only
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/config/newsletter")
		v.AddConfigPath("/etc/newsletter")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %w", err)
	}

	if err := config.Database.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}
	if _, err := config.Database.ConnectionString(); err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.address", "127.0.0.1")
	v.SetDefault("http.port", "8000")
	v.SetDefault("http.request_timeout", "60s")
	v.SetDefault("http.subscribe_rate_limit", 0)
	v.SetDefault("http.subscribe_rate_window", "1h")

	v.SetDefault("database.driver", store.DriverMySQL)
	v.SetDefault("database.host", "127.0.0.1")

	v.SetDefault("logger.level", 0)
	v.SetDefault("logger.add_source", false)
}

// bindEnvVars binds environment variables to config keys
// This allows using both nested keys (DATABASE__DSN) and flat keys (DATABASE_DSN)
func bindEnvVars(v *viper.Viper) {
	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.dsn", "DATABASE_DSN")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.username", "DATABASE_USERNAME")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.database_name", "DATABASE_NAME")
	v.BindEnv("database.require_ssl", "DATABASE_REQUIRE_SSL")
	v.BindEnv("database.tls_ca_path", "DATABASE_TLS_CA_PATH")
	v.BindEnv("database.automigrate", "DATABASE_AUTOMIGRATE")
	v.BindEnv("database.max_open_connections", "DATABASE_MAX_OPEN_CONNECTIONS")
	v.BindEnv("database.max_idle_connections", "DATABASE_MAX_IDLE_CONNECTIONS")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")
	v.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	v.BindEnv("http.port", "HTTP_PORT", "APP_PORT")
	v.BindEnv("http.address", "HTTP_ADDRESS")
	v.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")
	v.BindEnv("http.request_timeout", "HTTP_REQUEST_TIMEOUT")
	v.BindEnv("http.subscribe_rate_limit", "HTTP_SUBSCRIBE_RATE_LIMIT")
	v.BindEnv("http.subscribe_rate_window", "HTTP_SUBSCRIBE_RATE_WINDOW")
}
