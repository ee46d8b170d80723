package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// secretKeys are never stored in config.yaml, so they are bound to env explicitly.
var secretKeys = []string{"postgres.user", "postgres.password", "postgres.db"}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	setDefaults(v)

	for _, key := range secretKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "domino-league-service")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.port", 8080)

	v.SetDefault("http.read_timeout", 10)
	v.SetDefault("http.write_timeout", 15)
	v.SetDefault("http.shutdown_timeout", 10)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)

	v.SetDefault("ranking.name_lookup_concurrency", 8)
}
