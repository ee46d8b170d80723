package config

import (
	"github.com/dominoleague/league-service/internal/logger"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	HTTP     HTTPConfig          `mapstructure:"http"`
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	Ranking  RankingConfig       `mapstructure:"ranking"`
}

type AppConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Port    int    `mapstructure:"port" validate:"min=1,max=65535"`
}

// HTTPConfig holds server timeouts in seconds.
type HTTPConfig struct {
	ReadTimeout     int `mapstructure:"read_timeout" validate:"min=1"`
	WriteTimeout    int `mapstructure:"write_timeout" validate:"min=1"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout" validate:"min=1"`
}

// PostgresConfig mirrors pgxpool tuning knobs; durations are seconds.
// Credentials are expected from APP_POSTGRES_* env, never from the yaml file.
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"min=1,max=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password" validate:"required"`
	DBName            string `mapstructure:"db" validate:"required"`
	SSLMode           string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"min=1"`
	MinConns          int32  `mapstructure:"min_conns" validate:"min=0"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
}

// RankingConfig tunes competition finalization.
type RankingConfig struct {
	// NameLookupConcurrency bounds parallel player lookups while assembling results.
	NameLookupConcurrency int `mapstructure:"name_lookup_concurrency" validate:"min=1,max=64"`
}
