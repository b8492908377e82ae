package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	pstrings "fordeling/pkg/platform/strings"
)

// Server captures process level configuration.
type Server struct {
	Addr      string `env:"FORDELING_ADDR" envDefault:":8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Norg     NorgConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Units    UnitsConfig
	Database DatabaseConfig
	Tracing  TracingConfig
}

// NorgConfig configures the organizational lookup client.
type NorgConfig struct {
	URL        string        `env:"NORG_URL"`
	Timeout    time.Duration `env:"NORG_TIMEOUT" envDefault:"5s"`
	ConsumerID string        `env:"NORG_CONSUMER_ID" envDefault:"fordeling"`
	// CacheTTL of zero disables the lookup cache.
	CacheTTL time.Duration `env:"LOOKUP_CACHE_TTL" envDefault:"10m"`
}

// Enabled reports whether a NORG base URL is configured.
func (n NorgConfig) Enabled() bool { return n.URL != "" }

// RedisConfig configures the optional shared lookup cache.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"2s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"500ms"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"500ms"`
}

// KafkaConfig configures the inbound case event consumer.
type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"eessi-basis-sedmottatt-v1"`
	Group   string   `env:"KAFKA_GROUP" envDefault:"fordeling"`
}

// Enabled reports whether brokers are configured.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// Unit table sources.
const (
	UnitsSourceEmbedded = "embedded"
	UnitsSourceFile     = "file"
	UnitsSourcePostgres = "postgres"
)

// UnitsConfig selects where the unit registry is loaded from.
type UnitsConfig struct {
	Source string `env:"UNITS_SOURCE" envDefault:"embedded"`
	File   string `env:"UNITS_FILE"`
}

// DatabaseConfig configures Postgres, used only as a unit table source.
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"4"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// TracingConfig configures span export. An empty endpoint keeps tracing off.
type TracingConfig struct {
	Endpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string  `env:"OTEL_SERVICE_NAME" envDefault:"fordeling"`
	SampleRatio float64 `env:"OTEL_TRACES_SAMPLER_RATIO" envDefault:"1"`
}

// Enabled reports whether an exporter endpoint is configured.
func (t TracingConfig) Enabled() bool { return t.Endpoint != "" }

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Kafka.Brokers = pstrings.NormalizeList(cfg.Kafka.Brokers)
	if err := cfg.validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (s Server) validate() error {
	switch s.Units.Source {
	case UnitsSourceEmbedded:
	case UnitsSourceFile:
		if s.Units.File == "" {
			return fmt.Errorf("UNITS_FILE is required when UNITS_SOURCE=%s", UnitsSourceFile)
		}
	case UnitsSourcePostgres:
		if s.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when UNITS_SOURCE=%s", UnitsSourcePostgres)
		}
	default:
		return fmt.Errorf("unknown UNITS_SOURCE %q", s.Units.Source)
	}
	if s.Norg.Timeout <= 0 {
		return fmt.Errorf("NORG_TIMEOUT must be positive")
	}
	if s.Tracing.SampleRatio < 0 || s.Tracing.SampleRatio > 1 {
		return fmt.Errorf("OTEL_TRACES_SAMPLER_RATIO must be between 0 and 1")
	}
	return nil
}
