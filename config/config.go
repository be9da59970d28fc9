package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the process needs, resolved once at startup and
// passed explicitly to the components that use it.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Media     MediaConfig     `mapstructure:"media"`
	ShortLink ShortLinkConfig `mapstructure:"shortlink"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

type ServerConfig struct {
	Addr            string `mapstructure:"addr"`
	Mode            string `mapstructure:"mode"` // gin mode: debug|release|test
	DefaultPageSize int    `mapstructure:"default_page_size"`
	RateLimitRPS    int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst  int    `mapstructure:"rate_limit_burst"`
	// FrontendBaseURL prefixes short-link redirect targets; empty keeps
	// redirects relative to the serving host.
	FrontendBaseURL string `mapstructure:"frontend_base_url"`
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // postgres|sqlite
	DSN             string `mapstructure:"dsn"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // seconds
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type MediaConfig struct {
	Root    string `mapstructure:"root"`     // filesystem directory for uploads
	BaseURL string `mapstructure:"base_url"` // public prefix, e.g. /media/
}

type ShortLinkConfig struct {
	BaseURL  string        `mapstructure:"base_url"` // prefix for generated short links
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

type TracingConfig struct {
	Endpoint string `mapstructure:"endpoint"` // OTLP/HTTP collector, empty disables tracing
}

// Load reads config.yaml (if present) and FOODGRAM_* env vars, env winning.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("FOODGRAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.default_page_size", 6)
	v.SetDefault("server.rate_limit_rps", 20)
	v.SetDefault("server.rate_limit_burst", 40)
	v.SetDefault("server.frontend_base_url", "")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=localhost user=foodgram password=foodgram dbname=foodgram port=5432 sslmode=disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 3600)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "dev-secret-change-me")
	v.SetDefault("auth.token_ttl", 24*time.Hour)

	v.SetDefault("media.root", "./media")
	v.SetDefault("media.base_url", "/media/")

	v.SetDefault("shortlink.base_url", "http://localhost:8000/s/")
	v.SetDefault("shortlink.cache_ttl", time.Hour)
}
