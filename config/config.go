package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Backend  BackendConfig  `mapstructure:"backend"`
	Identity IdentityConfig `mapstructure:"identity"`
	Wizard   WizardConfig   `mapstructure:"wizard"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test

	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RateLimit       bool          `mapstructure:"rate_limit"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// BackendConfig points at the core banking REST API.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// IdentityConfig describes the OIDC realm that issues access tokens.
// Exactly one of HMACSecret or PublicKeyPEM is used to verify signatures;
// PublicKeyPEM wins when both are set.
type IdentityConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	Realm        string `mapstructure:"realm"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
	HMACSecret   string `mapstructure:"hmac_secret"`
	PublicKeyPEM string `mapstructure:"public_key_pem"`
}

// Issuer returns the expected "iss" claim, or "" when no base URL is configured.
func (i IdentityConfig) Issuer() string {
	if i.BaseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/realms/%s", strings.TrimSuffix(i.BaseURL, "/"), i.Realm)
}

type WizardConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SubmitLockTTL time.Duration `mapstructure:"submit_lock_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: SBC_ (Secure Bank Console).
// Nested keys use underscore: SBC_BACKEND_BASE_URL, SBC_IDENTITY_REALM, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.rate_limit", true)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "bank_console")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("backend.base_url", "http://localhost:5036")
	v.SetDefault("backend.timeout", "15s")
	v.SetDefault("identity.base_url", "http://localhost:8180")
	v.SetDefault("identity.realm", "securebank")
	v.SetDefault("identity.client_id", "bank-console")
	v.SetDefault("identity.client_secret", "")
	v.SetDefault("identity.redirect_url", "http://localhost:4200/app")
	v.SetDefault("identity.hmac_secret", "")
	v.SetDefault("identity.public_key_pem", "")
	v.SetDefault("wizard.ttl", "30m")
	v.SetDefault("wizard.submit_lock_ttl", "30s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: SBC_BACKEND_BASE_URL -> backend.base_url
	v.SetEnvPrefix("SBC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// A submit still waiting on the backend must keep its lock, or the next
	// holder would take its loading flag for a stale one.
	if cfg.Wizard.SubmitLockTTL <= cfg.Backend.Timeout {
		return nil, fmt.Errorf("wizard.submit_lock_ttl (%s) must exceed backend.timeout (%s)",
			cfg.Wizard.SubmitLockTTL, cfg.Backend.Timeout)
	}

	return &cfg, nil
}
