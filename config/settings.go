package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/knadh/koanf/v2"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// Config holds every setting the service reads at startup.
type Config struct {
	Port         int
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	JWTSecret string
	JWTExpiry time.Duration

	DatabaseDSN string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string
	ReplicaDSNs []string

	AcceptedOrigins []string
	MetricsEnabled  bool

	AdminEmail    string
	AdminPassword string

	GenerateColumnReport bool
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Load reads the configuration from the environment, layered over the YAML
// file named by configFile when it is not empty.
func Load(configFile string) (Config, error) {
	k, err := New(configFile)
	if err != nil {
		return Config{}, err
	}
	return FromKoanf(k)
}

func FromKoanf(k *koanf.Koanf) (Config, error) {
	cfg := Config{
		Port:         GetInt(k, "port", 5000),
		Environment:  GetString(k, "environment", EnvironmentProduction),
		ReadTimeout:  GetDuration(k, "read_timeout", 10*time.Second),
		WriteTimeout: GetDuration(k, "write_timeout", 30*time.Second),
		IdleTimeout:  GetDuration(k, "idle_timeout", 120*time.Second),

		JWTSecret: GetString(k, "jwt_secret", ""),
		JWTExpiry: GetDuration(k, "jwt_expiry", 30*24*time.Hour),

		DatabaseDSN: GetString(k, "database_url", ""),
		DBHost:      GetString(k, "db_host", "localhost"),
		DBUser:      GetString(k, "db_user", "postgres"),
		DBPassword:  GetString(k, "db_password", ""),
		DBName:      GetString(k, "db_name", "workcity"),
		DBPort:      GetString(k, "db_port", "5432"),
		DBSSLMode:   GetString(k, "db_sslmode", "disable"),
		ReplicaDSNs: GetStrings(k, "db_replica_dsns"),

		AcceptedOrigins: GetStrings(k, "accepted_origins"),
		MetricsEnabled:  GetBool(k, "metrics_enabled", true),

		AdminEmail:    GetString(k, "admin_email", ""),
		AdminPassword: GetString(k, "admin_password", ""),

		GenerateColumnReport: GetBool(k, "generate_column_report", false),
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %d", cfg.Port)
	}
	return cfg, nil
}

// IsDevelopment reports whether fault responses may carry stack traces.
func (c Config) IsDevelopment() bool {
	return c.Environment == EnvironmentDevelopment
}

// DSN returns DATABASE_URL when set, otherwise a keyword/value connection
// string built from the DB_* settings.
func (c Config) DSN() string {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// SafeDSN is DSN with the password removed, for logging.
func (c Config) SafeDSN() string {
	if c.DatabaseDSN == "" {
		return fmt.Sprintf("host=%s user=%s dbname=%s port=%s sslmode=%s",
			c.DBHost, c.DBUser, c.DBName, c.DBPort, c.DBSSLMode)
	}
	u, err := url.Parse(c.DatabaseDSN)
	if err != nil || u.User == nil {
		return "<redacted>"
	}
	u.User = url.User(u.User.Username())
	return u.String()
}
