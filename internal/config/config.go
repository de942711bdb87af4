// Package config reads the sidecar's process configuration from the
// environment once at startup, following the teacher's
// functional-options-with-validated-defaults pattern.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dilipkumar2k6/uuid-generation/internal/core/array"
)

// GeneratorType selects which ID generation strategy the sidecar runs.
type GeneratorType string

const (
	Snowflake       GeneratorType = "SNOWFLAKE"
	HLCSnowflake    GeneratorType = "HLC_SNOWFLAKE"
	InstaSnowflake  GeneratorType = "INSTA_SNOWFLAKE"
	Sonyflake       GeneratorType = "SONYFLAKE"
	UUIDv4          GeneratorType = "UUIDV4"
	UUIDv7          GeneratorType = "UUIDV7"
	ULID            GeneratorType = "ULID"
	DBAutoInc       GeneratorType = "DB_AUTO_INC"
	DualBuffer      GeneratorType = "DUAL_BUFFER"
	EtcdSnowflake   GeneratorType = "ETCD_SNOWFLAKE"
	RedisSnowflake  GeneratorType = "REDIS_SNOWFLAKE"
	Spanner         GeneratorType = "SPANNER"
	SpannerTrueTime GeneratorType = "SPANNER_TRUETIME"

	defaultGeneratorType = Snowflake
)

// Config is the immutable process configuration, read once at startup.
type Config struct {
	GeneratorType GeneratorType

	TCPHost     string
	TCPPort     int
	TCPCertFile string
	TCPKeyFile  string

	MetricsHost string
	MetricsPort int

	PprofHost string
	PprofPort int

	LogLevel  string
	LogFormat string

	OTLPHost string
	OTLPPort string

	ServiceName    string
	ServiceVersion string
	DeploymentEnv  string

	DBHost string
	DBPort int
	DBUser string
	DBPass string
	DBName string

	EtcdServiceHost string
	EtcdServicePort int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SpannerEmulatorHost string
	SpannerProjectID    string
	SpannerInstanceID   string
	SpannerDatabaseID   string
}

// Option customizes a Config during construction. Primarily used by tests
// that want to override a subset of fields without re-reading the
// environment.
type Option func(*Config)

// WithGeneratorType overrides the selected generator.
func WithGeneratorType(t GeneratorType) Option {
	return func(c *Config) { c.GeneratorType = t }
}

// FromEnv builds a Config from the process environment, applying defaults
// for anything unset and then any supplied overrides.
func FromEnv(opts ...Option) *Config {
	cfg := &Config{
		GeneratorType: normalizeGeneratorType(getEnv("GENERATOR_TYPE", string(defaultGeneratorType))),

		TCPHost:     getEnv("TCP_HOST", "0.0.0.0"),
		TCPPort:     getEnvInt("TCP_PORT", 7000),
		TCPCertFile: getEnv("TCP_CERT_FILE", ""),
		TCPKeyFile:  getEnv("TCP_KEY_FILE", ""),

		MetricsHost: getEnv("METRICS_HOST", "0.0.0.0"),
		MetricsPort: getEnvInt("METRICS_PORT", 9090),

		PprofHost: getEnv("PPROF_HOST", "0.0.0.0"),
		PprofPort: getEnvInt("PPROF_PORT", 6060),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		OTLPHost: getEnv("OTLP_HOST", "localhost"),
		OTLPPort: getEnv("OTLP_PORT", "4318"),

		ServiceName:    getEnv("SERVICE_NAME", "uuid-generation"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		DeploymentEnv:  getEnv("DEPLOYMENT_ENV", "development"),

		DBHost: getEnv("DB_HOST", "127.0.0.1"),
		DBPort: getEnvInt("DB_PORT", 6033), // ProxySQL port; see DESIGN.md, "Open Question decisions".
		DBUser: getEnv("DB_USER", "root"),
		DBPass: getEnv("DB_PASS", ""),
		DBName: getEnv("DB_NAME", "uuid_generation"),

		EtcdServiceHost: getEnv("ETCD_SERVICE_HOST", "127.0.0.1"),
		EtcdServicePort: getEnvInt("ETCD_SERVICE_PORT", 2379),

		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		SpannerEmulatorHost: getEnv("SPANNER_EMULATOR_HOST", ""),
		SpannerProjectID:    getEnv("SPANNER_PROJECT_ID", "uuid-generation"),
		SpannerInstanceID:   getEnv("SPANNER_INSTANCE_ID", "uuid-generation"),
		SpannerDatabaseID:   getEnv("SPANNER_DATABASE_ID", "uuid-generation"),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// EtcdBaseURL is the etcd v3 HTTP gateway's base address.
func (c *Config) EtcdBaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.EtcdServiceHost, c.EtcdServicePort)
}

// MySQLDSN composes the DSN consumed by the go-sql-driver/mysql driver.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

// TCPAddr is the listen address for the identifier-issuing TCP sidecar.
func (c *Config) TCPAddr() string {
	return fmt.Sprintf("%s:%d", c.TCPHost, c.TCPPort)
}

// SpannerBaseURL is the REST surface base address for the Spanner-compatible
// endpoint, honoring SPANNER_EMULATOR_HOST when set.
func (c *Config) SpannerBaseURL() string {
	host := c.SpannerEmulatorHost
	if host == "" {
		host = "spanner.googleapis.com"
	}
	return fmt.Sprintf("http://%s/v1/projects/%s/instances/%s/databases/%s",
		host, c.SpannerProjectID, c.SpannerInstanceID, c.SpannerDatabaseID)
}

// validGeneratorTypes lists every accepted GENERATOR_TYPE value (§6).
var validGeneratorTypes = []GeneratorType{
	Snowflake, HLCSnowflake, InstaSnowflake, Sonyflake, UUIDv4, UUIDv7, ULID,
	DBAutoInc, DualBuffer, EtcdSnowflake, RedisSnowflake, Spanner, SpannerTrueTime,
}

func normalizeGeneratorType(raw string) GeneratorType {
	if array.Contains(validGeneratorTypes, GeneratorType(raw)) {
		return GeneratorType(raw)
	}
	return defaultGeneratorType
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// ReadTimeoutDefault is the read-header timeout of the pprof server. The etcd
// and Spanner HTTP clients set their own 5 s timeout and do not read it.
const ReadTimeoutDefault = 5 * time.Second
