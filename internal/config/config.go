// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes the settings shared
// by the gateway client and the commands built on it: backend location,
// security model, credential storage, logging, outbound rate limiting, the
// dev proxy, and observability.
package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Security model identifiers. Exactly one is active per deployment.
const (
	// ModeBearer attaches a persisted token to every request via the
	// Authorization header.
	ModeBearer = "bearer"
	// ModeSession attaches a memory-only CSRF token to state-mutating
	// requests, acquiring it lazily from the backend.
	ModeSession = "session"
)

// CORSConfig defines Cross-Origin Resource Sharing settings for the dev proxy.
type CORSConfig struct {
	AllowedOrigins []string
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "smart-wms-gateway")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the gateway and its commands.
type Config struct {
	// Backend
	BaseURL        string        // WMS_BASE_URL, e.g. "http://localhost:8080/api"
	SecurityMode   string        // bearer|session
	RequestTimeout time.Duration // transport-level timeout per request

	// Credential storage (bearer model only)
	CredentialDB string // SQLite path for the persisted bearer token

	// Logging
	LogLevel  string // debug|info|warn|error|fatal|panic
	LogPretty bool   // pretty console logs in dev

	// Outbound rate limiting
	RateRPS   float64 // tokens per second (0 disables)
	RateBurst int     // bucket size (>= 1)

	// Metrics endpoint for wmsctl ("" disables)
	MetricsAddr string

	// Dev proxy
	ProxyAddr    string // listen address, e.g. ":5173"
	ProxyBackend string // absolute backend URL the proxy forwards /api/* to
	CORS         CORSConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables, applies defaults,
// normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Backend
		BaseURL:        getenv("WMS_BASE_URL", "http://localhost:8080/api"),
		SecurityMode:   strings.ToLower(getenv("WMS_SECURITY_MODE", ModeSession)),
		RequestTimeout: getdur("WMS_REQUEST_TIMEOUT", 30*time.Second),

		// Credential storage
		CredentialDB: getenv("WMS_CREDENTIAL_DB", "credentials.db"),

		// Logging
		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty: getbool("LOG_PRETTY", false),

		// Outbound rate limiting
		RateRPS:   getfloat("WMS_RATE_RPS", 0),
		RateBurst: getint("WMS_RATE_BURST", 1),

		// Metrics
		MetricsAddr: getenv("WMS_METRICS_ADDR", ""),

		// Dev proxy
		ProxyAddr:    getenv("DEVPROXY_ADDR", ":5173"),
		ProxyBackend: getenv("DEVPROXY_BACKEND", "http://localhost:8080"),
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "smart-wms-gateway"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	switch cfg.SecurityMode {
	case ModeBearer, ModeSession:
	default:
		return cfg, errors.New("WMS_SECURITY_MODE must be bearer or session")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return cfg, errors.New("WMS_BASE_URL must not be empty")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return cfg, errors.New("WMS_BASE_URL must be a valid URL")
	}
	if cfg.RequestTimeout <= 0 {
		return cfg, errors.New("WMS_REQUEST_TIMEOUT must be a positive duration")
	}
	if cfg.SecurityMode == ModeBearer && strings.TrimSpace(cfg.CredentialDB) == "" {
		return cfg, errors.New("WMS_CREDENTIAL_DB must not be empty under the bearer model")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("WMS_RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("WMS_RATE_BURST must be >= 1")
	}
	if strings.TrimSpace(cfg.ProxyBackend) == "" {
		return cfg, errors.New("DEVPROXY_BACKEND must not be empty")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
