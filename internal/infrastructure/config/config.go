package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	pkgkafka "github.com/naomili-code/scamalyst/pkg/kafka"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Telemetry   TelemetryConfig
	Inference   InferenceConfig
	Kafka       KafkaConfig
	Auth        AuthConfig
	TLS         TLSConfig
	LogLevel    string
	LogFormat   string
	CORSOrigins []string
	HTTPPort    int
	GRPCPort    int
	RateLimit   int
	RateWindow  time.Duration
	MaxBodySize int64
	Reflection  bool
}

type InferenceConfig struct {
	APIKey       string
	BaseURL      string
	DefaultModel string
	// EnrichModel names the model message analyses are sent to. Empty with
	// Enrich set means DefaultModel.
	EnrichModel string
	Enrich      bool
	Timeout     time.Duration
	// Stub replaces the upstream with a canned local answer.
	Stub bool
}

// EnrichmentModel returns the model used to enrich message analyses, or ""
// when enrichment is off.
func (i InferenceConfig) EnrichmentModel() string {
	switch {
	case i.EnrichModel != "":
		return i.EnrichModel
	case i.Enrich:
		return i.DefaultModel
	default:
		return ""
	}
}

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	ClientID      string
	ConsumerGroup string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	CAFile        string
	TLS           bool
	SASLEnabled   bool
}

// Client converts the settings into the shared Kafka client configuration.
func (k KafkaConfig) Client() pkgkafka.Config {
	return pkgkafka.Config{
		Brokers:       k.Brokers,
		ClientID:      k.ClientID,
		ConsumerGroup: k.ConsumerGroup,
		TLS:           k.TLS,
		TLSCAFile:     k.CAFile,
		SASLEnabled:   k.SASLEnabled,
		SASLMechanism: k.SASLMechanism,
		SASLUsername:  k.SASLUsername,
		SASLPassword:  k.SASLPassword,
	}
}

type AuthConfig struct {
	JWTSecret        string
	JWTPublicKeyFile string
	Issuer           string
}

// Enabled reports whether bearer tokens are required on the API.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != "" || a.JWTPublicKeyFile != ""
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// Enabled reports whether both listeners should serve TLS.
func (t TLSConfig) Enabled() bool {
	return t.CertFile != "" && t.KeyFile != ""
}

type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
	SampleRatio  float64
	Insecure     bool
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		HTTPPort:    getEnvInt("HTTP_PORT", getEnvInt("PORT", 3000)),
		GRPCPort:    getEnvInt("GRPC_PORT", 9090),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		RateLimit:   getEnvInt("RATE_LIMIT", 30),
		RateWindow:  getEnvDuration("RATE_WINDOW", time.Minute),
		MaxBodySize: int64(getEnvInt("MAX_BODY_BYTES", 50*1024)),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),
		Reflection:  getEnvBool("GRPC_REFLECTION", false),
		Inference: InferenceConfig{
			APIKey:       getEnv("HF_KEY", ""),
			BaseURL:      getEnv("HF_BASE_URL", "https://api-inference.huggingface.co/models"),
			DefaultModel: getEnv("DEFAULT_MODEL", "facebook/bart-large-mnli"),
			EnrichModel:  getEnv("ENRICH_MODEL", ""),
			Enrich:       getEnvBool("ENRICH_ENABLED", false),
			Timeout:      getEnvDuration("INFERENCE_TIMEOUT", 120*time.Second),
			Stub:         getEnvBool("INFERENCE_STUB", false),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS", nil),
			Topic:         getEnv("KAFKA_TOPIC", "scamalyst.analysis"),
			ClientID:      getEnv("KAFKA_CLIENT_ID", "scamalyst"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "scamalyst-watch"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			CAFile:        getEnv("KAFKA_CA_FILE", ""),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("JWT_SECRET", ""),
			JWTPublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
			Issuer:           getEnv("JWT_ISSUER", "scamalyst"),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:     getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			SampleRatio:  getEnvFloat("OTEL_TRACES_SAMPLER_ARG", 1),
			ServiceName:  "scamalyst",
		},
	}
}

// Validate checks values that would otherwise fail late at runtime.
func (c Config) Validate() error {
	var errs []error
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort))
	}
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		errs = append(errs, fmt.Errorf("GRPC_PORT out of range: %d", c.GRPCPort))
	}
	if c.RateLimit <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT must be positive, got %d", c.RateLimit))
	}
	if c.RateWindow <= 0 {
		errs = append(errs, fmt.Errorf("RATE_WINDOW must be positive, got %s", c.RateWindow))
	}
	if c.MaxBodySize <= 0 {
		errs = append(errs, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodySize))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	if c.Kafka.SASLEnabled && c.Kafka.SASLUsername == "" {
		errs = append(errs, errors.New("KAFKA_SASL_USERNAME is required when SASL is enabled"))
	}
	if c.Inference.EnrichmentModel() != "" && c.Inference.APIKey == "" && !c.Inference.Stub {
		errs = append(errs, errors.New("message enrichment (ENRICH_MODEL or ENRICH_ENABLED) requires HF_KEY"))
	}
	return errors.Join(errs...)
}

// HTTPAddress returns the full HTTP listen address.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GRPCAddress returns the full gRPC listen address. Port 0 disables gRPC.
func (c Config) GRPCAddress() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// getEnvList splits a comma-separated variable, dropping empty entries.
func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
