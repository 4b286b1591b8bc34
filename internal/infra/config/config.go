package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/argon2"
	"gopkg.in/yaml.v3"
)

// envPrefix prefixes every environment override.
const envPrefix = "DEBATEBOT_"

// Config is the top-level configuration.
type Config struct {
	Environment  string             `yaml:"environment"`
	Server       ServerConfig       `yaml:"server"`
	GRPC         GRPCConfig         `yaml:"grpc"`
	Conversation ConversationConfig `yaml:"conversation"`
	Debate       DebateConfig       `yaml:"debate"`
	Store        StoreConfig        `yaml:"store"`
	Retention    RetentionConfig    `yaml:"retention"`
	Events       EventsConfig       `yaml:"events"`
	Logger       LoggerConfig       `yaml:"logger"`
	Tracer       TracerConfig       `yaml:"tracer"`
	Metrics      MetricsConfig      `yaml:"metrics"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string          `yaml:"addr"`
	ReadTimeout     time.Duration   `yaml:"read_timeout"`
	WriteTimeout    time.Duration   `yaml:"write_timeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64           `yaml:"max_body_bytes"`
	CORSOrigins     []string        `yaml:"cors_origins"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
	WebSocket       bool            `yaml:"websocket"`
}

// RateLimitConfig configures the per-client token bucket.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// GRPCConfig holds the gRPC listener settings.
type GRPCConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// ConversationConfig controls history size and turn deadlines.
type ConversationConfig struct {
	MaxHistory      int           `yaml:"max_history"`
	ResponseTimeout time.Duration `yaml:"response_timeout"`
}

// DebateConfig controls persona selection. A zero seed draws from the
// process-wide random source.
type DebateConfig struct {
	Seed uint64 `yaml:"seed"`
}

// StoreConfig selects and configures the conversation repository.
type StoreConfig struct {
	Backend        string               `yaml:"backend"` // memory | sqlite | redis
	SQLitePath     string               `yaml:"sqlite_path"`
	RedisURL       string               `yaml:"redis_url"`
	KeyPrefix      string               `yaml:"key_prefix"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
}

// CircuitBreakerConfig holds circuit breaker settings for the store.
type CircuitBreakerConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxFailures uint32        `yaml:"max_failures"`
	Timeout     time.Duration `yaml:"timeout"`
	Interval    time.Duration `yaml:"interval"`
}

// RetentionConfig controls the idle-conversation sweeper.
type RetentionConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Schedule string        `yaml:"schedule"`
	MaxIdle  time.Duration `yaml:"max_idle"`
}

// EventsConfig configures event subscribers.
type EventsConfig struct {
	Audit bool        `yaml:"audit"`
	Kafka KafkaConfig `yaml:"kafka"`
}

// KafkaConfig configures the Kafka event exporter.
type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// TracerConfig holds tracing settings.
type TracerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
	Endpoint string `yaml:"endpoint"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool { return strings.EqualFold(c.Environment, "development") }

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool { return strings.EqualFold(c.Environment, "production") }

// defaultDataDir returns the persistent data directory under $HOME/.debatebot/data.
// Falls back to "./data" if $HOME cannot be determined.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(home, ".debatebot", "data")
}

// Defaults returns a Config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Addr:            "0.0.0.0:8000",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    45 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
			CORSOrigins:     []string{"http://localhost:3000", "http://localhost:8080"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerSecond: 5,
				Burst:             20,
			},
			WebSocket: true,
		},
		GRPC: GRPCConfig{
			Enabled: false,
			Addr:    "0.0.0.0:9000",
		},
		Conversation: ConversationConfig{
			MaxHistory:      5,
			ResponseTimeout: 30 * time.Second,
		},
		Store: StoreConfig{
			Backend:    "memory",
			SQLitePath: filepath.Join(defaultDataDir(), "conversations.db"),
			KeyPrefix:  "debatebot:",
			CircuitBreaker: CircuitBreakerConfig{
				Enabled:     true,
				MaxFailures: 5,
				Timeout:     30 * time.Second,
				Interval:    60 * time.Second,
			},
		},
		Retention: RetentionConfig{
			Enabled:  true,
			Schedule: "@every 10m",
			MaxIdle:  24 * time.Hour,
		},
		Events: EventsConfig{
			Audit: true,
			Kafka: KafkaConfig{
				Topic: "debatebot.events",
			},
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Tracer: TracerConfig{
			Exporter: "stdout",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load reads a YAML config file, applies env var overrides, and decrypts secrets.
// A missing file yields the defaults with overrides applied.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		if err := validatePermissions(absPath); err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	ApplyEnvOverrides(cfg)

	if passphrase := os.Getenv(envPrefix + "CONFIG_KEY"); passphrase != "" {
		if err := decryptSecrets(cfg, passphrase); err != nil {
			return nil, fmt.Errorf("decrypt secrets: %w", err)
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides maps DEBATEBOT_* env vars to config fields. Unparseable
// numeric or duration values are ignored.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envPrefix + "ENVIRONMENT"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv(envPrefix + "SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(envPrefix + "CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitAndTrim(v, ",")
	}
	if v := os.Getenv(envPrefix + "RATE_LIMIT_ENABLED"); v != "" {
		cfg.Server.RateLimit.Enabled = v == "true"
	}
	if v := os.Getenv(envPrefix + "GRPC_ENABLED"); v == "true" {
		cfg.GRPC.Enabled = true
	}
	if v := os.Getenv(envPrefix + "GRPC_ADDR"); v != "" {
		cfg.GRPC.Addr = v
	}
	if v := os.Getenv(envPrefix + "MAX_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Conversation.MaxHistory = n
		}
	}
	if v := os.Getenv(envPrefix + "RESPONSE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Conversation.ResponseTimeout = d
		}
	}
	if v := os.Getenv(envPrefix + "DEBATE_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Debate.Seed = n
		}
	}
	if v := os.Getenv(envPrefix + "STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv(envPrefix + "STORE_SQLITE_PATH"); v != "" {
		cfg.Store.SQLitePath = v
	}
	if v := os.Getenv(envPrefix + "STORE_REDIS_URL"); v != "" {
		cfg.Store.RedisURL = v
	}
	if v := os.Getenv(envPrefix + "RETENTION_ENABLED"); v != "" {
		cfg.Retention.Enabled = v == "true"
	}
	if v := os.Getenv(envPrefix + "RETENTION_MAX_IDLE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Retention.MaxIdle = d
		}
	}
	if v := os.Getenv(envPrefix + "KAFKA_BROKERS"); v != "" {
		cfg.Events.Kafka.Brokers = splitAndTrim(v, ",")
		cfg.Events.Kafka.Enabled = true
	}
	if v := os.Getenv(envPrefix + "KAFKA_TOPIC"); v != "" {
		cfg.Events.Kafka.Topic = v
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		cfg.Logger.Level = strings.ToLower(v)
	}
	if v := os.Getenv(envPrefix + "LOG_FORMAT"); v != "" {
		cfg.Logger.Format = v
	}
	if v := os.Getenv(envPrefix + "TRACER_ENABLED"); v == "true" {
		cfg.Tracer.Enabled = true
	}
	if v := os.Getenv(envPrefix + "TRACER_EXPORTER"); v != "" {
		cfg.Tracer.Exporter = v
	}
	if v := os.Getenv(envPrefix + "METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = v == "true"
	}
}

// splitAndTrim splits s by sep, trims whitespace, and drops empty elements.
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// decryptSecrets finds "enc:..." values in connection strings and decrypts them.
func decryptSecrets(cfg *Config, passphrase string) error {
	secrets := []struct {
		name  string
		field *string
	}{
		{"store.redis_url", &cfg.Store.RedisURL},
		{"tracer.endpoint", &cfg.Tracer.Endpoint},
	}
	for _, s := range secrets {
		if !strings.HasPrefix(*s.field, "enc:") {
			continue
		}
		decrypted, err := DecryptValue(strings.TrimPrefix(*s.field, "enc:"), passphrase)
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		*s.field = decrypted
	}

	for i, b := range cfg.Events.Kafka.Brokers {
		if !strings.HasPrefix(b, "enc:") {
			continue
		}
		decrypted, err := DecryptValue(strings.TrimPrefix(b, "enc:"), passphrase)
		if err != nil {
			return fmt.Errorf("events.kafka.brokers[%d]: %w", i, err)
		}
		cfg.Events.Kafka.Brokers[i] = decrypted
	}
	return nil
}

// EncryptValue encrypts a plaintext value with AES-256-GCM using a passphrase.
func EncryptValue(plaintext, passphrase string) (string, error) {
	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	// Format: hex(salt) + ":" + hex(nonce+ciphertext)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(ciphertext), nil
}

// DecryptValue decrypts a value produced by EncryptValue.
func DecryptValue(encrypted, passphrase string) (string, error) {
	saltHex, dataHex, ok := strings.Cut(encrypted, ":")
	if !ok {
		return "", fmt.Errorf("invalid encrypted format")
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return "", fmt.Errorf("decode salt: %w", err)
	}
	data, err := hex.DecodeString(dataHex)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", err
	}
	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}
	return string(plaintext), nil
}

func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// deriveKey uses Argon2id to derive a 32-byte key from passphrase + salt.
func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, 1, 64*1024, 4, 32)
}

// validatePermissions checks the config file has restrictive permissions.
func validatePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat config: %w", err)
	}
	mode := info.Mode().Perm()
	// Allow 0600 and 0644 (readable by others but not writable)
	if mode&0o077 > 0o044 {
		return fmt.Errorf("config file %s has insecure permissions %o (want 0600 or 0644)", path, mode)
	}
	return nil
}
