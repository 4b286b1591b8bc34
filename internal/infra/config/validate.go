package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ValidationError accumulates config validation errors.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return "config validation failed:\n  - " + strings.Join(v.Errors, "\n  - ")
}

// HasErrors reports whether any validation errors have been recorded.
func (v *ValidationError) HasErrors() bool {
	return len(v.Errors) > 0
}

// Add records a formatted validation error.
func (v *ValidationError) Add(format string, args ...interface{}) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// Validate checks cfg for structural correctness. It returns a *ValidationError
// when one or more problems are found, allowing callers to inspect all issues.
func Validate(cfg *Config) error {
	ve := &ValidationError{}
	validateEnvironment(cfg, ve)
	validateServer(cfg, ve)
	validateGRPC(cfg, ve)
	validateConversation(cfg, ve)
	validateStore(cfg, ve)
	validateRetention(cfg, ve)
	validateEvents(cfg, ve)
	validateLogger(cfg, ve)
	validateTracer(cfg, ve)
	validateMetrics(cfg, ve)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
	"test":        true,
}

func validateEnvironment(cfg *Config, ve *ValidationError) {
	if !validEnvironments[strings.ToLower(cfg.Environment)] {
		ve.Add("environment %q is invalid (valid: development, staging, production, test)", cfg.Environment)
	}
}

func validateServer(cfg *Config, ve *ValidationError) {
	s := cfg.Server
	if s.Addr == "" {
		ve.Add("server.addr is required")
	} else if _, _, err := net.SplitHostPort(s.Addr); err != nil {
		ve.Add("server.addr %q is not a valid host:port", s.Addr)
	}
	if s.ReadTimeout <= 0 {
		ve.Add("server.read_timeout must be > 0")
	}
	if s.WriteTimeout <= 0 {
		ve.Add("server.write_timeout must be > 0")
	}
	if s.ShutdownTimeout <= 0 {
		ve.Add("server.shutdown_timeout must be > 0")
	}
	if s.MaxBodyBytes <= 0 {
		ve.Add("server.max_body_bytes must be > 0")
	}
	for i, o := range s.CORSOrigins {
		if o == "*" {
			if cfg.IsProduction() {
				ve.Add("server.cors_origins[%d]: wildcard origin is not allowed in production", i)
			}
			continue
		}
		u, err := url.Parse(o)
		if err != nil || u.Scheme == "" || u.Host == "" {
			ve.Add("server.cors_origins[%d] %q must be an absolute origin like https://example.com", i, o)
		}
	}
	if s.RateLimit.Enabled {
		if s.RateLimit.RequestsPerSecond <= 0 {
			ve.Add("server.rate_limit.requests_per_second must be > 0 when rate limiting is enabled")
		}
		if s.RateLimit.Burst <= 0 {
			ve.Add("server.rate_limit.burst must be > 0 when rate limiting is enabled")
		}
	}
}

func validateGRPC(cfg *Config, ve *ValidationError) {
	if !cfg.GRPC.Enabled {
		return
	}
	if _, _, err := net.SplitHostPort(cfg.GRPC.Addr); err != nil {
		ve.Add("grpc.addr %q is not a valid host:port", cfg.GRPC.Addr)
	}
	if cfg.GRPC.Addr == cfg.Server.Addr {
		ve.Add("grpc.addr must differ from server.addr")
	}
}

func validateConversation(cfg *Config, ve *ValidationError) {
	if cfg.Conversation.MaxHistory < 1 {
		ve.Add("conversation.max_history must be >= 1")
	}
	if cfg.Conversation.ResponseTimeout < 0 {
		ve.Add("conversation.response_timeout must be >= 0")
	}
}

func validateStore(cfg *Config, ve *ValidationError) {
	switch cfg.Store.Backend {
	case "memory":
	case "sqlite":
		if cfg.Store.SQLitePath == "" {
			ve.Add("store.sqlite_path is required when store.backend is sqlite")
		}
	case "redis":
		if cfg.Store.RedisURL == "" {
			ve.Add("store.redis_url is required when store.backend is redis")
		} else if !strings.HasPrefix(cfg.Store.RedisURL, "enc:") {
			if u, err := url.Parse(cfg.Store.RedisURL); err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
				ve.Add("store.redis_url must use the redis:// or rediss:// scheme")
			}
		}
	default:
		ve.Add("store.backend %q is invalid (valid: memory, sqlite, redis)", cfg.Store.Backend)
	}
	if cb := cfg.Store.CircuitBreaker; cb.Enabled && cb.Timeout < 0 {
		ve.Add("store.circuit_breaker.timeout must be >= 0")
	}
}

func validateRetention(cfg *Config, ve *ValidationError) {
	if !cfg.Retention.Enabled {
		return
	}
	if strings.TrimSpace(cfg.Retention.Schedule) == "" {
		ve.Add("retention.schedule is required when retention is enabled")
	}
	if cfg.Retention.MaxIdle <= 0 {
		ve.Add("retention.max_idle must be > 0 when retention is enabled")
	}
}

func validateEvents(cfg *Config, ve *ValidationError) {
	k := cfg.Events.Kafka
	if !k.Enabled {
		return
	}
	if len(k.Brokers) == 0 {
		ve.Add("events.kafka.brokers is required when kafka is enabled")
	}
	if k.Topic == "" {
		ve.Add("events.kafka.topic is required when kafka is enabled")
	}
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func validateLogger(cfg *Config, ve *ValidationError) {
	if !validLogLevels[strings.ToLower(cfg.Logger.Level)] {
		ve.Add("logger.level %q is invalid (valid: debug, info, warn, error)", cfg.Logger.Level)
	}
	switch cfg.Logger.Format {
	case "text", "json":
	default:
		ve.Add("logger.format %q is invalid (valid: text, json)", cfg.Logger.Format)
	}
	if cfg.Logger.Output == "" {
		ve.Add("logger.output is required")
	}
}

func validateTracer(cfg *Config, ve *ValidationError) {
	if !cfg.Tracer.Enabled {
		return
	}
	switch cfg.Tracer.Exporter {
	case "stdout", "noop":
	default:
		ve.Add("tracer.exporter %q is invalid (valid: stdout, noop)", cfg.Tracer.Exporter)
	}
}

func validateMetrics(cfg *Config, ve *ValidationError) {
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		ve.Add("metrics.path must start with /")
	}
}
