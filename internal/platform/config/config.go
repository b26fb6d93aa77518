// Package config builds runtime configuration from environment variables
// so main stays lean.
package config

import (
	"os"
	"strings"
	"time"
)

// Config captures server-level configuration.
type Config struct {
	Addr string

	// RedisURL and PostgresDSN select the verification result store. When
	// both are empty the in-memory store is used.
	RedisURL    string
	PostgresDSN string

	// KafkaBrokers enables the Kafka audit sink when non-empty.
	KafkaBrokers []string
	AuditTopic   string

	// SubjectHashKey keys the HMAC pseudonymization of PESELs. Raw numbers
	// are never stored or logged.
	SubjectHashKey string

	// AdminTokenHash is a bcrypt hash of the static admin token accepted
	// on /admin endpoints alongside JWTs signed with JWTSigningKey.
	AdminTokenHash string
	JWTSigningKey  string

	// ResultTTL enforces retention for cached verification results.
	ResultTTL time.Duration
}

// FromEnv builds a Config from environment variables, with development
// defaults where it is safe to have them.
func FromEnv() Config {
	cfg := Config{
		Addr:           envOr("PESELGATE_ADDR", ":8080"),
		RedisURL:       os.Getenv("REDIS_URL"),
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		AuditTopic:     envOr("AUDIT_TOPIC", "peselgate.audit"),
		SubjectHashKey: envOr("SUBJECT_HASH_KEY", "dev-hash-key-change-in-production"),
		AdminTokenHash: os.Getenv("ADMIN_TOKEN_HASH"),
		JWTSigningKey:  envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		ResultTTL:      5 * time.Minute,
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	if ttl := os.Getenv("RESULT_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil && d > 0 {
			cfg.ResultTTL = d
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
