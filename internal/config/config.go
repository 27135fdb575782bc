package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vedran77/messagely/internal/domain"
	"github.com/vedran77/messagely/internal/security/password"
)

type Config struct {
	ServerPort string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBURL      string

	// BootstrapSchema applies schema.sql on startup.
	BootstrapSchema bool

	// TrustProxy takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that overwrites them.
	TrustProxy bool

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	Password password.Config

	LogLevel string

	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigins    []string
}

// Load reads the environment. Every returned error wraps
// domain.ErrConfiguration.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "messagely"),
		DBPassword:  getEnv("DB_PASSWORD", "messagely_dev_password"),
		DBName:      getEnv("DB_NAME", "messagely"),
		DBURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:   strings.TrimSpace(getEnv("JWT_SECRET", "")),
		JWTIssuer:   getEnv("JWT_ISSUER", "messagely"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: parseCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", domain.ErrConfiguration)
	}

	var err error
	if cfg.BootstrapSchema, err = parseBool("DB_BOOTSTRAP_SCHEMA", "false"); err != nil {
		return nil, err
	}

	if cfg.TrustProxy, err = parseBool("TRUST_PROXY", "false"); err != nil {
		return nil, err
	}

	cfg.JWTTTL, err = time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil || cfg.JWTTTL < 0 {
		return nil, fmt.Errorf("%w: JWT_TTL must be a non-negative duration", domain.ErrConfiguration)
	}

	cfg.Password = password.DefaultConfig()
	cfg.Password.Algorithm = strings.ToLower(getEnv("PASSWORD_ALGORITHM", password.AlgorithmBcrypt))
	if cfg.Password.BcryptCost, err = parseInt("BCRYPT_COST", strconv.Itoa(password.DefaultBcryptCost)); err != nil {
		return nil, err
	}
	if err := cfg.Password.Validate(); err != nil {
		return nil, err
	}

	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64); err != nil || cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("%w: RATE_LIMIT_RPS must be a positive number", domain.ErrConfiguration)
	}
	if cfg.RateLimitBurst, err = parseInt("RATE_LIMIT_BURST", "10"); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst < 1 {
		return nil, fmt.Errorf("%w: RATE_LIMIT_BURST must be at least 1", domain.ErrConfiguration)
	}

	return cfg, nil
}

// DSN returns DATABASE_URL when set, otherwise a URL built from the DB_* parts.
func (c *Config) DSN() string {
	if c.DBURL != "" {
		return c.DBURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func (c *Config) HTTPAddress() string {
	return ":" + c.ServerPort
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}

func parseInt(key, fallback string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrConfiguration, key)
	}
	return n, nil
}

func parseBool(key, fallback string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", domain.ErrConfiguration, key)
	}
	return b, nil
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
