package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	BackendMemory   = "memory"
	BackendPostgres = "postgres"

	// DevJWTSecret lets the service boot locally without setup. Production refuses it.
	DevJWTSecret = "todoapi-development-secret-change-me-now"
)

type Config struct {
	Env     string
	Server  ServerConfig
	Storage StorageConfig
	Redis   RedisConfig
	JWT     JWTConfig
	PBKDF2  PBKDF2Config
	Webhook WebhookConfig
	CORS    CORSConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port string
}

type StorageConfig struct {
	Backend     string
	DatabaseURL string
	AutoMigrate bool
}

type RedisConfig struct {
	URL          string
	TodoCacheTTL time.Duration
}

type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      int64 // seconds
}

type PBKDF2Config struct {
	Iterations int
	KeyLength  int
	SaltLength int
}

type WebhookConfig struct {
	URL    string
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads .env (if present), an optional CONFIG_FILE and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", p, err)
		}
	}

	cfg := &Config{
		Env: strings.ToLower(getOrDefault(v, "ENV", EnvDevelopment)),
		Server: ServerConfig{
			Port: getOrDefault(v, "PORT", "8080"),
		},
		Storage: StorageConfig{
			Backend:     strings.ToLower(getOrDefault(v, "STORAGE_BACKEND", BackendMemory)),
			DatabaseURL: v.GetString("DATABASE_URL"),
			AutoMigrate: getBoolOrDefault(v, "DATABASE_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			URL:          v.GetString("REDIS_URL"),
			TodoCacheTTL: time.Duration(v.GetInt64("TODO_CACHE_TTL")) * time.Second,
		},
		JWT: JWTConfig{
			Secret:   getOrDefault(v, "JWT_SECRET", DevJWTSecret),
			Issuer:   getOrDefault(v, "JWT_ISSUER", "todoapi"),
			Audience: getOrDefault(v, "JWT_AUDIENCE", "todoapi-users"),
			TTL:      v.GetInt64("JWT_TTL"),
		},
		PBKDF2: PBKDF2Config{
			Iterations: v.GetInt("PBKDF2_ITERATIONS"),
			KeyLength:  v.GetInt("PBKDF2_KEY_LENGTH"),
			SaltLength: v.GetInt("PBKDF2_SALT_LENGTH"),
		},
		Webhook: WebhookConfig{
			URL:    v.GetString("WEBHOOK_URL"),
			Secret: v.GetString("WEBHOOK_SECRET"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Log: LogConfig{
			Level: getOrDefault(v, "LOG_LEVEL", "info"),
		},
	}
	cfg.Log.Pretty = getBoolOrDefault(v, "LOG_PRETTY", cfg.Env != EnvProduction)

	if cfg.JWT.TTL <= 0 {
		cfg.JWT.TTL = 86400
	}
	if cfg.PBKDF2.Iterations == 0 {
		cfg.PBKDF2.Iterations = 100_000
	}
	if cfg.PBKDF2.KeyLength == 0 {
		cfg.PBKDF2.KeyLength = 32
	}
	if cfg.PBKDF2.SaltLength == 0 {
		cfg.PBKDF2.SaltLength = 32
	}
	if cfg.Redis.TodoCacheTTL <= 0 {
		cfg.Redis.TodoCacheTTL = 5 * time.Minute
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	return cfg, nil
}

// Validate rejects settings the service must not run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		errs = append(errs, fmt.Errorf("ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env))
	}
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Storage.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend))
	}
	if c.PBKDF2.Iterations < 100_000 {
		errs = append(errs, errors.New("PBKDF2_ITERATIONS must be at least 100000"))
	}
	if c.PBKDF2.KeyLength < 32 {
		errs = append(errs, errors.New("PBKDF2_KEY_LENGTH must be at least 32"))
	}
	if c.PBKDF2.SaltLength < 32 {
		errs = append(errs, errors.New("PBKDF2_SALT_LENGTH must be at least 32"))
	}
	if c.IsProduction() && c.UsesDevSecret() {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

func (c *Config) UsesDevSecret() bool { return c.JWT.Secret == DevJWTSecret }

func getOrDefault(v *viper.Viper, key, def string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return def
}

func getBoolOrDefault(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) || v.GetString(key) == "" {
		return def
	}
	return v.GetBool(key)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
