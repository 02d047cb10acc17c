package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported applications.
const (
	AppFyyur  = "fyyur"
	AppTrivia = "trivia"
	AppCoffee = "coffee"
)

// EnvDevelopment is the only environment with a built-in signing secret.
const EnvDevelopment = "development"

const developmentSecret = "dev-secret"

// Auth modes.
const (
	AuthModeHS256 = "hs256"
	AuthModeRS256 = "rs256"
)

// Config aggregates runtime configuration for one backend.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN             string
	ApplicationName string
	MaxConns        int32
	MinConns        int32
	RunMigrations   bool
	ConnMaxIdleSec  int32
	ConnMaxLifeSec  int32
}

// RedisConfig holds Redis connection and cache values.
type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	CacheTTLSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines how bearer tokens are verified.
type AuthConfig struct {
	Mode            string
	JWTSecret       string
	Domain          string
	Audience        string
	Issuer          string
	JWKSURL         string
	JWKSTTLMinutes  int
	LeewaySeconds   int
	TokenTTLMinutes int
}

// Defaults are the per-application fallbacks used when the environment is silent.
type Defaults struct {
	Name string
	Port string
}

// DefaultsFor returns the defaults for a known application.
func DefaultsFor(app string) (Defaults, error) {
	switch app {
	case AppFyyur:
		return Defaults{Name: AppFyyur, Port: "5000"}, nil
	case AppTrivia:
		return Defaults{Name: AppTrivia, Port: "5001"}, nil
	case AppCoffee:
		return Defaults{Name: AppCoffee, Port: "5002"}, nil
	default:
		return Defaults{}, fmt.Errorf("unknown app %q", app)
	}
}

// Load reads configuration from environment variables, applying defaults where possible.
// Variables prefixed with the upper-cased app name (e.g. TRIVIA_POSTGRES_DSN) take precedence
// over the unprefixed ones so several backends can share one .env file.
func Load(defaults Defaults) (*Config, error) {
	_ = godotenv.Load()

	env := scopedEnv{prefix: strings.ToUpper(defaults.Name) + "_"}

	redisDB, err := strconv.Atoi(env.get("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	authDomain := env.get("AUTH_DOMAIN", "")
	appEnv := env.get("APP_ENV", EnvDevelopment)
	cfg := &Config{
		App: AppConfig{
			Name:                  env.get("APP_NAME", defaults.Name),
			Env:                   appEnv,
			Host:                  env.get("APP_HOST", "0.0.0.0"),
			Port:                  env.get("APP_PORT", defaults.Port),
			Version:               env.get("APP_VERSION", "dev"),
			RequestTimeoutSeconds: env.getInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:             env.get("POSTGRES_DSN", ""),
			ApplicationName: env.get("POSTGRES_APPLICATION_NAME", "crud-backends-"+defaults.Name),
			MaxConns:        int32(env.getInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:        int32(env.getInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:   env.getBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec:  int32(env.getInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec:  int32(env.getInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:            env.get("REDIS_ADDR", "127.0.0.1:6379"),
			Password:        env.get("REDIS_PASSWORD", ""),
			DB:              redisDB,
			CacheTTLSeconds: env.getInt("REDIS_CACHE_TTL_SECONDS", 60),
		},
		Logger: LoggerConfig{
			Level: env.get("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			Mode:            strings.ToLower(env.get("AUTH_MODE", AuthModeHS256)),
			JWTSecret:       env.get("AUTH_JWT_SECRET", devSecret(appEnv)),
			Domain:          authDomain,
			Audience:        env.get("AUTH_AUDIENCE", ""),
			Issuer:          env.get("AUTH_ISSUER", defaultIssuer(authDomain)),
			JWKSURL:         env.get("AUTH_JWKS_URL", defaultJWKSURL(authDomain)),
			JWKSTTLMinutes:  env.getInt("AUTH_JWKS_TTL_MINUTES", 15),
			LeewaySeconds:   env.getInt("AUTH_LEEWAY_SECONDS", 0),
			TokenTTLMinutes: env.getInt("AUTH_TOKEN_TTL_MINUTES", 60),
		},
	}

	if err := cfg.Auth.validateMode(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// CacheTTL returns how long cached listings live.
func (r RedisConfig) CacheTTL() time.Duration {
	if r.CacheTTLSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(r.CacheTTLSeconds) * time.Second
}

// JWKSTTL returns how long fetched signing keys are trusted before a refresh.
func (a AuthConfig) JWKSTTL() time.Duration {
	if a.JWKSTTLMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(a.JWKSTTLMinutes) * time.Minute
}

// Leeway returns the allowed clock skew for exp/nbf checks.
func (a AuthConfig) Leeway() time.Duration {
	if a.LeewaySeconds <= 0 {
		return 0
	}
	return time.Duration(a.LeewaySeconds) * time.Second
}

// TokenTTL returns the lifetime of development tokens.
func (a AuthConfig) TokenTTL() time.Duration {
	if a.TokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

func (a AuthConfig) validateMode() error {
	switch a.Mode {
	case AuthModeHS256, AuthModeRS256:
		return nil
	default:
		return fmt.Errorf("invalid AUTH_MODE %q", a.Mode)
	}
}

// Validate checks the settings a token verifier needs: a key source for the mode, plus the
// issuer and audience every token is matched against.
func (a AuthConfig) Validate() error {
	if err := a.validateMode(); err != nil {
		return err
	}
	switch a.Mode {
	case AuthModeHS256:
		if a.JWTSecret == "" {
			return fmt.Errorf("AUTH_JWT_SECRET is required when AUTH_MODE=%s outside %s", AuthModeHS256, EnvDevelopment)
		}
	case AuthModeRS256:
		if a.JWKSURL == "" {
			return fmt.Errorf("AUTH_DOMAIN or AUTH_JWKS_URL is required when AUTH_MODE=%s", AuthModeRS256)
		}
	}
	if a.Issuer == "" {
		return errors.New("AUTH_ISSUER (or AUTH_DOMAIN) is required")
	}
	if a.Audience == "" {
		return errors.New("AUTH_AUDIENCE is required")
	}
	return nil
}

func devSecret(appEnv string) string {
	if appEnv == EnvDevelopment {
		return developmentSecret
	}
	return ""
}

func defaultIssuer(domain string) string {
	if domain == "" {
		return ""
	}
	return "https://" + domain + "/"
}

func defaultJWKSURL(domain string) string {
	if domain == "" {
		return ""
	}
	return "https://" + domain + "/.well-known/jwks.json"
}

type scopedEnv struct {
	prefix string
}

func (s scopedEnv) lookup(key string) string {
	if val := os.Getenv(s.prefix + key); val != "" {
		return val
	}
	return os.Getenv(key)
}

func (s scopedEnv) get(key, fallback string) string {
	if val := s.lookup(key); val != "" {
		return val
	}
	return fallback
}

func (s scopedEnv) getInt(key string, fallback int) int {
	val := s.lookup(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func (s scopedEnv) getBool(key string, fallback bool) bool {
	val := s.lookup(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
