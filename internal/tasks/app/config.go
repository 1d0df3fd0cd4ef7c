package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/store/drivers/postgres"
	"github.com/aussiebroadwan/tasktrack/pkg/httpx"
	"github.com/aussiebroadwan/tasktrack/pkg/jwtx"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env                 string        `yaml:"env" env:"ENV" env-default:"dev"`
	LogLevel            string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat           string        `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	Port                int           `yaml:"port" env:"PORT" env-default:"3000"`
	ShutdownGracePeriod time.Duration `yaml:"shutdown_grace_period" env:"SHUTDOWN_GRACE_PERIOD" env-default:"10s"`

	DatabaseDriver string         `yaml:"database_driver" env:"DATABASE_DRIVER" env-default:"postgres"`
	Postgres       PostgresConfig `yaml:"postgres"`
	SQLiteFile     string         `yaml:"sqlite_file" env:"SQLITE_FILE" env-default:"tasks.db"`

	// JWTSecret signs bearer tokens and must be at least 32 bytes.
	JWTSecret  string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	JWTIssuer  string        `yaml:"jwt_issuer" env:"JWT_ISSUER" env-default:"tasktrack"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"1h"`
	PepperFile string        `yaml:"pepper_file" env:"PEPPER_FILE" env-default:"pepper"`

	AuthRateLimit RateLimitConfig `yaml:"auth_rate_limit"`
}

type PostgresConfig struct {
	Host           string        `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User           string        `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password       string        `yaml:"password" env:"DB_PASSWORD"`
	Database       string        `yaml:"database" env:"DB_NAME" env-default:"tasks"`
	SSLMode        string        `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:"disable"`
	MaxConns       int32         `yaml:"max_conns" env:"DB_MAX_CONNS" env-default:"10"`
	MinConns       int32         `yaml:"min_conns" env:"DB_MIN_CONNS" env-default:"0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"DB_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `yaml:"ping_timeout" env:"DB_PING_TIMEOUT" env-default:"10s"`
}

// RateLimitConfig limits register and login per client IP. It is off until
// Requests is set.
type RateLimitConfig struct {
	Requests   int           `yaml:"requests" env:"AUTH_RATE_LIMIT_REQUESTS" env-default:"0"`
	Window     time.Duration `yaml:"window" env:"AUTH_RATE_LIMIT_WINDOW" env-default:"1m"`
	Burst      int           `yaml:"burst" env:"AUTH_RATE_LIMIT_BURST" env-default:"5"`
	TrustProxy bool          `yaml:"trust_proxy" env:"AUTH_RATE_LIMIT_TRUST_PROXY" env-default:"false"`
}

func (c PostgresConfig) driverConfig() postgres.Config {
	return postgres.Config{
		Host:           c.Host,
		Port:           c.Port,
		User:           c.User,
		Password:       c.Password,
		Database:       c.Database,
		SSLMode:        c.SSLMode,
		MaxConns:       c.MaxConns,
		MinConns:       c.MinConns,
		ConnectTimeout: c.ConnectTimeout,
		PingTimeout:    c.PingTimeout,
	}
}

func (c RateLimitConfig) httpConfig() httpx.RateLimitConfig {
	return httpx.RateLimitConfig{
		RequestsPerWindow: c.Requests,
		Window:            c.Window,
		Burst:             c.Burst,
		TrustProxyHeaders: c.TrustProxy,
	}
}

// LoadConfig loads .env (or .env.test when ENV=test) if present, then reads
// CONFIG_FILE when set, otherwise the environment alone.
func LoadConfig() (Config, error) {
	envFile := ".env"
	if os.Getenv("ENV") == "test" {
		envFile = ".env.test"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if len(c.JWTSecret) < jwtx.MinSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes, got %d", jwtx.MinSecretLength, len(c.JWTSecret))
	}
	return nil
}
