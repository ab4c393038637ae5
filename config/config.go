package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults that production refuses to run with.
const (
	DefaultJWTSecret    = "change-me-in-production"
	DefaultAuthUsername = "user"
	DefaultAuthPassword = "userpass"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost      string        `yaml:"server_host"`
	ServerPort      string        `yaml:"server_port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// Database configuration
	DBDriver      string `yaml:"db_driver"`
	DBHost        string `yaml:"db_host"`
	DBPort        string `yaml:"db_port"`
	DBUser        string `yaml:"db_user"`
	DBPassword    string `yaml:"db_password"`
	DBName        string `yaml:"db_name"`
	DBSSLMode     string `yaml:"db_ssl_mode"`
	DBPath        string `yaml:"db_path"`
	DBAutoMigrate bool   `yaml:"db_auto_migrate"`
	MigrationsDir string `yaml:"migrations_dir"`

	// Redis configuration, used by the rate limiter
	RedisHost     string `yaml:"redis_host"`
	RedisPort     string `yaml:"redis_port"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	RedisURL      string `yaml:"redis_url"`

	RateLimitEnabled  bool          `yaml:"rate_limit_enabled"`
	RateLimitRequests int           `yaml:"rate_limit_requests"`
	RateLimitWindow   time.Duration `yaml:"rate_limit_window"`

	// Authentication
	AuthEnabled  bool          `yaml:"auth_enabled"`
	AuthUsername string        `yaml:"auth_username"`
	AuthPassword string        `yaml:"auth_password"`
	JWTSecret    string        `yaml:"jwt_secret"`
	JWTExpiry    time.Duration `yaml:"jwt_expiry"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`

	LogLevel       string `yaml:"log_level"`
	LogDevelopment bool   `yaml:"log_development"`

	// Export target
	S3Bucket   string `yaml:"s3_bucket"`
	AWSRegion  string `yaml:"aws_region"`
	S3Endpoint string `yaml:"s3_endpoint"`
}

// Default returns the built-in configuration: a local SQLite database and the stock user.
func Default() *Config {
	return &Config{
		ServerHost:      "0.0.0.0",
		ServerPort:      "8080",
		ShutdownTimeout: 10 * time.Second,

		DBDriver:      "sqlite",
		DBHost:        "localhost",
		DBPort:        "5432",
		DBUser:        "postgres",
		DBPassword:    "postgres",
		DBName:        "recipes",
		DBSSLMode:     "disable",
		DBPath:        "recipes.db",
		DBAutoMigrate: true,
		MigrationsDir: "migrations",

		RedisHost: "localhost",
		RedisPort: "6379",

		RateLimitRequests: 60,
		RateLimitWindow:   time.Minute,

		AuthEnabled:  true,
		AuthUsername: DefaultAuthUsername,
		AuthPassword: DefaultAuthPassword,
		JWTSecret:    DefaultJWTSecret,
		JWTExpiry:    24 * time.Hour,

		LogLevel:       "info",
		LogDevelopment: IsDevelopment(),

		AWSRegion: "us-east-1",
	}
}

// LoadConfig layers defaults, the optional CONFIG_FILE, .env files, environment variables and
// Docker secrets, in that order, then validates the result for the current environment.
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	// .env never overrides variables that are already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := loadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	loadSecrets(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) error {
	var errs []error

	setString(&cfg.ServerHost, "SERVER_HOST")
	setString(&cfg.ServerPort, "SERVER_PORT")
	errs = append(errs, setDuration(&cfg.ShutdownTimeout, "SHUTDOWN_TIMEOUT"))

	setString(&cfg.DBDriver, "DB_DRIVER")
	setString(&cfg.DBHost, "DB_HOST")
	setString(&cfg.DBPort, "DB_PORT")
	setString(&cfg.DBUser, "DB_USER")
	setString(&cfg.DBPassword, "DB_PASSWORD")
	setString(&cfg.DBName, "DB_NAME")
	setString(&cfg.DBSSLMode, "DB_SSL_MODE")
	setString(&cfg.DBPath, "DB_PATH")
	errs = append(errs, setBool(&cfg.DBAutoMigrate, "DB_AUTO_MIGRATE"))
	setString(&cfg.MigrationsDir, "MIGRATIONS_DIR")

	setString(&cfg.RedisHost, "REDIS_HOST")
	setString(&cfg.RedisPort, "REDIS_PORT")
	setString(&cfg.RedisPassword, "REDIS_PASSWORD")
	errs = append(errs, setInt(&cfg.RedisDB, "REDIS_DB"))
	setString(&cfg.RedisURL, "REDIS_URL")

	errs = append(errs,
		setBool(&cfg.RateLimitEnabled, "RATE_LIMIT_ENABLED"),
		setInt(&cfg.RateLimitRequests, "RATE_LIMIT_REQUESTS"),
		setDuration(&cfg.RateLimitWindow, "RATE_LIMIT_WINDOW"),
	)

	errs = append(errs, setBool(&cfg.AuthEnabled, "AUTH_ENABLED"))
	setString(&cfg.AuthUsername, "AUTH_USERNAME")
	setString(&cfg.AuthPassword, "AUTH_PASSWORD")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	errs = append(errs, setDuration(&cfg.JWTExpiry, "JWT_EXPIRY"))

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = splitList(v)
	}

	setString(&cfg.LogLevel, "LOG_LEVEL")
	errs = append(errs, setBool(&cfg.LogDevelopment, "LOG_DEVELOPMENT"))

	setString(&cfg.S3Bucket, "S3_BUCKET_NAME")
	setString(&cfg.AWSRegion, "AWS_REGION")
	setString(&cfg.S3Endpoint, "S3_ENDPOINT")

	return errors.Join(errs...)
}

// loadSecrets reads Docker secrets. Missing files leave the current value alone.
func loadSecrets(cfg *Config) {
	for name, dst := range map[string]*string{
		"db_password":    &cfg.DBPassword,
		"jwt_secret":     &cfg.JWTSecret,
		"auth_password":  &cfg.AuthPassword,
		"redis_password": &cfg.RedisPassword,
	} {
		if v := readSecret(name); v != "" {
			*dst = v
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN is the keyword/value connection string for lib/pq and pgx.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
