package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv      string
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	Log         LogConfig
	AutoMigrate bool
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// CORSAllowedOrigins lists browser origins allowed to call the API; "*" allows any.
	CORSAllowedOrigins []string
}

type DatabaseConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxRetries int
	LogLevel   string
}

// DSN builds the libpq keyword/value connection string used by gorm.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

// URL builds the postgres:// form expected by golang-migrate.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	Issuer        string
	AdminPassword string
}

type LogConfig struct {
	Level  string
	Format string
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads .env (if present) and the process environment.
// Precedence: environment > .env > defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		AppEnv: v.GetString("APP_ENV"),
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			ReadTimeout:  v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("HTTP_WRITE_TIMEOUT"),
			IdleTimeout:  v.GetDuration("HTTP_IDLE_TIMEOUT"),

			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			Name:       v.GetString("DB_NAME"),
			SSLMode:    v.GetString("DB_SSLMODE"),
			MaxRetries: v.GetInt("DB_MAX_RETRIES"),
			LogLevel:   v.GetString("DB_LOG_LEVEL"),
		},
		Auth: AuthConfig{
			JWTSecret:     v.GetString("JWT_SECRET_KEY"),
			TokenTTL:      v.GetDuration("JWT_TTL"),
			Issuer:        v.GetString("JWT_ISSUER"),
			AdminPassword: v.GetString("ADMIN_PASSWORD"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		AutoMigrate: v.GetBool("AUTO_MIGRATE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "5000")
	v.SetDefault("HTTP_READ_TIMEOUT", "5s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "10s")
	v.SetDefault("HTTP_IDLE_TIMEOUT", "60s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "root")
	v.SetDefault("DB_NAME", "leave_db")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_RETRIES", 5)
	v.SetDefault("DB_LOG_LEVEL", "warn")

	v.SetDefault("JWT_SECRET_KEY", "default_jwt_secret_key")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("JWT_ISSUER", "leave-api")
	// Known default for the bootstrapped administrator; rotate in real deployments.
	v.SetDefault("ADMIN_PASSWORD", "password")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("AUTO_MIGRATE", true)
}

// splitList parses a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET_KEY must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("config: JWT_TTL must be positive")
	}
	if c.Auth.AdminPassword == "" {
		return fmt.Errorf("config: ADMIN_PASSWORD must not be empty")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("config: PORT must not be empty")
	}
	if c.Database.MaxRetries < 1 {
		c.Database.MaxRetries = 1
	}
	return nil
}
