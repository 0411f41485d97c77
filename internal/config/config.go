// Package config loads typed application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	Env      string `env:"ENV" envDefault:"prod"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Public base URL of the web frontend; reset links point at it.
	AppURL string `env:"APP_URL" envDefault:"http://localhost:3000"`

	DB     DBConfig
	Redis  RedisConfig
	AWS    AWSConfig
	SMTP   SMTPConfig
	Auth   AuthConfig
	OpenAI OpenAIConfig
	Scrape ScrapeConfig
}

type DBConfig struct {
	Host string `env:"DB_HOST" envDefault:"localhost"`
	Port string `env:"DB_PORT" envDefault:"5432"`
	User string `env:"DB_USER" envDefault:"postgres"`
	Pass string `env:"DB_PASS"`
	Name string `env:"DB_NAME" envDefault:"careerkit"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Pass, c.Name)
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Pass string `env:"REDIS_PASS"`
}

type AWSConfig struct {
	Region string `env:"AWS_REGION" envDefault:"us-east-1"`
	Bucket string `env:"AWS_BUCKET"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`
	Issuer           string        `env:"JWT_ISSUER" envDefault:"careerkit"`
	ResetTokenSecret string        `env:"RESET_TOKEN_SECRET"`
}

type OpenAIConfig struct {
	APIKey string `env:"OPENAI_API_KEY"`
}

type ScrapeConfig struct {
	// Minimum pause between consecutive keyword scrapes in one request.
	MinDelay time.Duration `env:"SCRAPE_MIN_DELAY" envDefault:"1500ms"`

	// Optional JSON file overriding the built-in selector sets.
	SelectorsFile string `env:"SCRAPE_SELECTORS_FILE"`

	// Per-site throttle: at most ThrottleLimit searches per ThrottleWindow.
	ThrottleLimit  int           `env:"SCRAPE_THROTTLE_LIMIT" envDefault:"10"`
	ThrottleWindow time.Duration `env:"SCRAPE_THROTTLE_WINDOW" envDefault:"1m"`
}

// Load parses the full configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}
