package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	GinMode     string `envconfig:"GIN_MODE" default:"debug"`
	StoreDriver string `envconfig:"STORE_DRIVER" default:"postgres"`

	// DB
	DBHost            string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort            string        `envconfig:"DB_PORT" default:"5432"`
	DBUser            string        `envconfig:"DB_USER" default:"postgres"`
	DBPassword        string        `envconfig:"DB_PASSWORD"`
	DBName            string        `envconfig:"DB_NAME" default:"pawcare"`
	DBSSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"100"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`

	// Event sinks, each optional
	RedisURL     string `envconfig:"REDIS_URL"`
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"pawcare.vaccinations"`

	// Email
	SMTPHost      string `envconfig:"SMTP_HOST"`
	SMTPPort      string `envconfig:"SMTP_PORT" default:"587"`
	EmailFrom     string `envconfig:"EMAIL_FROM"`
	EmailPassword string `envconfig:"EMAIL_PASSWORD"`
	FrontendURL   string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`

	// HTTP
	CORSOrigins    []string `envconfig:"CORS_ORIGINS" default:"*"`
	RateLimitRPS   float64  `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int      `envconfig:"RATE_LIMIT_BURST" default:"10"`

	// Shared secret for staff websocket subscriptions; empty disables them
	StaffToken string `envconfig:"STAFF_WS_TOKEN"`
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return c, err
	}
	if c.StoreDriver != StoreDriverPostgres && c.StoreDriver != StoreDriverMemory {
		return c, fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	return c, nil
}

// DSN builds the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
