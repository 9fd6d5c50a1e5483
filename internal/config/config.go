package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "rippl-dev-secret-change-me"

type Config struct {
	HTTPAddr    string
	JWTSecret   string
	CORSOrigins []string

	DBDriver   string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBDSN      string

	AnalyticsEnabled bool

	MetricInterval time.Duration
}

// LoadDotEnv reads .env files into the environment. A missing file is fine;
// variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func Load() *Config {
	driver := strings.ToLower(os.Getenv("DB_DRIVER"))
	if driver == "" {
		driver = "postgres"
	}

	port, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		port = defaultPort(driver)
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = devJWTSecret
	}

	origins := splitList(os.Getenv("CORS_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	interval, err := time.ParseDuration(os.Getenv("OTEL_METRIC_INTERVAL"))
	if err != nil || interval <= 0 {
		interval = 30 * time.Second
	}

	cfg := &Config{
		HTTPAddr:    addr,
		JWTSecret:   secret,
		CORSOrigins: origins,

		DBDriver:   driver,
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     port,
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBDSN:      os.Getenv("DB_DSN"),

		MetricInterval: interval,
	}

	cfg.AnalyticsEnabled = cfg.DBHost != "" || cfg.DBDSN != ""
	if v, err := strconv.ParseBool(os.Getenv("ANALYTICS_ENABLED")); err == nil {
		cfg.AnalyticsEnabled = v
	}
	return cfg
}

// UsingDevSecret reports whether JWT_SECRET was left unset.
func (c *Config) UsingDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}

func (c *Config) ConnString() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	if c.DBDriver == "mysql" {
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?parseTime=true",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
		)
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func defaultPort(driver string) int {
	if driver == "mysql" {
		return 3306
	}
	return 5432
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
