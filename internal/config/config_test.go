package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "JWT_SECRET", "CORS_ORIGINS", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_DSN", "ANALYTICS_ENABLED", "OTEL_METRIC_INTERVAL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.HTTPAddr != ":8080" || cfg.DBDriver != "postgres" || cfg.DBPort != 5432 {
		t.Errorf("defaults = %+v", cfg)
	}
	if !cfg.UsingDevSecret() {
		t.Errorf("dev secret not reported")
	}
	if cfg.AnalyticsEnabled {
		t.Errorf("analytics enabled without a database")
	}
	if cfg.MetricInterval != 30*time.Second {
		t.Errorf("metric interval = %v", cfg.MetricInterval)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("cors = %v", cfg.CORSOrigins)
	}
}

func TestConnString(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "rippl")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "events")
	t.Setenv("ANALYTICS_ENABLED", "")

	cfg := Load()
	if got, want := cfg.ConnString(), "rippl:pw@tcp(db:3306)/events?parseTime=true"; got != want {
		t.Errorf("mysql dsn = %q, want %q", got, want)
	}
	if !cfg.AnalyticsEnabled {
		t.Errorf("analytics disabled with DB_HOST set")
	}

	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("ANALYTICS_ENABLED", "false")
	cfg = Load()
	if got, want := cfg.ConnString(), "host=db port=6543 user=rippl password=pw dbname=events sslmode=disable"; got != want {
		t.Errorf("postgres dsn = %q, want %q", got, want)
	}
	if cfg.AnalyticsEnabled {
		t.Errorf("ANALYTICS_ENABLED=false ignored")
	}

	t.Setenv("DB_DSN", "postgres://override")
	if got := Load().ConnString(); got != "postgres://override" {
		t.Errorf("DB_DSN not preferred: %q", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("HTTP_ADDR=:9999\nCORS_ORIGINS=https://a.example, https://b.example\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HTTP_ADDR", "")
	os.Unsetenv("HTTP_ADDR")
	t.Setenv("CORS_ORIGINS", "")
	os.Unsetenv("CORS_ORIGINS")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	cfg := Load()
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("addr = %q", cfg.HTTPAddr)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("cors = %v", cfg.CORSOrigins)
	}
}
