package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("JWT_TTL_HOURS", "")
	t.Setenv("DB_DRIVER", "Postgres")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("db driver = %q, want postgres", cfg.DBDriver)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("ttl = %v, want 24h", cfg.JWTTTL)
	}
	if cfg.Location != time.UTC {
		t.Errorf("location = %v, want UTC", cfg.Location)
	}
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("TIMEZONE", "Mars/Olympus")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TC_BOOL", "true")
	t.Setenv("TC_INT", "12")
	t.Setenv("TC_BAD_INT", "x")

	if !getEnvAsBool("TC_BOOL", false) {
		t.Errorf("bool not parsed")
	}
	if getEnvAsInt("TC_INT", 1) != 12 {
		t.Errorf("int not parsed")
	}
	if getEnvAsInt("TC_BAD_INT", 5) != 5 {
		t.Errorf("bad int should fall back")
	}
}
