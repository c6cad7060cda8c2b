package config

import (
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/gert_test")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Module1LimitMin != 45 {
		t.Errorf("Expected module 1 limit of 45 minutes, got %d", cfg.Module1LimitMin)
	}
	if cfg.Module2LimitMin != 15 {
		t.Errorf("Expected module 2 limit of 15 minutes, got %d", cfg.Module2LimitMin)
	}
	if cfg.ReportWorkers != 3 {
		t.Errorf("Expected 3 report workers, got %d", cfg.ReportWorkers)
	}
	if cfg.ReportBaseURL != "https://gert.pro/reports" {
		t.Errorf("Unexpected report base URL %q", cfg.ReportBaseURL)
	}
	if cfg.SMTPPort != "587" {
		t.Errorf("Expected default SMTP port 587, got %q", cfg.SMTPPort)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MODULE1_LIMIT_MINUTES", "60")
	t.Setenv("MODULE2_LIMIT_MINUTES", "20")
	t.Setenv("REPORT_WORKERS", "8")
	t.Setenv("PORT", "9090")

	cfg := Load()

	if cfg.Module1LimitMin != 60 {
		t.Errorf("Expected module 1 limit override of 60, got %d", cfg.Module1LimitMin)
	}
	if cfg.Module2LimitMin != 20 {
		t.Errorf("Expected module 2 limit override of 20, got %d", cfg.Module2LimitMin)
	}
	if cfg.ReportWorkers != 8 {
		t.Errorf("Expected 8 report workers, got %d", cfg.ReportWorkers)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected port override 9090, got %q", cfg.Port)
	}
}

func TestLoad_BadIntegerFallsBackToDefault(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MODULE1_LIMIT_MINUTES", "forty-five")

	cfg := Load()

	if cfg.Module1LimitMin != 45 {
		t.Errorf("Expected fallback to 45 for unparseable limit, got %d", cfg.Module1LimitMin)
	}
}

func TestMustGetEnv_PanicsWhenMissing(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for missing required env var")
		}
	}()

	t.Setenv("GERT_REQUIRED_VAR", "")
	mustGetEnv("GERT_REQUIRED_VAR")
}

func TestMustGetEnv_ReturnsValue(t *testing.T) {
	t.Setenv("GERT_REQUIRED_VAR", "value123")

	if got := mustGetEnv("GERT_REQUIRED_VAR"); got != "value123" {
		t.Errorf("Expected 'value123', got %q", got)
	}
}
