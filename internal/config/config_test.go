package config

import (
	"testing"
	"time"
)

// 必須環境変数が揃っている場合にConfigが読み込まれることを検証
func TestLoad_RequiredVarsPresent(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/memberdesk?sslmode=disable")
	t.Setenv("BASE_URL", "http://localhost:8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DatabaseURL != "postgres://localhost:5432/memberdesk?sslmode=disable" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

// 必須環境変数が欠けている場合にエラーが返ることを検証
func TestLoad_MissingRequiredVars(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("BASE_URL", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required env vars")
	}
}

// 任意項目のデフォルト値を検証
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/memberdesk")
	t.Setenv("BASE_URL", "http://localhost:8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SessionMaxAge != 86400 {
		t.Errorf("SessionMaxAge = %d, want 86400", cfg.SessionMaxAge)
	}
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want 120", cfg.RateLimitGeneral)
	}
	if cfg.RateLimitLogin != 10 {
		t.Errorf("RateLimitLogin = %d, want 10", cfg.RateLimitLogin)
	}
	if cfg.SessionCleanupInterval != 1*time.Hour {
		t.Errorf("SessionCleanupInterval = %v, want 1h", cfg.SessionCleanupInterval)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.CORSAllowedOrigin != "http://localhost:3000" {
		t.Errorf("CORSAllowedOrigin = %q", cfg.CORSAllowedOrigin)
	}
}

// CookieSecureがBASE_URLのスキームから導出されることを検証
func TestLoad_CookieSecureDerivedFromBaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/memberdesk")

	t.Setenv("BASE_URL", "https://members.example.com")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.CookieSecure {
		t.Error("CookieSecure = false for https BASE_URL, want true")
	}

	t.Setenv("BASE_URL", "http://localhost:8080")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CookieSecure {
		t.Error("CookieSecure = true for http BASE_URL, want false")
	}
}

// 数値・期間の環境変数が不正な場合にデフォルトへフォールバックすることを検証
func TestLoad_InvalidOptionalValuesFallBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/memberdesk")
	t.Setenv("BASE_URL", "http://localhost:8080")
	t.Setenv("SESSION_MAX_AGE", "not-a-number")
	t.Setenv("SESSION_CLEANUP_INTERVAL", "often")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SessionMaxAge != 86400 {
		t.Errorf("SessionMaxAge = %d, want default 86400", cfg.SessionMaxAge)
	}
	if cfg.SessionCleanupInterval != 1*time.Hour {
		t.Errorf("SessionCleanupInterval = %v, want default 1h", cfg.SessionCleanupInterval)
	}
}
