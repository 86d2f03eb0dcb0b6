package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HARBORVIEW_TOKEN_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTPAddr)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("unexpected token ttl: %s", cfg.TokenTTL)
	}
	if cfg.ResetCodeTTL != time.Hour {
		t.Fatalf("unexpected reset code ttl: %s", cfg.ResetCodeTTL)
	}
	if cfg.MailEnabled() {
		t.Fatal("mail should be disabled without SMTP settings")
	}
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	t.Setenv("HARBORVIEW_TOKEN_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing token secret")
	}
}

func TestMailEnabled(t *testing.T) {
	t.Setenv("HARBORVIEW_TOKEN_SECRET", "test-secret")
	t.Setenv("HARBORVIEW_SMTP_HOST", "smtp.example.org")
	t.Setenv("HARBORVIEW_SMTP_FROM", "desk@harborview.org")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.MailEnabled() {
		t.Fatal("expected mail to be enabled")
	}
}
