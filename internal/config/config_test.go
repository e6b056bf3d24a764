package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Match.Threshold != 0.6 {
		t.Errorf("expected default threshold 0.6, got %f", cfg.Match.Threshold)
	}
	if cfg.FaceAPI.Dim != 128 {
		t.Errorf("expected default descriptor dim 128, got %d", cfg.FaceAPI.Dim)
	}
	if cfg.FaceAPI.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %s", cfg.FaceAPI.Timeout)
	}
	if cfg.Web.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Web.Port)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("expected default max open conns 25, got %d", cfg.Database.MaxOpenConns)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MATCH_THRESHOLD", "0.45")
	t.Setenv("FACE_DESCRIPTOR_DIM", "512")
	t.Setenv("WEB_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/rollcall")

	cfg := Load()

	if cfg.Match.Threshold != 0.45 {
		t.Errorf("expected threshold 0.45, got %f", cfg.Match.Threshold)
	}
	if cfg.FaceAPI.Dim != 512 {
		t.Errorf("expected dim 512, got %d", cfg.FaceAPI.Dim)
	}
	if cfg.Web.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Web.Port)
	}
	if cfg.Database.URL != "postgres://localhost/rollcall" {
		t.Errorf("unexpected database URL %s", cfg.Database.URL)
	}
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("MATCH_THRESHOLD", "not-a-number")
	t.Setenv("WEB_PORT", "-1")

	cfg := Load()

	if cfg.Match.Threshold != 0.6 {
		t.Errorf("expected fallback threshold 0.6, got %f", cfg.Match.Threshold)
	}
	if cfg.Web.Port != 8080 {
		t.Errorf("expected fallback port 8080, got %d", cfg.Web.Port)
	}
}
