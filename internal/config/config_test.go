package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Port != "8080" || cfg.BaseURL != "http://localhost:8080" {
		t.Fatalf("defaults wrong: %+v", cfg)
	}
	if cfg.SpecWriterBacklog != 64 {
		t.Fatalf("backlog default wrong: %d", cfg.SpecWriterBacklog)
	}
}

func TestLoadMissingFileIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Fatalf("missing file must fall back to defaults: %v", err)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "base_url: https://bot.example\nport: \"9090\"\nspec_writer_backlog: 16\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.BaseURL != "https://bot.example" || cfg.Port != "9090" || cfg.SpecWriterBacklog != 16 {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("port: \"9090\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PORT", "7070")
	t.Setenv("KAKAO_REST_API_KEY", "rest-key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Port != "7070" {
		t.Fatalf("env must win over file: %q", cfg.Port)
	}
	if cfg.KakaoRESTAPIKey != "rest-key" {
		t.Fatalf("secret not read from env: %q", cfg.KakaoRESTAPIKey)
	}
}
