package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "pixabay:\n  api_key: abc\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Pixabay.PerPage != 40 {
		t.Errorf("expected per_page 40, got %d", cfg.Pixabay.PerPage)
	}
	if cfg.Pixabay.Timeout != 15*time.Second {
		t.Errorf("expected timeout 15s, got %s", cfg.Pixabay.Timeout)
	}
	if !cfg.Pixabay.SafeSearch {
		t.Error("expected safesearch to default to true")
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected sqlite driver, got %q", cfg.Database.Driver)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	path := writeConfig(t, `
pixabay:
  api_key: abc
  per_page: 12
  orientation: vertical
gallery:
  history_limit: 5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pixabay.PerPage != 12 {
		t.Errorf("expected per_page 12, got %d", cfg.Pixabay.PerPage)
	}
	if cfg.Pixabay.Orientation != "vertical" {
		t.Errorf("expected orientation vertical, got %q", cfg.Pixabay.Orientation)
	}
	if cfg.Gallery.HistoryLimit != 5 {
		t.Errorf("expected history_limit 5, got %d", cfg.Gallery.HistoryLimit)
	}
}

func TestLoad_APIKeyFromNamedEnv(t *testing.T) {
	t.Setenv("PIXABAY_API_KEY", "")
	t.Setenv("MY_PIXABAY_KEY", "from-env")
	path := writeConfig(t, "pixabay:\n  api_key_env: MY_PIXABAY_KEY\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pixabay.APIKey != "from-env" {
		t.Errorf("expected api key from env, got %q", cfg.Pixabay.APIKey)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Pixabay:  PixabayConfig{BaseURL: "https://pixabay.com/api/", PerPage: 1},
		Database: DatabaseConfig{Driver: "mysql"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"api_key", "per_page", "database.driver"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %q, got %v", want, err)
		}
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	sqlite := DatabaseConfig{Driver: "sqlite", Path: "./data/x.db"}
	if got := sqlite.DSN(); got != "./data/x.db" {
		t.Errorf("sqlite DSN = %q", got)
	}

	pg := DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", DBName: "pix", SSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=pix sslmode=disable"
	if got := pg.DSN(); got != want {
		t.Errorf("postgres DSN = %q, want %q", got, want)
	}
}
