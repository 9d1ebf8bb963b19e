package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"CONFIG_FILE", "STORAGE_DRIVER", "SERVER_PORT", "JWT_EXPIRATION_HOURS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Storage.Driver != DriverMemory {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.JWT.ExpirationDuration() != 24*time.Hour {
		t.Errorf("expiration = %v", cfg.JWT.ExpirationDuration())
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cms.yaml")
	data := []byte("server:\n  port: \"9000\"\nstorage:\n  driver: file\n  jsonPath: /var/cms\njwt:\n  expirationHours: 2\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("JSON_PATH", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	t.Setenv("DB_PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9100" {
		t.Errorf("env should win over file: port = %s", cfg.Server.Port)
	}
	if cfg.Storage.Driver != DriverFile || cfg.Storage.JSONPath != "/var/cms" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.JWT.ExpirationHours != 2 || cfg.Database.Port != "5432" {
		t.Errorf("file values or defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORAGE_DRIVER", "redis")
	if _, err := Load(); err == nil {
		t.Error("unknown driver should fail")
	}

	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "soon")
	if _, err := Load(); err == nil {
		t.Error("non-numeric expiration should fail")
	}

	t.Setenv("JWT_EXPIRATION_HOURS", "")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("missing config file should fail")
	}
}

func TestConnectionString(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "cms", SSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=cms sslmode=disable"
	if got := d.ConnectionString(); got != want {
		t.Errorf("ConnectionString = %q", got)
	}
}
