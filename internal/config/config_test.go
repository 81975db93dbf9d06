package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeYAML(t, "app:\n  env: dev\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Server.Addr != ":8080" {
		t.Errorf("addr: %q", c.Server.Addr)
	}
	if c.Storage.Driver != "memory" {
		t.Errorf("driver: %q", c.Storage.Driver)
	}
	if c.AccessTTL() != 24*time.Hour {
		t.Errorf("access ttl: %v", c.AccessTTL())
	}
	if c.CatalogTTL() != 30*time.Second {
		t.Errorf("catalog ttl: %v", c.CatalogTTL())
	}
	if len(c.Onboarding.Pages) != 2 || c.Onboarding.Pages[0] != 2 || c.Onboarding.Pages[1] != 3 {
		t.Errorf("pages: %v", c.Onboarding.Pages)
	}
	if c.JWT.Secret == "" {
		t.Error("expected dev secret fallback")
	}
}

func TestLoadPostgresRequiresDSN(t *testing.T) {
	_, err := Load(writeYAML(t, "storage:\n  driver: postgres\n"))
	if err == nil {
		t.Fatal("expected error for missing DSN")
	}
}

func TestLoadBadDuration(t *testing.T) {
	_, err := Load(writeYAML(t, "jwt:\n  access_ttl: \"not-a-duration\"\n"))
	if err == nil {
		t.Fatal("expected duration parse error")
	}
}

func TestProdRequiresStrongSecret(t *testing.T) {
	_, err := Load(writeYAML(t, "app:\n  env: prod\njwt:\n  secret: short\n"))
	if err == nil {
		t.Fatal("expected secret length error in prod")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("ONBOARDING_PAGES", "2,3,4")
	t.Setenv("JWT_ACCESS_TTL", "1h")

	c, err := Load(writeYAML(t, "server:\n  addr: \":8080\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Server.Addr != ":9999" {
		t.Errorf("addr: %q", c.Server.Addr)
	}
	if len(c.Onboarding.Pages) != 3 || c.Onboarding.Pages[2] != 4 {
		t.Errorf("pages: %v", c.Onboarding.Pages)
	}
	if c.AccessTTL() != time.Hour {
		t.Errorf("ttl: %v", c.AccessTTL())
	}
}
