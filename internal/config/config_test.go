package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DNS.BaseDomain != DefaultBaseDomain {
		t.Fatalf("base domain default: %q", cfg.DNS.BaseDomain)
	}
	if cfg.Security.PasswordEncoder != "plain" {
		t.Fatalf("password encoder default: %q", cfg.Security.PasswordEncoder)
	}
	if cfg.Security.StrictSubdomain {
		t.Fatal("strict subdomain should default to off")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("CLOUDFLARE_API_TOKEN", "tok-123")
	t.Setenv("CLOUDFLARE_ZONE_ID", "zone-9")
	t.Setenv("BASE_DOMAIN", "example.dev")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.URL != "postgres://env/db" {
		t.Fatalf("database url: %q", cfg.Database.URL)
	}
	if cfg.DNS.APIToken != "tok-123" || cfg.DNS.ZoneID != "zone-9" {
		t.Fatalf("dns creds: %+v", cfg.DNS)
	}
	if cfg.DNS.BaseDomain != "example.dev" {
		t.Fatalf("base domain: %q", cfg.DNS.BaseDomain)
	}
}

func TestLoad_YAMLPlusEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := "dns:\n  zone_id: from-yaml\n  base_domain: yaml.dev\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CLOUDFLARE_ZONE_ID", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DNS.ZoneID != "from-env" {
		t.Fatalf("env should win over yaml, got %q", cfg.DNS.ZoneID)
	}
	if cfg.DNS.BaseDomain != "yaml.dev" {
		t.Fatalf("yaml value should survive without env override, got %q", cfg.DNS.BaseDomain)
	}
}

func TestResolveServiceHostname(t *testing.T) {
	dir := t.TempDir()
	hostfile := filepath.Join(dir, ".service-hostname")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.DNS.HostnameFile = hostfile

	// sin archivo ni env: fallback literal
	cfg.DNS.ServiceHostname = ""
	if got := cfg.ResolveServiceHostname(); got != DefaultServiceHostname {
		t.Fatalf("fallback: %q", got)
	}

	// env/yaml configurado
	cfg.DNS.ServiceHostname = "svc.example.run.app"
	if got := cfg.ResolveServiceHostname(); got != "svc.example.run.app" {
		t.Fatalf("configured: %q", got)
	}

	// el archivo local gana sobre todo lo demás
	if err := os.WriteFile(hostfile, []byte("cached.example.run.app\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := cfg.ResolveServiceHostname(); got != "cached.example.run.app" {
		t.Fatalf("hostname file should win, got %q", got)
	}
}
