package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rationsmart.yaml", `
backend:
  base_url: http://localhost:9000
  api_key: secret
server:
  port: 9090
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.BaseURL != "http://localhost:9000" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.APIKey != "secret" {
		t.Errorf("APIKey = %q", cfg.Backend.APIKey)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	// Untouched fields keep the defaults.
	if cfg.Backend.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s default", cfg.Backend.Timeout)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want default", cfg.Server.Host)
	}
	if cfg.Probe.Schedule == "" {
		t.Error("probe schedule default dropped")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rationsmart.yaml", "backend: [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDiscoverFromPrecedence(t *testing.T) {
	cwd := t.TempDir()
	home := t.TempDir()
	explicitDir := t.TempDir()

	explicit := writeFile(t, explicitDir, "explicit.yaml", "")
	cwdConfig := writeFile(t, cwd, "rationsmart.yaml", "")
	if err := os.MkdirAll(filepath.Join(home, ".rationsmart"), 0o755); err != nil {
		t.Fatal(err)
	}
	homeConfig := writeFile(t, filepath.Join(home, ".rationsmart"), "rationsmart.yaml", "")

	tests := []struct {
		name      string
		explicit  string
		env       string
		want      string
		wantFound bool
	}{
		{name: "explicit wins", explicit: explicit, env: homeConfig, want: explicit, wantFound: true},
		{name: "env when no flag", env: explicit, want: explicit, wantFound: true},
		{name: "cwd before home", want: cwdConfig, wantFound: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found, err := DiscoverFrom(tt.explicit, tt.env, cwd, home)
			if err != nil {
				t.Fatalf("DiscoverFrom: %v", err)
			}
			if found != tt.wantFound || got != tt.want {
				t.Errorf("got (%q, %v), want (%q, %v)", got, found, tt.want, tt.wantFound)
			}
		})
	}
}

func TestDiscoverFromFallsBackToHome(t *testing.T) {
	cwd := t.TempDir() // no rationsmart.yaml here
	home := t.TempDir()
	if err := os.MkdirAll(filepath.Join(home, ".rationsmart"), 0o755); err != nil {
		t.Fatal(err)
	}
	homeConfig := writeFile(t, filepath.Join(home, ".rationsmart"), "rationsmart.yaml", "")

	got, found, err := DiscoverFrom("", "", cwd, home)
	if err != nil {
		t.Fatalf("DiscoverFrom: %v", err)
	}
	if !found || got != homeConfig {
		t.Errorf("got (%q, %v), want (%q, true)", got, found, homeConfig)
	}
}

func TestDiscoverFromMissingExplicitIsError(t *testing.T) {
	if _, _, err := DiscoverFrom("/nonexistent/rationsmart.yaml", "", t.TempDir(), t.TempDir()); err == nil {
		t.Fatal("expected error for missing explicit path")
	}
}

func TestDiscoverFromNothingFound(t *testing.T) {
	_, found, err := DiscoverFrom("", "", t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("DiscoverFrom: %v", err)
	}
	if found {
		t.Error("found = true in empty directories")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	env := map[string]string{
		EnvBackendURL: "http://backend.test",
		EnvAPIKey:     "from-env",
		EnvPort:       "3000",
	}
	if err := cfg.ApplyEnv(func(key string) string { return env[key] }); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Backend.BaseURL != "http://backend.test" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.APIKey != "from-env" {
		t.Errorf("APIKey = %q", cfg.Backend.APIKey)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
}

func TestApplyEnvRejectsBadPort(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(key string) string {
		if key == EnvPort {
			return "eighty"
		}
		return ""
	})
	if err == nil {
		t.Fatal("expected error for non-numeric port")
	}
}
