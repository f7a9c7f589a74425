package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadWithoutPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simform.yaml")
	data := `client:
  base_url: http://sim.internal:5000
server:
  upstream: http://sim.internal:5000
  cors_origins: [http://localhost:5173]
  shutdown_grace: 2s
theme:
  variant: dark
  tokens:
    brand: "#ff0000"
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Default()
	want.Client.BaseURL = "http://sim.internal:5000"
	want.Server.Upstream = "http://sim.internal:5000"
	want.Server.CORSOrigins = []string{"http://localhost:5173"}
	want.Server.ShutdownGrace = 2 * time.Second
	want.Theme = ThemeConfig{Variant: "dark", Tokens: map[string]string{"brand": "#ff0000"}}
	want.Log.Level = "debug"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	_, err := Parse([]byte("client:\n  base_url: \"\"\nlog:\n  level: loud\n"))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"client.base_url is required", `log.level "loud"`} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}

func TestParseRejectsZeroShutdownGrace(t *testing.T) {
	for _, grace := range []string{"0s", "-1s"} {
		_, err := Parse([]byte("server:\n  shutdown_grace: " + grace + "\n"))
		if err == nil || !strings.Contains(err.Error(), "server.shutdown_grace must be positive") {
			t.Fatalf("grace %s: expected validation error, got %v", grace, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}
