package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvRedisURL, EnvMongoURI, EnvCacheDir, EnvAddr} {
		t.Setenv(k, "")
	}
}

func TestLoadDefault(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cache.Backend != CacheFile {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, CacheFile)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if ttl, _ := cfg.CacheTTL(); ttl != 168*time.Hour {
		t.Errorf("CacheTTL() = %v, want 168h", ttl)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "TOML",
			file: "bpmnlayout.toml",
			content: `
[layout]
horizontal_spacing = 80
workers = 2

[cache]
backend = "none"
prefix = "staging:"

[server]
addr = ":9090"
`,
		},
		{
			name: "YAML",
			file: "bpmnlayout.yaml",
			content: `
layout:
  horizontal_spacing: 80
  workers: 2
cache:
  backend: none
  prefix: "staging:"
server:
  addr: ":9090"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Layout.HorizontalSpacing != 80 || cfg.Layout.Workers != 2 {
				t.Errorf("Layout = %+v, want spacing 80, workers 2", cfg.Layout)
			}
			if cfg.Cache.Backend != CacheNone || cfg.Cache.Prefix != "staging:" {
				t.Errorf("Cache = %+v, want backend none, prefix staging:", cfg.Cache)
			}
			if cfg.Server.Addr != ":9090" {
				t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
			}
			// Unset sections keep their defaults.
			if cfg.Store.Backend != StoreMemory {
				t.Errorf("Store.Backend = %q, want memory", cfg.Store.Backend)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name     string
		path     func(t *testing.T) string
		wantCode errs.Code
	}{
		{"Missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.toml") }, errs.ErrCodeFileNotFound},
		{"UnknownExt", func(t *testing.T) string { return writeFile(t, "c.json", "{}") }, errs.ErrCodeInvalidConfig},
		{"BadTOML", func(t *testing.T) string { return writeFile(t, "c.toml", "[layout") }, errs.ErrCodeInvalidConfig},
		{"UnknownBackend", func(t *testing.T) string { return writeFile(t, "c.toml", "[cache]\nbackend = \"memcached\"\n") }, errs.ErrCodeInvalidConfig},
		{"RedisWithoutURL", func(t *testing.T) string { return writeFile(t, "c.toml", "[cache]\nbackend = \"redis\"\n") }, errs.ErrCodeInvalidConfig},
		{"BadTTL", func(t *testing.T) string { return writeFile(t, "c.toml", "[cache]\nttl = \"forever\"\n") }, errs.ErrCodeInvalidConfig},
		{"NegativeSpacing", func(t *testing.T) string { return writeFile(t, "c.yml", "layout:\n  vertical_spacing: -5\n") }, errs.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			if got := errs.GetCode(err); got != tt.wantCode {
				t.Errorf("Load() code = %q, want %q (err = %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvMongoURI, "mongodb://localhost:27017")
	t.Setenv(EnvCacheDir, "/tmp/bpmn-cache")
	t.Setenv(EnvAddr, ":7070")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("Cache = %+v, want redis backend", cfg.Cache)
	}
	if cfg.Store.Backend != StoreMongo {
		t.Errorf("Store.Backend = %q, want mongo", cfg.Store.Backend)
	}
	if cfg.Cache.Dir != "/tmp/bpmn-cache" {
		t.Errorf("Cache.Dir = %q, want /tmp/bpmn-cache", cfg.Cache.Dir)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Server.Addr = %q, want :7070", cfg.Server.Addr)
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "BPMNLAYOUT_TEST_DOTENV"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := writeFile(t, ".env", key+"=from-file\n")
	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv(key); got != "from-file" {
		t.Errorf("%s = %q, want from-file", key, got)
	}
}

func TestLayoutOptions(t *testing.T) {
	cfg := Default()
	cfg.Layout.HorizontalSpacing = 90

	opts := cfg.LayoutOptions()
	if opts.HorizontalSpacing != 90 {
		t.Errorf("HorizontalSpacing = %v, want 90", opts.HorizontalSpacing)
	}
	if opts.VerticalSpacing != 0 {
		t.Errorf("VerticalSpacing = %v, want 0 (engine default)", opts.VerticalSpacing)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestDefaultCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/xdg")
	if got, want := DefaultCacheDir(), filepath.Join("/xdg", "bpmnlayout"); got != want {
		t.Errorf("DefaultCacheDir() = %q, want %q", got, want)
	}
}
