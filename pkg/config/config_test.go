package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bubbletreemap/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Cache.Backend != CacheFile {
		t.Errorf("cache backend = %q, want %q", cfg.Cache.Backend, CacheFile)
	}
	if cfg.Server.Timeout.Duration != 30*time.Second {
		t.Errorf("server timeout = %v, want 30s", cfg.Server.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestDecode(t *testing.T) {
	cfg, err := Decode(`
[defaults]
width = 1024
padding = 0
colormap = ["#1b9e77", "#d95f02"]
formats = ["svg", "png"]

[defaults.physics]
steps = 500

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/0"

[server]
timeout = "5s"
`)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	opts := cfg.Options()
	if opts.Width != 1024 {
		t.Errorf("width = %v, want 1024", opts.Width)
	}
	if opts.Padding == nil || *opts.Padding != 0 {
		t.Errorf("padding = %v, want explicit 0", opts.Padding)
	}
	if opts.Curvature != nil {
		t.Errorf("curvature = %v, want unset", *opts.Curvature)
	}
	if diff := cmp.Diff([]string{"#1b9e77", "#d95f02"}, opts.Colormap); diff != "" {
		t.Errorf("colormap mismatch (-want +got):\n%s", diff)
	}
	if opts.Physics.Steps != 500 {
		t.Errorf("physics steps = %d, want 500", opts.Physics.Steps)
	}
	if cfg.Cache.Backend != CacheRedis {
		t.Errorf("cache backend = %q", cfg.Cache.Backend)
	}
	if cfg.Server.Timeout.Duration != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", cfg.Server.Timeout)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q, want the default to survive", cfg.Server.Addr)
	}
}

func TestOptionsReturnsCopy(t *testing.T) {
	cfg, err := Decode("[defaults]\npadding = 3\ncolormap = [\"#ff0000\"]\n")
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	opts := cfg.Options()
	*opts.Padding = 99
	opts.Colormap[0] = "#0000ff"
	if *cfg.Defaults.Padding != 3 || cfg.Defaults.Colormap[0] != "#ff0000" {
		t.Error("Options() shares state with the config")
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"syntax", "[defaults\nwidth = 1"},
		{"negative width", "[defaults]\nwidth = -5"},
		{"bad colour", "[defaults]\ncolormap = [\"notacolour\"]"},
		{"bad backend", "[cache]\nbackend = \"memcached\""},
		{"redis without url", "[cache]\nbackend = \"redis\""},
		{"bad duration", "[server]\ntimeout = \"soon\""},
		{"bad level", "[log]\nlevel = \"loud\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.text); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("path = %q, want empty for defaults", cfg.Path)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestLoadFromXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, AppName, FileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[defaults]\nheight = 600\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Path != path {
		t.Errorf("path = %q, want %q", cfg.Path, path)
	}
	if cfg.Defaults.Height != 600 {
		t.Errorf("height = %v, want 600", cfg.Defaults.Height)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[defaults]\nwidht = 600\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidOption)
	}
}
