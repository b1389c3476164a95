package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Config{
		LogFile:     "log.txt",
		Sound:       true,
		AudioFolder: "audio",
		MongoDB:     "connect4",
		InfoDelay:   1500 * time.Millisecond,
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("wrong config (-want +got):\n%s", diff)
	}
}

func TestLoadOverrides(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	data := "CONNECT_SNAPSHOTS=boards\nCONNECT_INFO_DELAY=2s\n"
	if err := os.WriteFile(envFile, []byte(data), 0644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	// godotenv sets the process environment directly.
	t.Cleanup(func() {
		os.Unsetenv("CONNECT_SNAPSHOTS")
		os.Unsetenv("CONNECT_INFO_DELAY")
	})

	t.Setenv("CONNECT_SOUND", "false")
	t.Setenv("CONNECT_MONGO_URI", "mongodb://localhost:27017")

	cfg, err := Load(envFile, []string{"-debug", "-info-delay", "250ms"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !cfg.Debug || cfg.Sound {
		t.Fatalf("unexpected switches: debug %t sound %t", cfg.Debug, cfg.Sound)
	}
	if cfg.Snapshots != "boards" {
		t.Fatalf("expected snapshots from .env, got %q", cfg.Snapshots)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Fatalf("expected mongo uri from env, got %q", cfg.MongoURI)
	}
	if cfg.InfoDelay != 250*time.Millisecond {
		t.Fatalf("expected flag to win for info delay, got %s", cfg.InfoDelay)
	}
}

func TestLoadBadFlag(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.env"), []string{"-info-delay", "never"}); err == nil {
		t.Fatal("expected an error for a bad duration")
	}

	if _, err := Load(filepath.Join(dir, "missing.env"), []string{"-info-delay", "0s"}); err == nil {
		t.Fatal("expected an error for a zero delay")
	}
}
