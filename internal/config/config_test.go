package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := loadFrom(nil)
	if err != nil {
		t.Fatalf("loadFrom failed: %v", err)
	}
	if cfg.FallbackMIME != "audio/mp3" {
		t.Errorf("FallbackMIME = %q, want audio/mp3", cfg.FallbackMIME)
	}
	if cfg.ArtistPlaceholder != "Cassette" {
		t.Errorf("ArtistPlaceholder = %q, want Cassette", cfg.ArtistPlaceholder)
	}
	if cfg.Visualizer.Bins != 32 {
		t.Errorf("Visualizer.Bins = %d, want 32", cfg.Visualizer.Bins)
	}
	if cfg.DataPath != "" {
		t.Errorf("DataPath = %q, want empty", cfg.DataPath)
	}
}

func TestLoadFrom_File(t *testing.T) {
	path := writeConfig(t, `
data_path = "/tmp/cassette-test.db"
fallback_mime = "audio/ogg"
artist_placeholder = "Unknown Artist"

[visualizer]
bins = 64
`)

	cfg, err := loadFrom([]string{path})
	if err != nil {
		t.Fatalf("loadFrom failed: %v", err)
	}
	if cfg.DataPath != "/tmp/cassette-test.db" {
		t.Errorf("DataPath = %q", cfg.DataPath)
	}
	if cfg.FallbackMIME != "audio/ogg" {
		t.Errorf("FallbackMIME = %q, want audio/ogg", cfg.FallbackMIME)
	}
	if cfg.ArtistPlaceholder != "Unknown Artist" {
		t.Errorf("ArtistPlaceholder = %q", cfg.ArtistPlaceholder)
	}
	if cfg.Visualizer.Bins != 64 {
		t.Errorf("Visualizer.Bins = %d, want 64", cfg.Visualizer.Bins)
	}
}

func TestLoadFrom_LastFileWins(t *testing.T) {
	first := writeConfig(t, `fallback_mime = "audio/flac"`)
	second := writeConfig(t, `fallback_mime = "audio/wav"`)

	cfg, err := loadFrom([]string{first, second})
	if err != nil {
		t.Fatalf("loadFrom failed: %v", err)
	}
	if cfg.FallbackMIME != "audio/wav" {
		t.Errorf("FallbackMIME = %q, want audio/wav (last wins)", cfg.FallbackMIME)
	}
}

func TestLoadFrom_MissingFilesIgnored(t *testing.T) {
	cfg, err := loadFrom([]string{"/nonexistent/config.toml"})
	if err != nil {
		t.Fatalf("loadFrom failed: %v", err)
	}
	if cfg.FallbackMIME != "audio/mp3" {
		t.Errorf("FallbackMIME = %q, want default", cfg.FallbackMIME)
	}
}

func TestLoadFrom_BinsOutOfRange(t *testing.T) {
	path := writeConfig(t, `
[visualizer]
bins = 10000
`)
	cfg, err := loadFrom([]string{path})
	if err != nil {
		t.Fatalf("loadFrom failed: %v", err)
	}
	if cfg.Visualizer.Bins != 32 {
		t.Errorf("Visualizer.Bins = %d, want default 32", cfg.Visualizer.Bins)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/music.db", filepath.Join(home, "music.db")},
		{"/var/lib/cassette.db", "/var/lib/cassette.db"},
		{"relative.db", "relative.db"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := expandPath(tt.input); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}
	if paths[len(paths)-1] != "config.toml" {
		t.Errorf("last config path = %q, want config.toml", paths[len(paths)-1])
	}
}
