package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	DataPath          string           `koanf:"data_path"`          // database location, empty means the default per-user path
	FallbackMIME      string           `koanf:"fallback_mime"`      // MIME used for files whose source reports no type
	ArtistPlaceholder string           `koanf:"artist_placeholder"` // shown in media metadata when a track has no artist
	Visualizer        VisualizerConfig `koanf:"visualizer"`
}

// VisualizerConfig holds the spectrum display settings.
type VisualizerConfig struct {
	Bins int `koanf:"bins"` // number of frequency bars (1-128, default: 32)
}

const (
	defaultFallbackMIME      = "audio/mp3"
	defaultArtistPlaceholder = "Cassette"
	defaultVisualizerBins    = 32
)

func Load() (*Config, error) {
	return loadFrom(getConfigPaths())
}

// loadFrom merges the given config files in order (last wins) and
// applies defaults.
func loadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.FallbackMIME == "" {
		cfg.FallbackMIME = defaultFallbackMIME
	}
	if cfg.ArtistPlaceholder == "" {
		cfg.ArtistPlaceholder = defaultArtistPlaceholder
	}
	if cfg.Visualizer.Bins <= 0 || cfg.Visualizer.Bins > 128 {
		cfg.Visualizer.Bins = defaultVisualizerBins
	}
	if cfg.DataPath != "" {
		cfg.DataPath = expandPath(cfg.DataPath)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/cassette/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "cassette", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
