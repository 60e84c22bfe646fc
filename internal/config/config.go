// Package config manages the user-wide subtok configuration stored at
// ~/.config/subtok/config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user-wide defaults for the subtok CLI. Every field can
// be overridden per invocation with command flags.
type Config struct {
	// VocabSize is the default training target vocabulary size.
	VocabSize int `toml:"vocab_size"`
	// Pattern is the default split pattern name: simple, gpt2, or none.
	Pattern string `toml:"pattern"`
	// DecodePolicy is "replace" or "strict".
	DecodePolicy string `toml:"decode_policy"`
	// ModelPath is the default model file used by encode/decode/count.
	ModelPath string `toml:"model_path"`
}

// Default returns sensible defaults.
func Default() Config {
	return Config{
		VocabSize:    512,
		Pattern:      "simple",
		DecodePolicy: "replace",
		ModelPath:    "subtok.json",
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "subtok", "config.toml"), nil
}

// Load reads the config file, applying defaults for missing values.
// A missing file is not an error — defaults are returned. The
// SUBTOK_MODEL environment variable overrides the model path.
func Load() (Config, error) {
	cfg := Default()

	// Missing home dir or config file is fine — defaults apply.
	if path, err := Path(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return cfg, fmt.Errorf("config: load: %w", err)
			}
		}
	}

	if v := os.Getenv("SUBTOK_MODEL"); v != "" {
		cfg.ModelPath = v
	}

	return cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
