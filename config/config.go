package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/acdenisSK/release-maker/internal/cache"
	"github.com/acdenisSK/release-maker/internal/classify"
	"github.com/acdenisSK/release-maker/internal/output"
)

// FileName is the name looked up in the working directory and the home
// directory when no path is given.
const FileName = ".release-maker.json"

// Config holds all configurable settings.
type Config struct {
	Branch      string `json:"branch"`      // Default: "master"
	Engine      string `json:"engine"`      // Default: "go-git"
	ProgramName string `json:"programName"` // Default: "release-maker"
	CacheDir    string `json:"cacheDir"`    // Default: "" (user cache directory)
	Category    string `json:"category"`    // Default: "any"
	Format      string `json:"format"`      // Default: "console"
	StrictRange bool   `json:"strictRange"` // Default: true

	// Sections holds the patterns used by "generate --classify".
	Sections classify.Patterns `json:"sections"`
}

var engines = []string{"go-git", "git", "none"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Branch:      "master",
		Engine:      "go-git",
		ProgramName: "release-maker",
		Category:    "any",
		Format:      "console",
		StrictRange: true,
		Sections:    classify.DefaultPatterns(),
	}
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if c.Branch == "" {
		return fmt.Errorf("config: branch must not be empty")
	}
	if err := cache.ValidateProgramName(c.ProgramName); err != nil {
		return fmt.Errorf("config: programName: %w", err)
	}
	if !slices.Contains(engines, c.Engine) {
		return fmt.Errorf("config: unknown engine %q (expected one of %v)", c.Engine, engines)
	}
	if _, err := output.ParseFormat(c.Format, output.CommitListFormats); err != nil {
		return fmt.Errorf("config: format: %w", err)
	}
	if c.Category == "" {
		return fmt.Errorf("config: category must not be empty")
	}
	if _, err := classify.New(c.Sections); err != nil {
		return fmt.Errorf("config: sections: %w", err)
	}
	return nil
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{FileName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, FileName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, FileName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
