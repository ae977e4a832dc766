package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const battleFile = "battle.yaml"

// LoadBattle loads and validates the encounter configuration.
// Search order: customPath -> ~/.arcade/configs/battle.yaml -> ./configs/battle.yaml -> embedded default
//
// Errors from an explicit customPath are returned. A discovered file that
// fails to parse or validate is skipped in favor of the next source.
func LoadBattle(customPath string) (BattleConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BattleConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseBattle(data)
		if err != nil {
			return BattleConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := ParseBattle(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseBattle(defaultBattleYAML)
	if err != nil {
		return DefaultBattleConfig(), nil // Fallback to hardcoded if embed is broken
	}
	return cfg, nil
}

// ParseBattle decodes a YAML document on top of the defaults and validates
// the result. Unknown keys are rejected so typos do not pass silently.
func ParseBattle(data []byte) (BattleConfig, error) {
	cfg := DefaultBattleConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return BattleConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return BattleConfig{}, err
	}
	return cfg, nil
}

// Locate returns the file LoadBattle would read, or "" when only the
// embedded default applies.
func Locate(customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, path := range searchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// searchPaths lists the discovered config locations in priority order.
func searchPaths() []string {
	paths := make([]string, 0, 2)
	if p := userConfigPath(battleFile); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", battleFile))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
