package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ruleFiles are tried in each search directory, in order.
var ruleFiles = []string{"tetris.yaml", "tetris.yml", "tetris.toml"}

// LoadTetris loads the game rules.
// Search order: customPath -> ~/.tetris/configs/tetris.{yaml,yml,toml} ->
// ./configs/tetris.{yaml,yml,toml} -> embedded default.
// Files may be partial; missing keys keep their default values.
func LoadTetris(customPath string) (TetrisConfig, error) {
	// Try custom path first; errors here are reported, not skipped
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TetrisConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseFile(customPath, data)
		if err != nil {
			return TetrisConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".tetris", "configs"))
	}
	dirs = append(dirs, "configs")

	for _, dir := range dirs {
		for _, name := range ruleFiles {
			path := filepath.Join(dir, name)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if cfg, err := parseFile(path, data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := ParseTetris(defaultTetrisYAML)
	if err != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseFile picks the decoder from the file extension. Anything that is
// not .toml is read as YAML.
func parseFile(path string, data []byte) (TetrisConfig, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTetrisTOML(data)
	}
	return ParseTetris(data)
}

// ParseTetris decodes YAML over the default rules and validates the result.
func ParseTetris(data []byte) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TetrisConfig{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return TetrisConfig{}, err
	}
	return cfg, nil
}

// ParseTetrisTOML decodes TOML over the default rules and validates the
// result. Unknown keys are rejected so typos do not pass silently.
func ParseTetrisTOML(data []byte) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return TetrisConfig{}, fmt.Errorf("toml decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return TetrisConfig{}, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return TetrisConfig{}, err
	}
	return cfg, nil
}

// MarshalTetris encodes rules as YAML, e.g. for `tetris config show`.
func MarshalTetris(cfg TetrisConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// MarshalTetrisTOML encodes rules as TOML.
func MarshalTetrisTOML(cfg TetrisConfig) ([]byte, error) {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return nil, fmt.Errorf("toml encode: %w", err)
	}
	return []byte(sb.String()), nil
}
