// Package config loads the small set of tunables the undo engine reads at
// startup, following the teacher's file-backed JSON config convention
// (github.com/anyproto/anytype-heart's core/anytype/config.GetFileConfig)
// scaled down to this module's single option.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Config holds the engine's runtime tunables (spec §6.3).
type Config struct {
	// UndoSizeLimitMiB bounds the undo stream's total encoded size (0 uses
	// the engine's built-in default).
	UndoSizeLimitMiB int `json:"undoSizeLimitMiB,omitempty"`
}

// Default returns the zero-value configuration, which lets History apply
// its own default budget.
func Default() Config { return Config{} }

// Load reads path as JSON into a Config. A missing file is not an error —
// it returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as JSON, creating or truncating it.
func Save(path string, cfg Config) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0640)
	if err != nil {
		return fmt.Errorf("open config for write: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
