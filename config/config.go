// Package config loads model.Settings from an optional TOML file, layering
// it over built-in defaults. Only fields explicitly present in the file
// override a default, so a key can be set to false without being treated
// as absent.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ndiff/compare/model"
)

// fileSettings mirrors model.Settings with toml tags; it exists separately
// from model.Settings so the engine's core type never carries encoding
// concerns, and so a partially-specified file (any subset of keys) decodes
// cleanly into zero-valued fields that Load then leaves at their defaults.
type fileSettings struct {
	IgnoreCase    *bool   `toml:"ignore_case"`
	IgnoreSpaces  *bool   `toml:"ignore_spaces"`
	DetectMoves   *bool   `toml:"detect_moves"`
	OldFileViewID *string `toml:"old_file_view"`
}

// Load reads settings from path, a TOML file, and overlays them on
// model.DefaultSettings(). A missing path is not an error: it returns the
// defaults unchanged.
func Load(path string) (model.Settings, error) {
	settings := model.DefaultSettings()
	if path == "" {
		return settings, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}

	var fs fileSettings
	if _, err := toml.DecodeFile(path, &fs); err != nil {
		return model.Settings{}, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if fs.IgnoreCase != nil {
		settings.IgnoreCase = *fs.IgnoreCase
	}
	if fs.IgnoreSpaces != nil {
		settings.IgnoreSpaces = *fs.IgnoreSpaces
	}
	if fs.DetectMoves != nil {
		settings.DetectMoves = *fs.DetectMoves
	}
	if fs.OldFileViewID != nil {
		id, err := parseDocID(*fs.OldFileViewID)
		if err != nil {
			return model.Settings{}, fmt.Errorf("config: %s: %w", path, err)
		}
		settings.OldFileViewId = id
	}

	return settings, nil
}

func parseDocID(s string) (model.DocID, error) {
	switch s {
	case "main", "MAIN":
		return model.Main, nil
	case "sub", "SUB":
		return model.Sub, nil
	default:
		return 0, fmt.Errorf("old_file_view must be \"main\" or \"sub\", got %q", s)
	}
}

// Override applies any cobra flags the caller actually set on top of
// settings, so a flag wins over the config file, which wins over the
// built-in defaults.
type Override struct {
	IgnoreCase, IgnoreSpaces, DetectMoves *bool
	OldFileView                           *string
}

func (o Override) Apply(settings model.Settings) (model.Settings, error) {
	if o.IgnoreCase != nil {
		settings.IgnoreCase = *o.IgnoreCase
	}
	if o.IgnoreSpaces != nil {
		settings.IgnoreSpaces = *o.IgnoreSpaces
	}
	if o.DetectMoves != nil {
		settings.DetectMoves = *o.DetectMoves
	}
	if o.OldFileView != nil {
		id, err := parseDocID(*o.OldFileView)
		if err != nil {
			return model.Settings{}, err
		}
		settings.OldFileViewId = id
	}
	return settings, nil
}
