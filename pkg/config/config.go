// Package config loads the optional per-corpus configuration file.
//
// A corpus may carry a patlas.toml at its source root to persist scan and
// validation settings. CLI flags always override file values; a missing
// file is simply the zero configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/patternhq/patlas/pkg/errors"
)

// FileName is the configuration file looked up at the source root.
const FileName = "patlas.toml"

// Config mirrors patlas.toml. All fields are optional.
type Config struct {
	// Extensions overrides the scanner's allowed-extension list.
	Extensions []string `toml:"extensions"`
	// Ignore extends the scanner's ignore globs.
	Ignore []string `toml:"ignore"`
	// Strict promotes warnings to errors for exit-code purposes.
	Strict bool `toml:"strict"`
	// Quiet suppresses info diagnostics in reports.
	Quiet bool `toml:"quiet"`
	// MaxRelatedChain caps related-cycle detection depth.
	MaxRelatedChain int `toml:"max_related_chain"`
}

// Load reads patlas.toml from the source root. A missing file returns the
// zero Config; an unparsable file is fatal with ErrCodeInvalidConfig.
func Load(root string) (Config, error) {
	var cfg Config
	path := filepath.Join(root, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, nil
}
