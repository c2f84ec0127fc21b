// Package config loads the core's construction-time options: the wire
// module name, the debounce window, and the settings repository location.
//
// Options are layered koanf-style: embedded defaults first, then an
// optional prefsync.toml override. None of them are re-read at runtime;
// the debounce window in particular is fixed at construction.
package config

import (
	"os"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/prefsync/pkg/errors"
	"github.com/arthur-debert/prefsync/pkg/logging"
)

// ConfigFileName is the user override file, looked up next to the
// settings repository or passed explicitly.
const ConfigFileName = "prefsync.toml"

// Config holds the core's construction-time options.
type Config struct {
	Core    CoreConfig    `koanf:"core" toml:"core"`
	Storage StorageConfig `koanf:"storage" toml:"storage"`
}

// CoreConfig configures the synchronization pipeline.
type CoreConfig struct {
	ModuleName       string `koanf:"module_name" toml:"module_name"`
	DebounceWindowMs int    `koanf:"debounce_window_ms" toml:"debounce_window_ms"`
}

// StorageConfig configures the on-disk settings repository.
type StorageConfig struct {
	SettingsDir string `koanf:"settings_dir" toml:"settings_dir"`
}

// DebounceWindow returns the configured window as a duration.
func (c Config) DebounceWindow() time.Duration {
	return time.Duration(c.Core.DebounceWindowMs) * time.Millisecond
}

// Validate checks the loaded options.
func (c Config) Validate() error {
	if c.Core.ModuleName == "" {
		return errors.New(errors.ErrConfigValid, "core.module_name must not be empty")
	}
	if c.Core.DebounceWindowMs <= 0 {
		return errors.Newf(errors.ErrConfigValid, "core.debounce_window_ms must be positive, got %d", c.Core.DebounceWindowMs)
	}
	return nil
}

// Load returns the effective configuration: embedded defaults overlaid
// with the optional override file at path. An empty path or a missing
// file loads defaults only.
func Load(path string) (Config, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return Config{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return Config{}, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
			}
			logger.Debug().Str("path", path).Msg("Loaded config override")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the embedded defaults.
func Default() Config {
	cfg, err := Load("")
	if err != nil {
		// Embedded defaults are validated by tests; failing to parse
		// them is a programming error.
		panic(err)
	}
	return cfg
}

// Marshal renders the configuration as TOML, for display and for
// generating a starter override file.
func (c Config) Marshal() (string, error) {
	data, err := gotoml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal config")
	}
	return string(data), nil
}
