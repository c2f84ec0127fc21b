package settings

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/prefsync/pkg/errors"
	"github.com/arthur-debert/prefsync/pkg/logging"
)

// Saver persists a module's serialized settings. Save may fail with a
// file-in-use or I/O condition; callers debounce bursts specifically to
// minimize collisions on this call. Last write wins.
type Saver interface {
	Save(moduleName, serialized string) error
}

// SaverFunc adapts a function to the Saver interface.
type SaverFunc func(moduleName, serialized string) error

// Save calls f.
func (f SaverFunc) Save(moduleName, serialized string) error {
	return f(moduleName, serialized)
}

// EnabledSaver persists the feature-enabled flag in the general settings
// store, separate from the module's own settings record.
type EnabledSaver interface {
	SaveEnabled(moduleName string, enabled bool) error
}

const (
	settingsFileName = "settings.json"
	generalFileName  = "general.json"
)

// FileSaver is an on-disk settings repository rooted at a directory,
// one subdirectory per module. It implements Saver and EnabledSaver.
type FileSaver struct {
	root string
}

// NewFileSaver creates a file-backed repository rooted at dir. An empty
// dir falls back to the XDG config home (~/.config/prefsync).
func NewFileSaver(dir string) *FileSaver {
	if dir == "" {
		dir = filepath.Join(xdg.ConfigHome, "prefsync")
	}
	return &FileSaver{root: dir}
}

// Root returns the repository directory.
func (f *FileSaver) Root() string {
	return f.root
}

// SettingsPath returns the settings file path for a module.
func (f *FileSaver) SettingsPath(moduleName string) string {
	return filepath.Join(f.root, moduleName, settingsFileName)
}

// Save writes the serialized settings for a module, creating the module
// directory as needed.
func (f *FileSaver) Save(moduleName, serialized string) error {
	path := f.SettingsPath(moduleName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrSettingsSave, "cannot create settings directory for %s", moduleName)
	}

	if err := os.WriteFile(path, []byte(serialized), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrSettingsSave, "cannot write settings for %s", moduleName)
	}

	logger := logging.GetLogger("settings.file")
	logger.Debug().Str("module", moduleName).Str("path", path).Msg("Settings saved")
	return nil
}

// Load reads a module's settings back. A missing file is not an error;
// it returns the zero record and found=false.
func (f *FileSaver) Load(moduleName string) (Settings, bool, error) {
	data, err := os.ReadFile(f.SettingsPath(moduleName))
	if os.IsNotExist(err) {
		return Settings{}, false, nil
	}
	if err != nil {
		return Settings{}, false, errors.Wrapf(err, errors.ErrSettingsLoad, "cannot read settings for %s", moduleName)
	}

	s, err := Parse(string(data))
	if err != nil {
		return Settings{}, false, err
	}
	return s, true, nil
}

// SaveEnabled records the enabled flag for a module in the general store.
func (f *FileSaver) SaveEnabled(moduleName string, enabled bool) error {
	flags, err := f.loadGeneral()
	if err != nil {
		return err
	}
	flags[moduleName] = enabled

	data, err := json.Marshal(flags)
	if err != nil {
		return errors.Wrap(err, errors.ErrSettingsEncode, "cannot encode general settings")
	}

	path := filepath.Join(f.root, generalFileName)
	if err := os.MkdirAll(f.root, 0755); err != nil {
		return errors.Wrap(err, errors.ErrSettingsSave, "cannot create settings directory")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrSettingsSave, "cannot write general settings")
	}
	return nil
}

// LoadEnabled reads the stored enabled flag for a module. A missing store
// or missing module entry yields the provided default.
func (f *FileSaver) LoadEnabled(moduleName string, fallback bool) (bool, error) {
	flags, err := f.loadGeneral()
	if err != nil {
		return fallback, err
	}
	if enabled, ok := flags[moduleName]; ok {
		return enabled, nil
	}
	return fallback, nil
}

func (f *FileSaver) loadGeneral() (map[string]bool, error) {
	flags := make(map[string]bool)

	data, err := os.ReadFile(filepath.Join(f.root, generalFileName))
	if os.IsNotExist(err) {
		return flags, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "cannot read general settings")
	}

	if err := json.Unmarshal(data, &flags); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "cannot decode general settings")
	}
	return flags, nil
}
