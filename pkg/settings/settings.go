// Package settings holds the persistable preference record and the
// interfaces used to save and load it.
//
// The record is owned exclusively by the view model orchestrator; other
// components receive value copies, never shared mutable references.
package settings

import (
	"encoding/json"

	"github.com/arthur-debert/prefsync/pkg/errors"
)

// Hotkey is an activation shortcut: modifier flags plus a virtual key code.
type Hotkey struct {
	Win   bool   `json:"win"`
	Ctrl  bool   `json:"ctrl"`
	Alt   bool   `json:"alt"`
	Shift bool   `json:"shift"`
	Code  int    `json:"code"`
	Key   string `json:"key"`
}

// Settings is the mutable preference record for one module.
//
// The JSON field names and their order are part of the outbound wire
// format and must not change.
type Settings struct {
	ActivationShortcut *Hotkey `json:"ActivationShortcut"`
	PreferredLanguage  string  `json:"PreferredLanguage"`
}

// Clone returns a deep copy, so callers can hand out snapshots without
// sharing the hotkey pointer.
func (s Settings) Clone() Settings {
	out := s
	if s.ActivationShortcut != nil {
		hk := *s.ActivationShortcut
		out.ActivationShortcut = &hk
	}
	return out
}

// Serialize encodes the record as compact JSON. encoding/json formats
// numbers and strings independent of the host locale, so the output is
// stable across regional settings.
func (s Settings) Serialize() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrSettingsEncode, "cannot encode settings")
	}
	return string(data), nil
}

// Parse decodes a serialized record.
func Parse(serialized string) (Settings, error) {
	var s Settings
	if err := json.Unmarshal([]byte(serialized), &s); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrSettingsLoad, "cannot decode settings")
	}
	return s, nil
}
