// Package ipc serializes settings into the fixed outbound envelope and
// hands them to the transport.
//
// Every notification message is a JSON object with a single "powertoys"
// key whose value holds one module entry:
//
//	{"powertoys":{"<ModuleName>":<settings-object>}}
//
// The encoding is compact (no whitespace between tokens) and uses
// encoding/json's invariant formatting, so messages are stable across the
// machine's regional settings. Exactly one send per call; no retry, no
// buffering.
package ipc

import (
	"encoding/json"

	"github.com/arthur-debert/prefsync/pkg/errors"
	"github.com/arthur-debert/prefsync/pkg/logging"
	"github.com/arthur-debert/prefsync/pkg/settings"
)

// SendFunc delivers one message over the outbound transport. The return
// code is ignored by this core; delivery failures are the transport's
// concern.
type SendFunc func(message string) int

type envelope struct {
	PowerToys map[string]json.RawMessage `json:"powertoys"`
}

// Encode builds the envelope message for a module's settings without
// sending it.
func Encode(moduleName string, s settings.Settings) (string, error) {
	serialized, err := s.Serialize()
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(envelope{
		PowerToys: map[string]json.RawMessage{
			moduleName: json.RawMessage(serialized),
		},
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrSettingsEncode, "cannot encode notification envelope")
	}
	return string(data), nil
}

// Notify serializes the settings into the envelope and invokes send once.
func Notify(moduleName string, s settings.Settings, send SendFunc) error {
	if send == nil {
		return errors.New(errors.ErrMissingTransport, "send function is required")
	}

	message, err := Encode(moduleName, s)
	if err != nil {
		return err
	}

	logger := logging.GetLogger("ipc")
	logger.Trace().Str("module", moduleName).Int("bytes", len(message)).Msg("Sending settings notification")

	send(message)
	return nil
}
