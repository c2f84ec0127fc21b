// pkg/ipc/ipc_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test the outbound notification envelope format

package ipc_test

import (
	"testing"

	"github.com/arthur-debert/prefsync/pkg/errors"
	"github.com/arthur-debert/prefsync/pkg/ipc"
	"github.com/arthur-debert/prefsync/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEnvelope(t *testing.T) {
	got, err := ipc.Encode("PowerOCR", settings.Settings{PreferredLanguage: "Deutsch"})
	require.NoError(t, err)

	want := `{"powertoys":{"PowerOCR":{"ActivationShortcut":null,"PreferredLanguage":"Deutsch"}}}`
	assert.Equal(t, want, got)
}

func TestNotifySendsExactlyOnce(t *testing.T) {
	var messages []string
	send := func(message string) int {
		messages = append(messages, message)
		return 0
	}

	err := ipc.Notify("PowerOCR", settings.Settings{PreferredLanguage: "Deutsch"}, send)
	require.NoError(t, err)

	require.Len(t, messages, 1)
	assert.Equal(t,
		`{"powertoys":{"PowerOCR":{"ActivationShortcut":null,"PreferredLanguage":"Deutsch"}}}`,
		messages[0])
}

func TestNotifyIgnoresTransportReturnCode(t *testing.T) {
	send := func(string) int { return -1 }

	err := ipc.Notify("PowerOCR", settings.Settings{}, send)
	assert.NoError(t, err, "the transport's return code is not this core's concern")
}

func TestNotifyNilSend(t *testing.T) {
	err := ipc.Notify("PowerOCR", settings.Settings{}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingTransport))
}

func TestEncodeWithShortcut(t *testing.T) {
	got, err := ipc.Encode("PowerOCR", settings.Settings{
		ActivationShortcut: &settings.Hotkey{Win: true, Shift: true, Code: 84, Key: "T"},
		PreferredLanguage:  "English",
	})
	require.NoError(t, err)

	want := `{"powertoys":{"PowerOCR":{"ActivationShortcut":{"win":true,"ctrl":false,"alt":false,"shift":true,"code":84,"key":"T"},"PreferredLanguage":"English"}}}`
	assert.Equal(t, want, got)
}
