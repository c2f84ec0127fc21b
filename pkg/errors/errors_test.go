// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/prefsync/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "missing_saver_error",
			code:    errors.ErrMissingSaver,
			message: "settings saver is required",
			wantStr: "[MISSING_SAVER] settings saver is required",
		},
		{
			name:    "settings_save_error",
			code:    errors.ErrSettingsSave,
			message: "settings file in use",
			wantStr: "[SETTINGS_SAVE] settings file in use",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	base := stderrors.New("disk full")
	err := errors.Wrap(base, errors.ErrSettingsSave, "cannot persist settings")

	if !stderrors.Is(err, base) {
		t.Error("Wrap() should preserve the wrapped error for errors.Is")
	}

	want := "[SETTINGS_SAVE] cannot persist settings: disk full"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if errors.Wrap(nil, errors.ErrSettingsSave, "noop") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrLanguageIndex, "index %d out of range [0,%d)", 7, 3)
	want := "[LANGUAGE_INDEX] index 7 out of range [0,3)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsErrorCode(t *testing.T) {
	err := errors.New(errors.ErrMissingTransport, "send function is required")

	if !errors.IsErrorCode(err, errors.ErrMissingTransport) {
		t.Error("IsErrorCode() should match the error's own code")
	}

	if errors.IsErrorCode(err, errors.ErrMissingSaver) {
		t.Error("IsErrorCode() should not match a different code")
	}

	wrapped := fmt.Errorf("construction failed: %w", err)
	if !errors.IsErrorCode(wrapped, errors.ErrMissingTransport) {
		t.Error("IsErrorCode() should see through fmt.Errorf wrapping")
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(plain) = %v, want %v", got, errors.ErrUnknown)
	}

	err := errors.New(errors.ErrConfigLoad, "bad config")
	if got := errors.GetErrorCode(err); got != errors.ErrConfigLoad {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrConfigLoad)
	}
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrSettingsSave, "save failed").
		WithDetail("module", "PowerOCR").
		WithDetail("path", "/tmp/settings.json")

	if err.Details["module"] != "PowerOCR" {
		t.Errorf("Details[module] = %v, want PowerOCR", err.Details["module"])
	}
	if err.Details["path"] != "/tmp/settings.json" {
		t.Errorf("Details[path] = %v, want /tmp/settings.json", err.Details["path"])
	}
}
