// Package viewmodel orchestrates the settings-synchronization pipeline
// behind a preferences panel.
//
// The view model owns the mutable preference record and wires user
// mutations through to persistence and outbound notification: rare
// discrete toggles (enable, shortcut) save and notify immediately, while
// rapid-fire edits (language selection) are coalesced through a debounced
// persist-and-notify. The UI layer observes individual properties rather
// than polling.
package viewmodel

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/collate"

	"github.com/arthur-debert/prefsync/pkg/debounce"
	"github.com/arthur-debert/prefsync/pkg/errors"
	"github.com/arthur-debert/prefsync/pkg/ipc"
	"github.com/arthur-debert/prefsync/pkg/language"
	"github.com/arthur-debert/prefsync/pkg/logging"
	"github.com/arthur-debert/prefsync/pkg/observable"
	"github.com/arthur-debert/prefsync/pkg/policy"
	"github.com/arthur-debert/prefsync/pkg/settings"
)

// Options configures a ViewModel. Saver and Send are required; the rest
// have workable defaults.
type Options struct {
	// ModuleName is the wire identity of this module.
	ModuleName string

	// Saver persists the module's settings record. Required.
	Saver settings.Saver

	// EnabledSaver persists the enabled flag in the general store.
	// Optional; when nil the flag is notified but not persisted.
	EnabledSaver settings.EnabledSaver

	// Send delivers outbound notification messages. Required.
	Send ipc.SendFunc

	// Policy is queried once at construction. Nil means not configured.
	Policy policy.Query

	// Enumerator lists usable recognition languages. Nil means none.
	Enumerator language.Enumerator

	// Collator orders candidates; nil falls back to a neutral collator.
	Collator *collate.Collator

	// Culture is the system UI language for the fallback match.
	Culture language.Culture

	// Initial is the stored preference record loaded from disk.
	Initial settings.Settings

	// StoredEnabled is the user-stored enabled flag.
	StoredEnabled bool

	// DebounceWindow overrides the quiescence window. Zero uses the
	// canonical default.
	DebounceWindow time.Duration
}

// ViewModel exposes the observable property surface and the mutation
// entry points for one module's preferences.
type ViewModel struct {
	moduleName string
	logger     zerolog.Logger

	saver        settings.Saver
	enabledSaver settings.EnabledSaver
	send         ipc.SendFunc

	resolver   *policy.Resolver
	matcher    *language.Matcher
	enumerator language.Enumerator
	persister  *debounce.Persister

	// mu guards the record and the current selection. Mutations are
	// expected from a single owning goroutine; the lock exists so the
	// debounced action reads a consistent snapshot at fire time.
	mu        sync.Mutex
	record    settings.Settings
	selection language.Selection

	// Observable property surface. Locked never changes after
	// construction (the policy source is read once), but it is exposed
	// through the same contract as the rest of the surface.
	Enabled            *observable.Property[bool]
	Locked             *observable.Property[bool]
	ActivationShortcut *observable.Property[*settings.Hotkey]
	LanguageNames      *observable.Property[[]string]
	SelectedIndex      *observable.Property[int]

	closeOnce sync.Once
}

// New validates collaborators, resolves the effective enablement once,
// runs the initial language match, and returns a ready view model.
// A missing saver or send function is a fatal construction error.
func New(opts Options) (*ViewModel, error) {
	if opts.Saver == nil {
		return nil, errors.New(errors.ErrMissingSaver, "settings saver is required")
	}
	if opts.Send == nil {
		return nil, errors.New(errors.ErrMissingTransport, "send function is required")
	}

	query := opts.Policy
	if query == nil {
		query = func() policy.State { return policy.StateNotConfigured }
	}
	enumerator := opts.Enumerator
	if enumerator == nil {
		enumerator = language.EnumeratorFunc(func() ([]language.Candidate, error) {
			return nil, nil
		})
	}

	vm := &ViewModel{
		moduleName:   opts.ModuleName,
		logger:       logging.GetLogger("viewmodel"),
		saver:        opts.Saver,
		enabledSaver: opts.EnabledSaver,
		send:         opts.Send,
		resolver:     policy.NewResolver(query, opts.StoredEnabled),
		matcher:      language.NewMatcher(opts.Collator, opts.Culture),
		enumerator:   enumerator,
		persister:    debounce.New(opts.DebounceWindow),
		record:       opts.Initial.Clone(),
	}

	vm.Enabled = observable.NewComparable(vm.resolver.Enabled())
	vm.Locked = observable.NewComparable(vm.resolver.Locked())
	vm.ActivationShortcut = observable.New(vm.record.ActivationShortcut)
	vm.LanguageNames = observable.New[[]string](nil)
	vm.SelectedIndex = observable.NewComparable(-1)

	if err := vm.RefreshLanguages(); err != nil {
		vm.logger.Warn().Err(err).Msg("Initial language enumeration failed")
	}

	return vm, nil
}

// ModuleName returns the wire identity of this module.
func (vm *ViewModel) ModuleName() string {
	return vm.moduleName
}

// Snapshot returns a copy of the current preference record.
func (vm *ViewModel) Snapshot() settings.Settings {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.record.Clone()
}

// Selection returns the current candidate list and selected index.
func (vm *ViewModel) Selection() language.Selection {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.selection
}

// SetEnabled routes the toggle through the policy resolver. While locked
// it is a defined no-op returning false. On success the flag is persisted
// and notified immediately; this path bypasses the debounce since
// enabling is a rare discrete toggle.
func (vm *ViewModel) SetEnabled(enabled bool) bool {
	if !vm.resolver.TrySetEnabled(enabled) {
		vm.logger.Debug().Bool("requested", enabled).Msg("Enabled change refused, toggle is locked")
		return false
	}

	vm.Enabled.Set(enabled)

	if vm.enabledSaver != nil {
		if err := vm.enabledSaver.SaveEnabled(vm.moduleName, enabled); err != nil {
			// In-memory state keeps the requested value; retry UX is
			// the host's concern.
			vm.logger.Error().Err(err).Msg("Failed to persist enabled flag")
		}
	}

	vm.notifyNow(vm.Snapshot())
	return true
}

// SetActivationShortcut persists the new shortcut immediately and then
// notifies. Shortcut recording fires once per completed gesture, not per
// keystroke, so there is nothing to debounce.
func (vm *ViewModel) SetActivationShortcut(hotkey *settings.Hotkey) {
	vm.mu.Lock()
	if hotkey != nil {
		hk := *hotkey
		vm.record.ActivationShortcut = &hk
	} else {
		vm.record.ActivationShortcut = nil
	}
	snapshot := vm.record.Clone()
	vm.mu.Unlock()

	vm.ActivationShortcut.Set(snapshot.ActivationShortcut)
	vm.persistNow(snapshot)
	vm.notifyNow(snapshot)
}

// SetSelectedLanguage updates the preferred language to the candidate at
// index and schedules a coalesced persist-and-notify. Selection may move
// rapidly while a UI control is being interacted with, so this path is
// debounced; the deferred action reads the record at fire time.
func (vm *ViewModel) SetSelectedLanguage(index int) error {
	vm.mu.Lock()
	if index < 0 || index >= len(vm.selection.Candidates) {
		n := len(vm.selection.Candidates)
		vm.mu.Unlock()
		return errors.Newf(errors.ErrLanguageIndex, "index %d out of range [0,%d)", index, n)
	}
	vm.selection.Index = index
	vm.record.PreferredLanguage = vm.selection.Candidates[index].DisplayName
	vm.mu.Unlock()

	vm.SelectedIndex.Set(index)
	vm.persister.Request(vm.persistAndNotify)
	return nil
}

// RefreshLanguages re-queries the language enumerator, re-runs the match
// against the stored preference, and republishes the candidate list and
// selection. When the match lands on a different display name than the
// stored preference (the preference vanished, or none was stored), the
// record is realigned and a debounced persist-and-notify is enqueued.
func (vm *ViewModel) RefreshLanguages() error {
	candidates, err := vm.enumerator.Languages()
	if err != nil {
		return errors.Wrap(err, errors.ErrLanguageEnumerate, "cannot enumerate recognition languages")
	}

	vm.mu.Lock()
	selection := vm.matcher.Match(candidates, vm.record.PreferredLanguage)
	vm.selection = selection

	changed := false
	if selected, ok := selection.Selected(); ok {
		if selected.DisplayName != vm.record.PreferredLanguage {
			vm.record.PreferredLanguage = selected.DisplayName
			changed = true
		}
	}
	vm.mu.Unlock()

	vm.LanguageNames.Set(selection.NativeNames())
	vm.SelectedIndex.Set(selection.Index)

	if changed {
		vm.persister.Request(vm.persistAndNotify)
	}
	return nil
}

// Close stops the debounce mechanism, discarding any unfired pending
// action. Idempotent.
func (vm *ViewModel) Close() {
	vm.closeOnce.Do(func() {
		vm.persister.Shutdown()
		vm.logger.Debug().Msg("View model disposed")
	})
}

// persistAndNotify is the debounced action: it reads the record at fire
// time so the final persisted snapshot reflects the most recent mutation.
func (vm *ViewModel) persistAndNotify() {
	snapshot := vm.Snapshot()
	vm.persistNow(snapshot)
	vm.notifyNow(snapshot)
}

func (vm *ViewModel) persistNow(snapshot settings.Settings) {
	serialized, err := snapshot.Serialize()
	if err != nil {
		vm.logger.Error().Err(err).Msg("Cannot serialize settings")
		return
	}
	if err := vm.saver.Save(vm.moduleName, serialized); err != nil {
		// The in-memory record keeps the requested value.
		vm.logger.Error().Err(err).Msg("Failed to save settings")
	}
}

func (vm *ViewModel) notifyNow(snapshot settings.Settings) {
	if err := ipc.Notify(vm.moduleName, snapshot, vm.send); err != nil {
		vm.logger.Error().Err(err).Msg("Failed to send settings notification")
	}
}
