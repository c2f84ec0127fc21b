// Package policy resolves administrative policy against user preference.
//
// A feature toggle has two inputs: a tri-state administrative policy
// (typically sourced from a platform policy service) and a user-stored
// boolean. When the policy is configured it wins and the toggle is locked;
// otherwise the stored value governs and the user may change it.
package policy

import (
	"github.com/arthur-debert/prefsync/pkg/logging"
)

// State is the tri-state result of an administrative policy query.
type State int

const (
	// StateNotConfigured means no administrative policy applies; the
	// user-stored value governs.
	StateNotConfigured State = iota

	// StateDisabled means the feature is administratively forced off.
	StateDisabled

	// StateEnabled means the feature is administratively forced on.
	StateEnabled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNotConfigured:
		return "not-configured"
	case StateDisabled:
		return "disabled"
	case StateEnabled:
		return "enabled"
	default:
		return "unknown"
	}
}

// Query is the injected policy-query capability. It is called exactly once,
// at resolver construction; the policy source is assumed static for the
// process lifetime.
type Query func() State

// Enablement is the effective state of the toggle after merging policy
// and user preference.
type Enablement struct {
	Enabled bool
	Locked  bool
}

// Resolve merges a policy query result with the user-stored value.
// A configured policy (enabled or disabled) locks the toggle to the
// policy-dictated value; an unconfigured policy leaves the stored value
// in charge, unlocked.
func Resolve(query Query, storedEnabled bool) Enablement {
	state := query()

	if state == StateEnabled || state == StateDisabled {
		return Enablement{
			Enabled: state == StateEnabled,
			Locked:  true,
		}
	}

	return Enablement{
		Enabled: storedEnabled,
		Locked:  false,
	}
}

// Resolver holds the effective enablement and gates mutations on the lock.
type Resolver struct {
	state Enablement
}

// NewResolver evaluates the policy once and returns a resolver holding the
// effective enablement.
func NewResolver(query Query, storedEnabled bool) *Resolver {
	state := Resolve(query, storedEnabled)

	logger := logging.GetLogger("policy")
	logger.Debug().
		Bool("enabled", state.Enabled).
		Bool("locked", state.Locked).
		Bool("stored", storedEnabled).
		Msg("Resolved effective enablement")

	return &Resolver{state: state}
}

// Enablement returns the current effective enablement.
func (r *Resolver) Enablement() Enablement {
	return r.state
}

// Enabled reports whether the feature is effectively enabled.
func (r *Resolver) Enabled() bool {
	return r.state.Enabled
}

// Locked reports whether the toggle is administratively locked.
func (r *Resolver) Locked() bool {
	return r.state.Locked
}

// TrySetEnabled updates the effective enabled flag. When the toggle is
// locked this is a defined no-op and returns false; the caller must not
// persist or notify. On success it returns true and the caller is expected
// to propagate the change.
func (r *Resolver) TrySetEnabled(newValue bool) bool {
	if r.state.Locked {
		return false
	}

	r.state.Enabled = newValue
	return true
}
