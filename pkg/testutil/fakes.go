package testutil

import (
	"sync"

	"golang.org/x/text/collate"
	xlang "golang.org/x/text/language"

	"github.com/arthur-debert/prefsync/pkg/language"
	"github.com/arthur-debert/prefsync/pkg/policy"
)

// SaveCall records one Save invocation.
type SaveCall struct {
	Module  string
	Payload string
}

// MemorySaver is an in-memory settings repository. It implements
// settings.Saver and settings.EnabledSaver.
type MemorySaver struct {
	mu sync.Mutex

	// Err, when set, is returned by every Save and SaveEnabled.
	Err error

	saves   []SaveCall
	enabled map[string]bool
}

// NewMemorySaver creates an empty in-memory repository.
func NewMemorySaver() *MemorySaver {
	return &MemorySaver{enabled: make(map[string]bool)}
}

// Save records the call and returns Err.
func (m *MemorySaver) Save(moduleName, serialized string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves = append(m.saves, SaveCall{Module: moduleName, Payload: serialized})
	return m.Err
}

// SaveEnabled records the flag and returns Err.
func (m *MemorySaver) SaveEnabled(moduleName string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled[moduleName] = enabled
	return m.Err
}

// Saves returns a copy of the recorded Save calls.
func (m *MemorySaver) Saves() []SaveCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SaveCall, len(m.saves))
	copy(out, m.saves)
	return out
}

// Enabled returns the last recorded enabled flag for a module.
func (m *MemorySaver) Enabled(moduleName string) (bool, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.enabled[moduleName]
	return v, ok
}

// RecordingTransport captures outbound notification messages.
type RecordingTransport struct {
	mu sync.Mutex

	// Code is returned from every send. The core ignores it.
	Code int

	messages []string
}

// Send records the message and returns Code.
func (r *RecordingTransport) Send(message string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	return r.Code
}

// Messages returns a copy of the captured messages.
func (r *RecordingTransport) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

// Last returns the most recent message, or false when none was sent.
func (r *RecordingTransport) Last() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return "", false
	}
	return r.messages[len(r.messages)-1], true
}

// FixedPolicy returns a policy query that always reports the given state.
func FixedPolicy(state policy.State) policy.Query {
	return func() policy.State { return state }
}

// ScriptedEnumerator serves a fixed candidate list, optionally failing.
type ScriptedEnumerator struct {
	mu sync.Mutex

	Candidates []language.Candidate
	Err        error

	calls int
}

// Languages returns the scripted candidates.
func (s *ScriptedEnumerator) Languages() ([]language.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]language.Candidate, len(s.Candidates))
	copy(out, s.Candidates)
	return out, nil
}

// Calls returns how often Languages was invoked.
func (s *ScriptedEnumerator) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// TestCollator returns a fixed English collator so candidate ordering is
// deterministic regardless of the host locale.
func TestCollator() *collate.Collator {
	return collate.New(xlang.English)
}

// TestCulture is a fixed system culture for matcher tests.
func TestCulture() language.Culture {
	return language.Culture{
		DisplayName:       "German",
		ParentDisplayName: "German",
	}
}
