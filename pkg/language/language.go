// Package language matches a stored language preference against the
// candidates an external recognition engine reports as usable.
//
// Matching is by exact display-string equality, with a fallback chain:
// stored preference, then the system UI culture, then the first candidate
// in collation order. Collation is injected so that ordering is
// reproducible in tests and independent of ambient locale state.
package language

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Candidate is a language the underlying recognition engine reports as
// currently usable on this machine. Immutable once obtained for a given
// refresh cycle.
type Candidate struct {
	// DisplayName is the name used for preference storage and matching.
	DisplayName string

	// NativeName is the name shown to the user, and the sort key.
	NativeName string
}

// Culture identifies the system UI language used for the fallback match.
type Culture struct {
	DisplayName       string
	ParentDisplayName string
}

// Enumerator produces the unordered candidate list. May return an empty
// list when no recognition language is installed.
type Enumerator interface {
	Languages() ([]Candidate, error)
}

// EnumeratorFunc adapts a function to the Enumerator interface.
type EnumeratorFunc func() ([]Candidate, error)

// Languages calls f.
func (f EnumeratorFunc) Languages() ([]Candidate, error) { return f() }

// Selection is the ordered candidate list plus the selected index.
// Index is -1 only when Candidates is empty; it is recomputed wholesale on
// every refresh, never incrementally patched.
type Selection struct {
	Candidates []Candidate
	Index      int
}

// NativeNames returns the candidates' native names in selection order.
func (s Selection) NativeNames() []string {
	names := make([]string, len(s.Candidates))
	for i, c := range s.Candidates {
		names[i] = c.NativeName
	}
	return names
}

// Selected returns the selected candidate, or false when nothing is
// selectable.
func (s Selection) Selected() (Candidate, bool) {
	if s.Index < 0 || s.Index >= len(s.Candidates) {
		return Candidate{}, false
	}
	return s.Candidates[s.Index], true
}

// Matcher sorts candidates and resolves the selected index for a stored
// preference.
type Matcher struct {
	collator *collate.Collator
	culture  Culture
}

// NewMatcher creates a matcher using the given collator and system culture.
// A nil collator falls back to DefaultCollator.
func NewMatcher(collator *collate.Collator, culture Culture) *Matcher {
	if collator == nil {
		collator = DefaultCollator()
	}
	return &Matcher{
		collator: collator,
		culture:  culture,
	}
}

// DefaultCollator returns a locale-neutral collator. Callers that need the
// host locale's ordering should build one with collate.New and the
// appropriate language tag.
func DefaultCollator() *collate.Collator {
	return collate.New(language.Und)
}

// Match sorts candidates by native name and resolves the selection for
// storedPreference. An empty storedPreference means no preference is
// stored and the scan falls through to the system culture, then to the
// first candidate. An empty candidate list yields index -1.
//
// The input slice is not modified; the returned Selection owns its own
// ordering. Duplicate display names are possible (distinct locales sharing
// a display string); the first occurrence in sort order wins.
func (m *Matcher) Match(candidates []Candidate, storedPreference string) Selection {
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)

	// Stable so equal native names keep their enumeration order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return m.collator.CompareString(sorted[i].NativeName, sorted[j].NativeName) < 0
	})

	preferredIdx := -1
	systemIdx := -1
	for i, c := range sorted {
		if preferredIdx < 0 && storedPreference != "" && c.DisplayName == storedPreference {
			preferredIdx = i
		}
		if systemIdx < 0 && m.matchesCulture(c.DisplayName) {
			systemIdx = i
		}
	}

	index := -1
	switch {
	case preferredIdx >= 0:
		index = preferredIdx
	case systemIdx >= 0:
		index = systemIdx
	case len(sorted) > 0:
		index = 0
	}

	return Selection{
		Candidates: sorted,
		Index:      index,
	}
}

// matchesCulture reports whether a display name equals the system culture
// or its parent. Empty culture fields never match.
func (m *Matcher) matchesCulture(displayName string) bool {
	if m.culture.DisplayName != "" && displayName == m.culture.DisplayName {
		return true
	}
	return m.culture.ParentDisplayName != "" && displayName == m.culture.ParentDisplayName
}
