// pkg/language/language_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test candidate sorting and preference matching priority

package language_test

import (
	"testing"

	"github.com/arthur-debert/prefsync/pkg/language"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/collate"
	xlang "golang.org/x/text/language"
)

var defaultCulture = language.Culture{
	DisplayName:       "German",
	ParentDisplayName: "German",
}

func newMatcher(culture language.Culture) *language.Matcher {
	// A fixed English collator keeps ordering deterministic across hosts.
	return language.NewMatcher(collate.New(xlang.English), culture)
}

func twoCandidates() []language.Candidate {
	return []language.Candidate{
		{DisplayName: "German", NativeName: "Deutsch"},
		{DisplayName: "English (US)", NativeName: "English"},
	}
}

func TestMatchSortsByNativeName(t *testing.T) {
	m := newMatcher(language.Culture{})

	// Enumeration order deliberately reversed relative to collation order.
	sel := m.Match([]language.Candidate{
		{DisplayName: "English (US)", NativeName: "English"},
		{DisplayName: "German", NativeName: "Deutsch"},
	}, "")

	assert.Equal(t, []string{"Deutsch", "English"}, sel.NativeNames())
}

func TestMatchPriority(t *testing.T) {
	tests := []struct {
		name       string
		stored     string
		culture    language.Culture
		wantIndex  int
		wantNative string
	}{
		{
			name:       "stored preference wins",
			stored:     "English (US)",
			culture:    defaultCulture,
			wantIndex:  1,
			wantNative: "English",
		},
		{
			name:       "absent preference falls back to system culture",
			stored:     "French",
			culture:    language.Culture{DisplayName: "German"},
			wantIndex:  0,
			wantNative: "Deutsch",
		},
		{
			name:       "parent culture matches too",
			stored:     "",
			culture:    language.Culture{DisplayName: "English (GB)", ParentDisplayName: "English (US)"},
			wantIndex:  1,
			wantNative: "English",
		},
		{
			name:      "no preference and no culture match selects first",
			stored:    "",
			culture:   language.Culture{DisplayName: "Japanese"},
			wantIndex: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMatcher(tt.culture)
			sel := m.Match(twoCandidates(), tt.stored)

			assert.Equal(t, tt.wantIndex, sel.Index)
			if tt.wantNative != "" {
				selected, ok := sel.Selected()
				assert.True(t, ok)
				assert.Equal(t, tt.wantNative, selected.NativeName)
			}
		})
	}
}

func TestMatchEmptyCandidates(t *testing.T) {
	m := newMatcher(defaultCulture)

	sel := m.Match(nil, "German")

	assert.Equal(t, -1, sel.Index)
	assert.Empty(t, sel.Candidates)

	_, ok := sel.Selected()
	assert.False(t, ok)
}

func TestMatchDuplicateDisplayNames(t *testing.T) {
	m := newMatcher(language.Culture{})

	// Two locales sharing a display string; the first in sort order wins.
	sel := m.Match([]language.Candidate{
		{DisplayName: "English", NativeName: "English (United States)"},
		{DisplayName: "English", NativeName: "English (Australia)"},
	}, "English")

	assert.Equal(t, 0, sel.Index)
	selected, ok := sel.Selected()
	assert.True(t, ok)
	assert.Equal(t, "English (Australia)", selected.NativeName)
}

func TestMatchDoesNotMutateInput(t *testing.T) {
	m := newMatcher(language.Culture{})
	input := []language.Candidate{
		{DisplayName: "English (US)", NativeName: "English"},
		{DisplayName: "German", NativeName: "Deutsch"},
	}

	m.Match(input, "")

	assert.Equal(t, "English", input[0].NativeName, "input order must be preserved")
}

func TestMatchIdempotent(t *testing.T) {
	m := newMatcher(defaultCulture)
	candidates := twoCandidates()

	first := m.Match(candidates, "English (US)")
	selected, ok := first.Selected()
	assert.True(t, ok)

	// Re-running with the persisted preference reproduces the selection.
	second := m.Match(candidates, selected.DisplayName)
	assert.Equal(t, first.Index, second.Index)
	assert.Equal(t, first.NativeNames(), second.NativeNames())
}

func TestEnumeratorFunc(t *testing.T) {
	enum := language.EnumeratorFunc(func() ([]language.Candidate, error) {
		return twoCandidates(), nil
	})

	got, err := enum.Languages()
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}
