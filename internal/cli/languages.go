package cli

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/prefsync/pkg/language"
	"github.com/arthur-debert/prefsync/pkg/logging"
)

// languagesFileName is the candidate list dropped next to the settings
// repository by whatever enumerates the recognition engine.
const languagesFileName = "languages.json"

// repositoryEnumerator reads the candidate list from languages.json in
// the repository root. A missing file means no language is usable.
func repositoryEnumerator(root string) language.Enumerator {
	return language.EnumeratorFunc(func() ([]language.Candidate, error) {
		path := filepath.Join(root, languagesFileName)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			logger := logging.GetLogger("cli")
			logger.Debug().Str("path", path).Msg("No language list found")
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		var raw []struct {
			DisplayName string `json:"displayName"`
			NativeName  string `json:"nativeName"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}

		candidates := make([]language.Candidate, len(raw))
		for i, r := range raw {
			candidates[i] = language.Candidate{
				DisplayName: r.DisplayName,
				NativeName:  r.NativeName,
			}
		}
		return candidates, nil
	})
}

// renderLanguageTable prints the sorted candidates with the current
// selection marked.
func renderLanguageTable(selection language.Selection) error {
	rows := pterm.TableData{{"", "#", "Language", "Display name"}}
	for i, c := range selection.Candidates {
		marker := ""
		if i == selection.Index {
			marker = "*"
		}
		rows = append(rows, []string{marker, pterm.Sprintf("%d", i), c.NativeName, c.DisplayName})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
