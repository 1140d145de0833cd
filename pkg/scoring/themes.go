package scoring

import "strings"

// DetectThemes scans the title-weighted lowercase blob for critical-theme
// triggers. The first trigger found for a theme adds the theme and one
// fixed boost, then scanning moves on to the next theme: a theme never
// contributes twice however many of its triggers appear.
func (s *Scorer) DetectThemes(title, content string) ([]string, float64) {
	text := s.blob(title, content)

	var (
		themes []string
		boost  float64
	)
	for _, theme := range s.lex.Themes {
		for _, trigger := range theme.Triggers {
			if strings.Contains(text, trigger) {
				themes = append(themes, theme.ID)
				boost += s.params.ThemeBoost
				break
			}
		}
	}
	return themes, boost
}
