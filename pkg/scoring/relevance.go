package scoring

import "strings"

// maxMatchedKeywords bounds the matched-keyword list carried per article.
const maxMatchedKeywords = 15

// blob builds the scoring text: the lowercased title repeated TitleWeight
// times, then the lowercased content. Title terms therefore count up to
// TitleWeight times per occurrence.
func (s *Scorer) blob(title, content string) string {
	var b strings.Builder
	t := strings.ToLower(title)
	for i := 0; i < s.params.TitleWeight; i++ {
		b.WriteString(t)
		b.WriteString(" ")
	}
	b.WriteString(strings.ToLower(content))
	return b.String()
}

// ScoreRelevance scores title+content against the weighted relevance
// taxonomy with BM25-style term saturation. It returns the raw score and up
// to 15 matched phrases in taxonomy declaration order.
//
// Matching is case-insensitive substring containment, not word-boundary
// matching: a phrase inside a longer word still counts. That is the legacy
// corpus semantics; see DESIGN.md.
func (s *Scorer) ScoreRelevance(title, content string) (float64, []string) {
	text := s.blob(title, content)
	docLen := float64(len(strings.Fields(text)))

	var (
		score   float64
		matched []string
	)
	for _, wp := range s.lex.Relevance {
		count := float64(strings.Count(text, wp.Phrase))
		if count == 0 {
			continue
		}
		tfNorm := count * (s.params.K1 + 1) /
			(count + s.params.K1*(1-s.params.B+s.params.B*docLen/s.params.AvgDocLen))
		score += tfNorm * wp.Weight
		if len(matched) < maxMatchedKeywords {
			matched = append(matched, wp.Phrase)
		}
	}
	return score, matched
}
