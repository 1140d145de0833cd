package scoring

import "math"

// Sentiment labels. Labels are assigned on the raw lexicon sum, not the
// compressed value.
const (
	LabelExtremePositive = "extreme_positive"
	LabelPositive        = "positive"
	LabelNeutral         = "neutral"
	LabelNegative        = "negative"
	LabelExtremeNegative = "extreme_negative"
)

// ScoreSentiment sums signed lexicon weights over the unigram+bigram token
// stream of the normalized title-weighted blob, then compresses the sum
// with a signed square root so keyword-dense long articles cannot dominate
// the combined score by volume alone.
func (s *Scorer) ScoreSentiment(title, content string) (raw, transformed float64, label string) {
	tokens := TokenizeText(NormalizeText(s.blob(title, content)))
	for _, tok := range tokens {
		if w, ok := s.lex.Sentiment[tok]; ok {
			raw += w
		}
	}

	switch {
	case raw > 0:
		transformed = math.Sqrt(raw)
	case raw < 0:
		transformed = -math.Sqrt(-raw)
	}

	return raw, transformed, sentimentLabel(raw)
}

func sentimentLabel(raw float64) string {
	switch {
	case raw >= 100:
		return LabelExtremePositive
	case raw >= 10:
		return LabelPositive
	case raw <= -100:
		return LabelExtremeNegative
	case raw <= -10:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
