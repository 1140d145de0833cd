// Package scoring turns raw article text into a bounded, corpus-relative
// relevance signal and an adaptive alert threshold.
//
// Pipeline per run: per-article relevance (BM25-saturated keyword weights),
// sentiment (signed lexicon sum, sqrt-compressed), critical-theme detection,
// a weighted combination, then percentile normalization of the whole live
// corpus into [0,100] and a mean+stddev alert threshold.
package scoring

import (
	"math"
	"sort"

	"github.com/marcvidal/macroradar/pkg/feed"
)

// defaultThreshold is returned for an empty corpus.
const defaultThreshold = 75.0

// Scorer scores articles against an immutable lexicon. Safe for concurrent
// readers; it holds no mutable state.
type Scorer struct {
	lex    *Lexicon
	params Params
}

// NewScorer creates a scorer. Zero-valued params fall back to the defaults.
func NewScorer(lex *Lexicon, params Params) *Scorer {
	if lex == nil {
		lex = Default()
	}
	return &Scorer{lex: lex, params: params.sane()}
}

// Combine merges the per-article signals into one non-negative score.
// Sentiment enters by magnitude: sign is display-only at this stage. The
// theme boost is additive on top of the weighted blend so a critical theme
// always adds a fixed increment.
func (s *Scorer) Combine(sentimentTransformed, relevance, themeBoost float64) float64 {
	return s.params.SentimentWeight*math.Abs(sentimentTransformed) +
		s.params.RelevanceWeight*relevance +
		themeBoost
}

// ScoreArticle fills the per-article score fields (everything except the
// corpus-relative ones). Missing title/content score as empty strings.
func (s *Scorer) ScoreArticle(a *feed.Article) {
	relevance, keywords := s.ScoreRelevance(a.Title, a.Content)
	_, transformed, label := s.ScoreSentiment(a.Title, a.Content)
	themes, boost := s.DetectThemes(a.Title, a.Content)

	a.ScoreRelevance = round2(relevance)
	a.ScoreSentiment = round2(transformed)
	a.SentimentLabel = label
	a.Themes = themes
	a.MatchedKeywords = keywords
	a.ScoreCombined = round4(s.Combine(transformed, relevance, boost))
}

// ScoreCorpus runs the full pipeline over the live corpus: per-article
// scores, percentile normalization, adaptive threshold and relevance flags.
// The slice is mutated in place and returned; callers treat this as a
// transform, not a pure function. Every article is re-scored on every run
// because the percentile anchors shift with corpus membership.
func (s *Scorer) ScoreCorpus(articles []feed.Article) []feed.Article {
	for i := range articles {
		s.ScoreArticle(&articles[i])
	}

	s.normalizeCorpus(articles)

	threshold := s.Threshold(articles)
	for i := range articles {
		a := &articles[i]
		a.AlertThreshold = threshold
		a.IsRelevant = a.ScoreNormalized >= threshold || len(a.Themes) > 0
	}
	return articles
}

// normalizeCorpus rescales combined scores into [0,100] anchored on the 5th
// and 95th percentiles of the current corpus, so a single outlier cannot
// compress everything else toward zero. Percentile indices are plain floor
// indices on the ascending sort, not interpolated. A degenerate range
// (p95 == p5) maps every article to 50.
func (s *Scorer) normalizeCorpus(articles []feed.Article) {
	n := len(articles)
	if n == 0 {
		return
	}

	sorted := make([]float64, n)
	for i := range articles {
		sorted[i] = articles[i].ScoreCombined
	}
	sort.Float64s(sorted)

	p5 := sorted[int(0.05*float64(n))]
	p95 := sorted[min(int(0.95*float64(n)), n-1)]
	scoreRange := p95 - p5

	for i := range articles {
		if scoreRange <= 0 {
			articles[i].ScoreNormalized = 50.0
			continue
		}
		normalized := (articles[i].ScoreCombined - p5) / scoreRange * 100
		articles[i].ScoreNormalized = round2(math.Max(0, math.Min(100, normalized)))
	}
}

// Threshold computes the per-run alert cutoff: mean + multiplier*stddev of
// the normalized scores (population stddev), capped so alerting can never
// become unreachable. Empty corpus yields the 75.0 default.
func (s *Scorer) Threshold(articles []feed.Article) float64 {
	n := float64(len(articles))
	if n == 0 {
		return defaultThreshold
	}

	var mean float64
	for i := range articles {
		mean += articles[i].ScoreNormalized
	}
	mean /= n

	var variance float64
	for i := range articles {
		d := articles[i].ScoreNormalized - mean
		variance += d * d
	}
	variance /= n

	threshold := mean + s.params.ThresholdMultiplier*math.Sqrt(variance)
	return round2(math.Min(threshold, s.params.ThresholdCap))
}

// TopArticles returns the n highest articles by normalized score. The input
// is not modified.
func TopArticles(articles []feed.Article, n int) []feed.Article {
	sorted := make([]feed.Article, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ScoreNormalized > sorted[j].ScoreNormalized
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
