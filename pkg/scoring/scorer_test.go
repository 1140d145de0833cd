package scoring

import (
	"math"
	"testing"

	"github.com/marcvidal/macroradar/pkg/feed"
)

func TestCombine(t *testing.T) {
	s := NewScorer(nil, Params{})

	// 0.4*|−6| + 0.6*10 + 5 = 13.4. Sentiment enters by magnitude.
	got := s.Combine(-6, 10, 5)
	if math.Abs(got-13.4) > 1e-9 {
		t.Errorf("Combine = %f, want 13.4", got)
	}
}

func TestScoreArticle(t *testing.T) {
	s := NewScorer(nil, Params{})

	a := feed.Article{Title: "Stocks surge to record high"}
	s.ScoreArticle(&a)

	if a.ScoreRelevance != 0 {
		t.Errorf("ScoreRelevance = %f, want 0", a.ScoreRelevance)
	}
	if want := round2(math.Sqrt(29.4)); a.ScoreSentiment != want {
		t.Errorf("ScoreSentiment = %f, want %f", a.ScoreSentiment, want)
	}
	if a.SentimentLabel != LabelPositive {
		t.Errorf("SentimentLabel = %q, want %q", a.SentimentLabel, LabelPositive)
	}
	if len(a.Themes) != 0 {
		t.Errorf("Themes = %v, want none", a.Themes)
	}
	if want := round4(0.4 * math.Sqrt(29.4)); a.ScoreCombined != want {
		t.Errorf("ScoreCombined = %f, want %f", a.ScoreCombined, want)
	}
}

func corpusWithCombined(scores ...float64) []feed.Article {
	articles := make([]feed.Article, len(scores))
	for i, v := range scores {
		articles[i].ScoreCombined = v
	}
	return articles
}

func TestNormalizeCorpusOutlierClipping(t *testing.T) {
	s := NewScorer(nil, Params{})

	// 20 regular scores plus one extreme outlier. The p95 anchor (floor
	// index 19 of 21) excludes the outlier, so the regular articles keep a
	// usable spread instead of collapsing toward zero.
	scores := make([]float64, 0, 21)
	for i := 1; i <= 20; i++ {
		scores = append(scores, float64(i))
	}
	scores = append(scores, 100000)
	articles := corpusWithCombined(scores...)

	s.normalizeCorpus(articles)

	for i := range articles {
		if articles[i].ScoreNormalized < 0 || articles[i].ScoreNormalized > 100 {
			t.Fatalf("normalized[%d] = %f, out of [0,100]", i, articles[i].ScoreNormalized)
		}
	}

	// p5 = 2, p95 = 20: combined 10 maps to (10-2)/18*100 = 44.44.
	if got := articles[9].ScoreNormalized; got != 44.44 {
		t.Errorf("median article normalized = %f, want 44.44", got)
	}
	if got := articles[20].ScoreNormalized; got != 100 {
		t.Errorf("outlier normalized = %f, want clamped 100", got)
	}
	if got := articles[0].ScoreNormalized; got != 0 {
		t.Errorf("lowest article normalized = %f, want clamped 0", got)
	}
	if articles[14].ScoreNormalized <= articles[9].ScoreNormalized {
		t.Errorf("normalization must preserve order: %f <= %f",
			articles[14].ScoreNormalized, articles[9].ScoreNormalized)
	}
}

func TestNormalizeCorpusDegenerateRange(t *testing.T) {
	s := NewScorer(nil, Params{})

	articles := corpusWithCombined(7, 7, 7, 7)
	s.normalizeCorpus(articles)
	for i := range articles {
		if articles[i].ScoreNormalized != 50.0 {
			t.Errorf("normalized[%d] = %f, want 50.0", i, articles[i].ScoreNormalized)
		}
	}
}

func TestNormalizeCorpusEmpty(t *testing.T) {
	s := NewScorer(nil, Params{})
	s.normalizeCorpus(nil) // must not panic
}

func corpusWithNormalized(scores ...float64) []feed.Article {
	articles := make([]feed.Article, len(scores))
	for i, v := range scores {
		articles[i].ScoreNormalized = v
	}
	return articles
}

func TestThreshold(t *testing.T) {
	s := NewScorer(nil, Params{})

	// mean 20, population stddev sqrt(200/3): 20 + 1.5*8.1650 = 32.25.
	got := s.Threshold(corpusWithNormalized(10, 20, 30))
	if got != 32.25 {
		t.Errorf("Threshold = %f, want 32.25", got)
	}
}

func TestThresholdCap(t *testing.T) {
	s := NewScorer(nil, Params{})

	// mean 50, stddev 50: uncapped threshold would be 125.
	got := s.Threshold(corpusWithNormalized(0, 100, 0, 100, 0, 100, 0, 100))
	if got != 95.0 {
		t.Errorf("Threshold = %f, want capped 95.0", got)
	}
}

func TestThresholdEmptyCorpus(t *testing.T) {
	s := NewScorer(nil, Params{})
	if got := s.Threshold(nil); got != 75.0 {
		t.Errorf("Threshold(empty) = %f, want 75.0", got)
	}
}

func TestScoreCorpus(t *testing.T) {
	s := NewScorer(nil, Params{})

	var articles []feed.Article
	for i := 0; i < 10; i++ {
		articles = append(articles, feed.Article{
			Title: "Federal Reserve rate cut as inflation crisis deepens market crash fears",
		})
	}
	articles = append(articles,
		feed.Article{Title: "Celebrity gossip roundup"},
		feed.Article{Title: "Nuclear threat looms over region"},
	)

	articles = s.ScoreCorpus(articles)

	threshold := articles[0].AlertThreshold
	if threshold > 95.0 {
		t.Fatalf("threshold = %f, want <= 95", threshold)
	}
	for i := range articles {
		a := &articles[i]
		if a.ScoreNormalized < 0 || a.ScoreNormalized > 100 {
			t.Fatalf("normalized[%d] = %f, out of [0,100]", i, a.ScoreNormalized)
		}
		if a.AlertThreshold != threshold {
			t.Errorf("AlertThreshold[%d] = %f, want uniform %f", i, a.AlertThreshold, threshold)
		}
	}

	gossip := &articles[10]
	if gossip.IsRelevant {
		t.Errorf("low-score article without themes must not be relevant: %+v", gossip)
	}

	// Critical themes bypass the score threshold entirely.
	nuclear := &articles[11]
	if len(nuclear.Themes) == 0 {
		t.Fatalf("expected themes on %q", nuclear.Title)
	}
	if !nuclear.IsRelevant {
		t.Errorf("themed article must be relevant regardless of score (normalized=%f threshold=%f)",
			nuclear.ScoreNormalized, threshold)
	}
}

func TestScoreCorpusIdempotent(t *testing.T) {
	s := NewScorer(nil, Params{})

	articles := []feed.Article{
		{Title: "Fed announces emergency rate cut amid banking crisis"},
		{Title: "Stocks surge to record high"},
		{Title: "Quarterly earnings preview"},
	}
	first := s.ScoreCorpus(articles)

	snapshot := make([]float64, len(first))
	for i := range first {
		snapshot[i] = first[i].ScoreNormalized
	}

	second := s.ScoreCorpus(first)
	for i := range second {
		if second[i].ScoreNormalized != snapshot[i] {
			t.Errorf("re-scoring changed normalized[%d]: %f != %f",
				i, second[i].ScoreNormalized, snapshot[i])
		}
	}
}

func TestScoreCorpusEmpty(t *testing.T) {
	s := NewScorer(nil, Params{})
	if got := s.ScoreCorpus(nil); len(got) != 0 {
		t.Errorf("ScoreCorpus(nil) = %v, want empty", got)
	}
}

func TestTopArticles(t *testing.T) {
	articles := corpusWithNormalized(10, 90, 50, 70)

	top := TopArticles(articles, 2)
	if len(top) != 2 {
		t.Fatalf("len(top) = %d, want 2", len(top))
	}
	if top[0].ScoreNormalized != 90 || top[1].ScoreNormalized != 70 {
		t.Errorf("top = [%f %f], want [90 70]", top[0].ScoreNormalized, top[1].ScoreNormalized)
	}

	// Input order untouched.
	if articles[0].ScoreNormalized != 10 {
		t.Errorf("TopArticles mutated its input")
	}

	if got := TopArticles(articles, 100); len(got) != len(articles) {
		t.Errorf("len = %d, want clamp to %d", len(got), len(articles))
	}
}
