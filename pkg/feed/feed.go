package feed

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxContentLen caps stored article body text (~8k chars keeps memory and
// the database stable on long-form pieces).
const MaxContentLen = 8000

// Article is the standardized data model shared by fetchers, the scoring
// pipeline, storage, alerting and rendering.
type Article struct {
	Link          string    `json:"link" db:"link"`
	Source        string    `json:"source" db:"source"`
	Title         string    `json:"title" db:"title"`
	Content       string    `json:"content" db:"content"`
	PublishedDate string    `json:"published_date" db:"published_date"`
	FetchedAt     time.Time `json:"fetched_at" db:"fetched_at"`

	// Score fields, populated by the scoring pipeline. ScoreNormalized is
	// corpus-relative: it is recomputed for the whole live corpus on every
	// run and is only meaningful against that snapshot.
	ScoreRelevance  float64  `json:"score_relevance" db:"score_relevance"`
	ScoreSentiment  float64  `json:"score_sentiment" db:"score_sentiment"`
	SentimentLabel  string   `json:"sentiment_label" db:"sentiment_label"`
	ScoreCombined   float64  `json:"score_combined" db:"score_combined"`
	ScoreNormalized float64  `json:"score_normalized" db:"score_normalized"`
	Themes          []string `json:"themes" db:"-"`
	MatchedKeywords []string `json:"matched_keywords" db:"-"`
	IsRelevant      bool     `json:"is_relevant" db:"is_relevant"`
	AlertThreshold  float64  `json:"alert_threshold" db:"alert_threshold"`

	// JSON-encoded columns for sqlx round-trips.
	ThemesJSON   string `json:"-" db:"themes"`
	KeywordsJSON string `json:"-" db:"matched_keywords"`
}

// Source is the interface every fetcher must implement.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Article, error)
}

// NormalizeLink canonicalizes an article URL for identity and dedup:
// case-folded with the trailing slash stripped.
func NormalizeLink(link string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(link), "/"))
}

// Truncate shortens s to at most maxLen bytes, backing up so a multi-byte
// rune is never split.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
