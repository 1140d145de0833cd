// Package store persists the sliding-window article corpus in SQLite.
// It owns dedup-by-link, retention purging and score persistence; scoring
// itself never touches the database.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/marcvidal/macroradar/pkg/feed"
)

// Run records one scrape/score cycle for operational history.
type Run struct {
	ID             int64     `db:"id"`
	StartedAt      time.Time `db:"started_at"`
	ArticlesTotal  int       `db:"articles_total"`
	ArticlesNew    int       `db:"articles_new"`
	ArticlesPurged int       `db:"articles_purged"`
	AlertsSent     int       `db:"alerts_sent"`
	Threshold      float64   `db:"threshold"`
}

// Store is the persistence interface.
type Store interface {
	// InsertArticles merges a fetched batch, deduplicating by normalized
	// link against the corpus and within the batch. It returns the truly
	// new articles.
	InsertArticles(ctx context.Context, articles []feed.Article) ([]feed.Article, error)
	ListArticles(ctx context.Context) ([]feed.Article, error)
	GetArticle(ctx context.Context, link string) (*feed.Article, error)
	SaveScores(ctx context.Context, articles []feed.Article) error
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)
	CountBySource(ctx context.Context) (map[string]int, error)

	RecordRun(ctx context.Context, run *Run) error
	LastRun(ctx context.Context) (*Run, error)

	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) InsertArticles(ctx context.Context, articles []feed.Article) ([]feed.Article, error) {
	var fresh []feed.Article
	seen := make(map[string]bool)

	for i := range articles {
		a := articles[i]
		a.Link = feed.NormalizeLink(a.Link)
		if a.Link == "" || seen[a.Link] {
			continue
		}
		seen[a.Link] = true

		res, err := s.db.ExecContext(ctx, `
			INSERT INTO articles (link, source, title, content, published_date, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(link) DO NOTHING
		`, a.Link, a.Source, a.Title, a.Content, a.PublishedDate, a.FetchedAt)
		if err != nil {
			return nil, fmt.Errorf("insert article %s: %w", a.Link, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			fresh = append(fresh, a)
		}
	}
	return fresh, nil
}

func (s *SQLiteStore) ListArticles(ctx context.Context) ([]feed.Article, error) {
	var articles []feed.Article
	err := s.db.SelectContext(ctx, &articles,
		"SELECT * FROM articles ORDER BY fetched_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	for i := range articles {
		unmarshalScoreJSON(&articles[i])
	}
	return articles, nil
}

func (s *SQLiteStore) GetArticle(ctx context.Context, link string) (*feed.Article, error) {
	var a feed.Article
	err := s.db.GetContext(ctx, &a,
		"SELECT * FROM articles WHERE link = ?", feed.NormalizeLink(link))
	if err != nil {
		return nil, fmt.Errorf("get article %s: %w", link, err)
	}
	unmarshalScoreJSON(&a)
	return &a, nil
}

// SaveScores writes back every score field after a scoring run. Normalized
// scores are corpus-relative snapshots, so the whole corpus is rewritten.
func (s *SQLiteStore) SaveScores(ctx context.Context, articles []feed.Article) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin scores tx: %w", err)
	}
	defer tx.Rollback()

	for i := range articles {
		a := articles[i]
		marshalScoreJSON(&a)
		_, err := tx.ExecContext(ctx, `
			UPDATE articles SET
				score_relevance = ?, score_sentiment = ?, sentiment_label = ?,
				score_combined = ?, score_normalized = ?, themes = ?,
				matched_keywords = ?, is_relevant = ?, alert_threshold = ?
			WHERE link = ?
		`, a.ScoreRelevance, a.ScoreSentiment, a.SentimentLabel,
			a.ScoreCombined, a.ScoreNormalized, a.ThemesJSON,
			a.KeywordsJSON, a.IsRelevant, a.AlertThreshold, a.Link)
		if err != nil {
			return fmt.Errorf("save scores %s: %w", a.Link, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scores: %w", err)
	}
	return nil
}

// PurgeOlderThan removes articles whose published date falls before cutoff.
// Dates come from feeds in assorted formats and are parsed defensively;
// when nothing parses the fetch time decides, so malformed dates never
// strand an article in the corpus forever.
func (s *SQLiteStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	type row struct {
		Link          string    `db:"link"`
		PublishedDate string    `db:"published_date"`
		FetchedAt     time.Time `db:"fetched_at"`
	}
	var rows []row
	err := s.db.SelectContext(ctx, &rows,
		"SELECT link, published_date, fetched_at FROM articles")
	if err != nil {
		return 0, fmt.Errorf("list for purge: %w", err)
	}

	var expired []string
	for _, r := range rows {
		ts, ok := feed.ParseArticleDate(r.PublishedDate)
		if !ok {
			ts = r.FetchedAt
		}
		if ts.Before(cutoff) {
			expired = append(expired, r.Link)
		}
	}
	if len(expired) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In("DELETE FROM articles WHERE link IN (?)", expired)
	if err != nil {
		return 0, fmt.Errorf("build purge query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("purge articles: %w", err)
	}
	return len(expired), nil
}

func (s *SQLiteStore) CountBySource(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT source, COUNT(*) AS cnt FROM articles GROUP BY source")
	if err != nil {
		return nil, fmt.Errorf("count by source: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var src string
		var cnt int
		if err := rows.Scan(&src, &cnt); err != nil {
			return nil, err
		}
		counts[src] = cnt
	}
	return counts, rows.Err()
}

func (s *SQLiteStore) RecordRun(ctx context.Context, run *Run) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (started_at, articles_total, articles_new, articles_purged, alerts_sent, threshold)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.StartedAt, run.ArticlesTotal, run.ArticlesNew, run.ArticlesPurged,
		run.AlertsSent, run.Threshold)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	run.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) LastRun(ctx context.Context) (*Run, error) {
	var run Run
	err := s.db.GetContext(ctx, &run,
		"SELECT * FROM runs ORDER BY started_at DESC, id DESC LIMIT 1")
	if err != nil {
		return nil, fmt.Errorf("last run: %w", err)
	}
	return &run, nil
}

func marshalScoreJSON(a *feed.Article) {
	themes, _ := json.Marshal(emptyIfNil(a.Themes))
	keywords, _ := json.Marshal(emptyIfNil(a.MatchedKeywords))
	a.ThemesJSON = string(themes)
	a.KeywordsJSON = string(keywords)
}

func unmarshalScoreJSON(a *feed.Article) {
	json.Unmarshal([]byte(a.ThemesJSON), &a.Themes)
	json.Unmarshal([]byte(a.KeywordsJSON), &a.MatchedKeywords)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
