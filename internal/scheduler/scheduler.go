// Package scheduler runs the periodic scrape/score/alert/render cycle.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/marcvidal/macroradar/internal/store"
	"github.com/marcvidal/macroradar/pkg/alert"
	"github.com/marcvidal/macroradar/pkg/feed"
	"github.com/marcvidal/macroradar/pkg/render"
	"github.com/marcvidal/macroradar/pkg/scoring"
)

// Scheduler wires the collaborators of one cycle: fetch, store, score,
// alert, render.
type Scheduler struct {
	store     store.Store
	sources   []feed.Source
	enricher  *feed.Enricher // nil disables enrichment
	scorer    *scoring.Scorer
	alertMgr  *alert.Manager
	renderer  *render.Renderer
	interval  time.Duration
	retention time.Duration
	topN      int
	log       *slog.Logger
}

// New creates a scheduler.
func New(
	s store.Store,
	sources []feed.Source,
	enricher *feed.Enricher,
	scorer *scoring.Scorer,
	alertMgr *alert.Manager,
	renderer *render.Renderer,
	interval, retention time.Duration,
	topN int,
	log *slog.Logger,
) *Scheduler {
	if interval == 0 {
		interval = time.Hour
	}
	if retention == 0 {
		retention = 7 * 24 * time.Hour
	}
	if topN == 0 {
		topN = 20
	}
	return &Scheduler{
		store:     s,
		sources:   sources,
		enricher:  enricher,
		scorer:    scorer,
		alertMgr:  alertMgr,
		renderer:  renderer,
		interval:  interval,
		retention: retention,
		topN:      topN,
		log:       log,
	}
}

// Run starts the scheduler loop. The first cycle runs immediately; the loop
// blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("scheduler starting", "interval", s.interval)
	if err := s.Cycle(ctx); err != nil {
		s.log.Error("cycle failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := s.Cycle(ctx); err != nil {
				s.log.Error("cycle failed", "error", err)
			}
		}
	}
}

// Cycle executes one full pass: fetch fresh articles, merge them into the
// sliding-window corpus, re-score the whole corpus, alert on qualifying new
// articles and regenerate the dashboard.
func (s *Scheduler) Cycle(ctx context.Context) error {
	run := store.Run{StartedAt: time.Now().UTC()}

	fetched := s.fetchAll(ctx)
	s.log.Info("fetch complete", "articles", len(fetched))

	fresh, err := s.store.InsertArticles(ctx, fetched)
	if err != nil {
		return err
	}
	run.ArticlesNew = len(fresh)

	purged, err := s.store.PurgeOlderThan(ctx, time.Now().UTC().Add(-s.retention))
	if err != nil {
		return err
	}
	run.ArticlesPurged = purged
	if purged > 0 {
		s.log.Info("purged expired articles", "count", purged)
	}

	corpus, err := s.store.ListArticles(ctx)
	if err != nil {
		return err
	}
	run.ArticlesTotal = len(corpus)

	// Re-score everything: normalized scores are corpus-relative and stale
	// the moment membership changes.
	corpus = s.scorer.ScoreCorpus(corpus)
	if err := s.store.SaveScores(ctx, corpus); err != nil {
		return err
	}
	if len(corpus) > 0 {
		run.Threshold = corpus[0].AlertThreshold
	}

	run.AlertsSent = s.alertNew(ctx, corpus, fresh)

	if s.renderer != nil {
		top := scoring.TopArticles(corpus, s.topN)
		if err := s.renderer.Generate(corpus, top); err != nil {
			s.log.Error("dashboard render failed", "error", err)
		}
	}

	if err := s.store.RecordRun(ctx, &run); err != nil {
		s.log.Warn("record run failed", "error", err)
	}

	s.log.Info("cycle complete",
		"total", run.ArticlesTotal, "new", run.ArticlesNew,
		"purged", run.ArticlesPurged, "alerts", run.AlertsSent,
		"threshold", run.Threshold)
	return nil
}

func (s *Scheduler) fetchAll(ctx context.Context) []feed.Article {
	var all []feed.Article
	for _, src := range s.sources {
		articles, err := src.Fetch(ctx)
		if err != nil {
			s.log.Warn("source fetch failed", "source", src.Name(), "error", err)
			continue
		}
		s.log.Info("source fetched", "source", src.Name(), "articles", len(articles))
		all = append(all, articles...)
	}
	if s.enricher != nil {
		s.enricher.Enrich(ctx, all)
	}
	return all
}

// alertNew fires alerts for truly-new articles that cleared the threshold
// or matched a critical theme. Channel failures are logged, never raised.
func (s *Scheduler) alertNew(ctx context.Context, corpus, fresh []feed.Article) int {
	if s.alertMgr == nil || !s.alertMgr.HasNotifiers() || len(fresh) == 0 {
		return 0
	}

	scored := make(map[string]*feed.Article, len(corpus))
	for i := range corpus {
		scored[corpus[i].Link] = &corpus[i]
	}

	sent := 0
	for i := range fresh {
		a, ok := scored[fresh[i].Link]
		if !ok {
			continue
		}

		aboveThreshold := a.ScoreNormalized >= a.AlertThreshold
		hasTheme := len(a.Themes) > 0
		if !aboveThreshold && !hasTheme {
			continue
		}

		reason := alert.ReasonScore
		switch {
		case aboveThreshold && hasTheme:
			reason = alert.ReasonBoth
		case hasTheme:
			reason = alert.ReasonTheme
		}

		n := &alert.Notification{
			Title:     a.Title,
			Link:      a.Link,
			Source:    a.Source,
			Score:     a.ScoreNormalized,
			Threshold: a.AlertThreshold,
			Themes:    a.Themes,
			Sentiment: a.SentimentLabel,
			Reason:    reason,
		}
		if err := s.alertMgr.Broadcast(ctx, n); err != nil {
			s.log.Warn("alert dispatch failed", "title", a.Title, "error", err)
			continue
		}
		s.log.Info("alert sent", "reason", reason, "score", a.ScoreNormalized, "title", a.Title)
		sent++
	}
	return sent
}
