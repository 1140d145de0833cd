package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/marcvidal/macroradar/internal/config"
	"github.com/marcvidal/macroradar/internal/logging"
	"github.com/marcvidal/macroradar/internal/scheduler"
	"github.com/marcvidal/macroradar/internal/store"
	"github.com/marcvidal/macroradar/pkg/alert"
	"github.com/marcvidal/macroradar/pkg/feed"
	"github.com/marcvidal/macroradar/pkg/render"
	"github.com/marcvidal/macroradar/pkg/scoring"
	"github.com/marcvidal/macroradar/pkg/server"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func buildSources(cfg *config.Config, log *slog.Logger) []feed.Source {
	var sources []feed.Source
	for _, src := range cfg.Sources {
		feeds := make([]feed.RSSFeed, len(src.Feeds))
		for i, f := range src.Feeds {
			feeds[i] = feed.RSSFeed{Name: f.Name, URL: f.URL}
		}
		sources = append(sources, feed.NewRSS(src.Name, feeds, src.PerFeed, log))
	}
	return sources
}

func buildAlertManager(cfg *config.Config) *alert.Manager {
	var notifiers []alert.Notifier

	if cfg.Alerts.Telegram.Enabled && cfg.Alerts.Telegram.Token != "" && cfg.Alerts.Telegram.ChatID != "" {
		notifiers = append(notifiers, alert.NewTelegram(cfg.Alerts.Telegram.Token, cfg.Alerts.Telegram.ChatID))
	}
	if e := cfg.Alerts.Email; e.Enabled && e.Host != "" && e.User != "" && e.To != "" {
		notifiers = append(notifiers, alert.NewEmail(e.Host, e.Port, e.User, e.Password, e.To))
	}
	if cfg.Alerts.Slack.Enabled && cfg.Alerts.Slack.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewSlack(cfg.Alerts.Slack.WebhookURL))
	}
	if cfg.Alerts.Discord.Enabled && cfg.Alerts.Discord.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewDiscord(cfg.Alerts.Discord.WebhookURL))
	}
	if cfg.Alerts.Webhook.Enabled && cfg.Alerts.Webhook.URL != "" {
		notifiers = append(notifiers, alert.NewWebhook(cfg.Alerts.Webhook.URL, cfg.Alerts.Webhook.Secret))
	}

	return alert.NewManager(notifiers)
}

func buildScheduler(cfg *config.Config, db store.Store, log *slog.Logger) (*scheduler.Scheduler, error) {
	renderer, err := render.New(cfg.Dashboard.Path)
	if err != nil {
		return nil, err
	}

	var enricher *feed.Enricher
	if cfg.Enrich.Enabled {
		enricher = feed.NewEnricher(log)
	}

	return scheduler.New(
		db,
		buildSources(cfg, log),
		enricher,
		scoring.NewScorer(scoring.Default(), cfg.Scoring),
		buildAlertManager(cfg),
		renderer,
		cfg.Schedule.ParseScanInterval(),
		cfg.Retention.Window(),
		cfg.Retention.TopN,
		log,
	), nil
}

func runFetch(noEnrich bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logging.New(cfg.LogLevel)

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	var all []feed.Article
	for _, src := range buildSources(cfg, log) {
		articles, err := src.Fetch(ctx)
		if err != nil {
			log.Warn("source fetch failed", "source", src.Name(), "error", err)
			continue
		}
		log.Info("source fetched", "source", src.Name(), "articles", len(articles))
		all = append(all, articles...)
	}

	if cfg.Enrich.Enabled && !noEnrich {
		feed.NewEnricher(log).Enrich(ctx, all)
	}

	fresh, err := db.InsertArticles(ctx, all)
	if err != nil {
		return fmt.Errorf("store articles: %w", err)
	}
	log.Info("fetch complete", "fetched", len(all), "new", len(fresh))
	return nil
}

func runScan() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logging.New(cfg.LogLevel)

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	sched, err := buildScheduler(cfg, db, log)
	if err != nil {
		return err
	}
	return sched.Cycle(context.Background())
}

func runTop(jsonOutput bool, limit int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	articles, err := db.ListArticles(context.Background())
	if err != nil {
		return fmt.Errorf("list articles: %w", err)
	}
	top := scoring.TopArticles(articles, limit)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(top)
	}

	if len(top) == 0 {
		fmt.Println("no articles found (try: macroradar scan)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tALERT\tSOURCE\tTITLE")
	for _, a := range top {
		mark := ""
		if a.IsRelevant {
			mark = "!"
		}
		fmt.Fprintf(w, "%.1f\t%s\t%s\t%s\n", a.ScoreNormalized, mark, a.Source, a.Title)
	}
	return w.Flush()
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	log := logging.New(cfg.LogLevel)

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	sched, err := buildScheduler(cfg, db, log)
	if err != nil {
		return err
	}

	renderer, err := render.New(cfg.Dashboard.Path)
	if err != nil {
		return err
	}

	srv := server.New(db, renderer, sched, cfg.Retention.TopN, cfg.Server.Port, log)
	return srv.ListenAndServe()
}

func runDaemon(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	log := logging.New(cfg.LogLevel)

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	sched, err := buildScheduler(cfg, db, log)
	if err != nil {
		return err
	}

	renderer, err := render.New(cfg.Dashboard.Path)
	if err != nil {
		return err
	}
	srv := server.New(db, renderer, sched, cfg.Retention.TopN, cfg.Server.Port, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	go func() { errCh <- sched.Run(ctx) }()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		return nil
	case err := <-errCh:
		return err
	}
}
