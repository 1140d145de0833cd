package feed

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

// RSSFeed is a single named RSS/Atom feed URL.
type RSSFeed struct {
	Name string
	URL  string
}

// RSS collects articles from a set of RSS/Atom feeds under one source name
// (e.g. "Bloomberg" with its markets/economics/politics feeds).
type RSS struct {
	name     string
	client   *http.Client
	parser   *gofeed.Parser
	sanitize *bluemonday.Policy
	feeds    []RSSFeed
	perFeed  int
	log      *slog.Logger
}

// NewRSS creates an RSS source. perFeed limits entries taken per feed
// (defaults to 15).
func NewRSS(name string, feeds []RSSFeed, perFeed int, log *slog.Logger) *RSS {
	if perFeed <= 0 {
		perFeed = 15
	}
	return &RSS{
		name:     name,
		client:   &http.Client{Timeout: 30 * time.Second},
		parser:   gofeed.NewParser(),
		sanitize: bluemonday.StrictPolicy(),
		feeds:    feeds,
		perFeed:  perFeed,
		log:      log,
	}
}

func (r *RSS) Name() string { return r.name }

// Fetch collects entries from every configured feed. A failing feed is
// logged and skipped so one outage never empties the whole source.
func (r *RSS) Fetch(ctx context.Context) ([]Article, error) {
	var articles []Article
	for _, f := range r.feeds {
		items, err := r.fetchFeed(ctx, f)
		if err != nil {
			r.log.Warn("feed fetch failed", "source", r.name, "feed", f.Name, "error", err)
			continue
		}
		articles = append(articles, items...)
	}
	return articles, nil
}

func (r *RSS) fetchFeed(ctx context.Context, f RSSFeed) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request %s: %w", f.Name, err)
	}
	req.Header.Set("User-Agent", "macroradar/1.0 (+https://github.com/marcvidal/macroradar)")
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", f.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s status %d", f.Name, resp.StatusCode)
	}

	parsed, err := r.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Name, err)
	}

	var articles []Article
	for i, entry := range parsed.Items {
		if i >= r.perFeed {
			break
		}
		link := entry.Link
		if link == "" && len(entry.Links) > 0 {
			link = entry.Links[0]
		}
		if link == "" {
			continue
		}

		published := entry.Published
		if published == "" {
			published = entry.Updated
		}

		articles = append(articles, Article{
			Link:          NormalizeLink(link),
			Source:        r.name,
			Title:         strings.TrimSpace(entry.Title),
			Content:       Truncate(r.plainText(entry.Description), MaxContentLen),
			PublishedDate: published,
			FetchedAt:     time.Now().UTC(),
		})
	}
	return articles, nil
}

// plainText strips markup from a feed summary and collapses whitespace.
func (r *RSS) plainText(s string) string {
	clean := html.UnescapeString(r.sanitize.Sanitize(s))
	return strings.Join(strings.Fields(clean), " ")
}
