package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// minUsefulContent is the summary length below which the enricher goes out
// and fetches the full article page.
const minUsefulContent = 300

// Enricher replaces short feed summaries with extracted full-page text.
// Page fetches are rate-limited to stay polite with publishers.
type Enricher struct {
	client  *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewEnricher creates an enricher fetching at most two pages per second.
func NewEnricher(log *slog.Logger) *Enricher {
	return &Enricher{
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		log:     log,
	}
}

// Enrich fills in Content for articles whose summary is too short to score
// meaningfully. Failures leave the summary in place.
func (e *Enricher) Enrich(ctx context.Context, articles []Article) {
	for i := range articles {
		if len(articles[i].Content) >= minUsefulContent || articles[i].Link == "" {
			continue
		}
		if err := e.limiter.Wait(ctx); err != nil {
			return
		}
		text, err := e.extract(ctx, articles[i].Link)
		if err != nil {
			e.log.Debug("content enrichment failed", "link", articles[i].Link, "error", err)
			continue
		}
		if text != "" {
			articles[i].Content = text
		}
	}
}

// extract fetches a page and pulls out the main body text.
func (e *Enricher) extract(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "macroradar/1.0 (+https://github.com/marcvidal/macroradar)")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	doc.Find("script, style, nav, header, footer, aside, form").Remove()

	// Article body selectors in priority order.
	selectors := []string{
		"article",
		"[class*=article-body]",
		"[class*=story-body]",
		"[id*=article]",
		"main",
	}
	for _, sel := range selectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		text := collapse(node.Text())
		if len(text) > 200 {
			return Truncate(text, MaxContentLen), nil
		}
	}

	// Fallback: join all paragraphs.
	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return Truncate(collapse(strings.Join(parts, " ")), MaxContentLen), nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
