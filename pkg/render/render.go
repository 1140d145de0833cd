// Package render writes the static dashboard generated from the scored
// corpus. Output is a single self-contained index.html.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/marcvidal/macroradar/pkg/feed"
)

// themeLabels maps theme identifiers to display names.
var themeLabels = map[string]string{
	"war_conflict":       "War / Conflict",
	"market_crash":       "Market Crash",
	"monetary_emergency": "Fed Emergency",
	"sovereign_default":  "Sovereign Default",
	"banking_crisis":     "Banking Crisis",
	"sanctions_major":    "Sanctions",
	"geopolitical_shock": "Geopolitical Shock",
	"recession":          "Recession",
	"inflation":          "Inflation",
	"oil_energy":         "Oil / Energy",
	"market_volatility":  "Volatility",
	"central_bank":       "Central Bank",
}

// dayCount is one bucket of the articles-per-day strip, oldest day first.
type dayCount struct {
	Day   string
	Count int
}

// themeCount is one entry of the theme frequency strip.
type themeCount struct {
	Label string
	Count int
}

// card is the per-article view model.
type card struct {
	Title      string
	Link       string
	Source     string
	Published  string
	Score      float64
	ScoreColor string
	Themes     []string
	Keywords   string
	Sentiment  string
	Preview    string
	IsAlert    bool
}

type page struct {
	GeneratedAt string
	Total       int
	Threshold   float64
	Days        []dayCount
	ThemeCounts []themeCount
	Top         []card
	All         []card
}

// Renderer generates the dashboard file.
type Renderer struct {
	path string
	tmpl *template.Template
}

// New creates a renderer writing to path.
func New(path string) (*Renderer, error) {
	tmpl, err := template.New("dashboard").Parse(dashboardTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}
	return &Renderer{path: path, tmpl: tmpl}, nil
}

// Generate renders the dashboard and writes it atomically (temp file plus
// rename) so a crash mid-write never leaves a half-rendered page.
func (r *Renderer) Generate(all, top []feed.Article) error {
	out, err := r.RenderHTML(all, top)
	if err != nil {
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return fmt.Errorf("write dashboard temp: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace dashboard %s: %w", filepath.Base(r.path), err)
	}
	return nil
}

// RenderHTML renders the page to memory, for serving without touching disk.
func (r *Renderer) RenderHTML(all, top []feed.Article) ([]byte, error) {
	p := page{
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04 UTC"),
		Total:       len(all),
	}
	if len(all) > 0 {
		p.Threshold = all[0].AlertThreshold
	}
	p.Days, p.ThemeCounts = buildStats(time.Now().UTC(), all)
	for _, a := range top {
		p.Top = append(p.Top, toCard(a))
	}
	for _, a := range all {
		p.All = append(p.All, toCard(a))
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("render dashboard: %w", err)
	}
	return buf.Bytes(), nil
}

// buildStats aggregates the corpus into the dashboard strips: articles per
// publication day over the trailing week, and theme frequencies. Articles
// whose published date does not parse simply fall out of the day buckets.
func buildStats(now time.Time, articles []feed.Article) ([]dayCount, []themeCount) {
	days := make([]dayCount, 7)
	index := make(map[string]int, 7)
	for i := range days {
		d := now.AddDate(0, 0, i-6).Format("2006-01-02")
		days[i] = dayCount{Day: d}
		index[d] = i
	}

	themes := make(map[string]int)
	for i := range articles {
		if ts, ok := feed.ParseArticleDate(articles[i].PublishedDate); ok {
			if j, ok := index[ts.UTC().Format("2006-01-02")]; ok {
				days[j].Count++
			}
		}
		for _, t := range articles[i].Themes {
			themes[t]++
		}
	}

	counts := make([]themeCount, 0, len(themes))
	for id, c := range themes {
		counts = append(counts, themeCount{Label: themeLabel(id), Count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Label < counts[j].Label
	})
	return days, counts
}

func themeLabel(id string) string {
	if label, ok := themeLabels[id]; ok {
		return label
	}
	return id
}

func toCard(a feed.Article) card {
	var themes []string
	for _, t := range a.Themes {
		themes = append(themes, themeLabel(t))
	}

	preview := feed.Truncate(a.Content, 300)
	if preview != a.Content {
		preview += "…"
	}

	return card{
		Title:      a.Title,
		Link:       a.Link,
		Source:     a.Source,
		Published:  a.PublishedDate,
		Score:      a.ScoreNormalized,
		ScoreColor: scoreColor(a.ScoreNormalized),
		Themes:     themes,
		Keywords:   strings.Join(a.MatchedKeywords, ", "),
		Sentiment:  a.SentimentLabel,
		Preview:    preview,
		IsAlert:    a.IsRelevant,
	}
}

// scoreColor picks the score-pill color on a cold-to-hot gradient.
func scoreColor(score float64) string {
	switch {
	case score >= 70:
		return "#3fb950"
	case score >= 50:
		return "#d29922"
	case score >= 30:
		return "#f0883e"
	default:
		return "#8b949e"
	}
}
