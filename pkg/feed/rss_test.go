package feed

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Markets Feed</title>
    <item>
      <title>  Fed signals rate cut  </title>
      <link>https://Example.com/fed-rate-cut/</link>
      <description>&lt;p&gt;Markets &amp;amp; traders &lt;b&gt;rally&lt;/b&gt; on the news.&lt;/p&gt;</description>
      <pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
    </item>
    <item>
      <title>Second story</title>
      <link>https://example.com/second</link>
      <description>Short summary.</description>
    </item>
    <item>
      <title>Third story</title>
      <link>https://example.com/third</link>
      <description>Over the per-feed limit.</description>
    </item>
  </channel>
</rss>`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRSSFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		io.WriteString(w, testRSS)
	}))
	defer srv.Close()

	src := NewRSS("TestSource", []RSSFeed{{Name: "markets", URL: srv.URL}}, 2, testLogger())

	articles, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("articles = %d, want per-feed limit of 2", len(articles))
	}

	a := articles[0]
	if a.Link != "https://example.com/fed-rate-cut" {
		t.Errorf("link = %q, want normalized", a.Link)
	}
	if a.Title != "Fed signals rate cut" {
		t.Errorf("title = %q, want trimmed", a.Title)
	}
	if a.Content != "Markets & traders rally on the news." {
		t.Errorf("content = %q, want sanitized plain text", a.Content)
	}
	if a.Source != "TestSource" {
		t.Errorf("source = %q", a.Source)
	}
	if a.PublishedDate != "Mon, 02 Jan 2006 15:04:05 -0700" {
		t.Errorf("published = %q", a.PublishedDate)
	}
	if a.FetchedAt.IsZero() {
		t.Errorf("fetched_at not set")
	}
}

func TestRSSFetchFeedFailureIsolated(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, testRSS)
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer bad.Close()

	src := NewRSS("TestSource", []RSSFeed{
		{Name: "broken", URL: bad.URL},
		{Name: "markets", URL: good.URL},
	}, 0, testLogger())

	articles, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(articles) != 3 {
		t.Errorf("articles = %d, want 3 from the healthy feed", len(articles))
	}
}
