package feed

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestEnrich(t *testing.T) {
	body := strings.Repeat("The central bank held an emergency meeting today. ", 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body>
			<nav>Home News Markets</nav>
			<article>`+body+`</article>
			<footer>Copyright</footer>
		</body></html>`)
	}))
	defer srv.Close()

	articles := []Article{
		{Link: srv.URL + "/story", Content: "Short summary."},
	}

	e := NewEnricher(testLogger())
	e.Enrich(context.Background(), articles)

	got := articles[0].Content
	if !strings.Contains(got, "emergency meeting") {
		t.Errorf("content not enriched: %q", got)
	}
	if strings.Contains(got, "Home News Markets") || strings.Contains(got, "Copyright") {
		t.Errorf("navigation chrome leaked into content: %q", got)
	}
}

func TestEnrichSkipsLongContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected fetch for article with sufficient content")
	}))
	defer srv.Close()

	long := strings.Repeat("word ", 100)
	articles := []Article{{Link: srv.URL, Content: long}}

	e := NewEnricher(testLogger())
	e.Enrich(context.Background(), articles)

	if articles[0].Content != long {
		t.Errorf("content changed despite being long enough")
	}
}

func TestEnrichFailureKeepsSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	articles := []Article{{Link: srv.URL, Content: "Original summary."}}

	e := NewEnricher(testLogger())
	e.Enrich(context.Background(), articles)

	if articles[0].Content != "Original summary." {
		t.Errorf("content = %q, want original kept on failure", articles[0].Content)
	}
}

func TestEnrichParagraphFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body>
			<div><p>First paragraph about the rate decision.</p></div>
			<div><p>Second paragraph with market reaction.</p></div>
		</body></html>`)
	}))
	defer srv.Close()

	articles := []Article{{Link: srv.URL, Content: ""}}

	e := NewEnricher(testLogger())
	e.Enrich(context.Background(), articles)

	got := articles[0].Content
	if !strings.Contains(got, "rate decision") || !strings.Contains(got, "market reaction") {
		t.Errorf("paragraph fallback failed: %q", got)
	}
}
