package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/marcvidal/macroradar/internal/store"
	"github.com/marcvidal/macroradar/pkg/feed"
	"github.com/marcvidal/macroradar/pkg/render"
)

type fakeStore struct {
	articles []feed.Article
}

func (f *fakeStore) InsertArticles(ctx context.Context, a []feed.Article) ([]feed.Article, error) {
	return nil, nil
}

func (f *fakeStore) ListArticles(ctx context.Context) ([]feed.Article, error) {
	return f.articles, nil
}

func (f *fakeStore) GetArticle(ctx context.Context, link string) (*feed.Article, error) {
	return nil, errors.New("not found")
}

func (f *fakeStore) SaveScores(ctx context.Context, a []feed.Article) error { return nil }

func (f *fakeStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	return 0, nil
}

func (f *fakeStore) CountBySource(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, a := range f.articles {
		counts[a.Source]++
	}
	return counts, nil
}

func (f *fakeStore) RecordRun(ctx context.Context, run *store.Run) error { return nil }

func (f *fakeStore) LastRun(ctx context.Context) (*store.Run, error) { return nil, nil }

func (f *fakeStore) Close() error { return nil }

type fakeScanner struct {
	cycles int
	err    error
}

func (f *fakeScanner) Cycle(ctx context.Context) error {
	f.cycles++
	return f.err
}

func newTestServer(t *testing.T, db store.Store, scanner Scanner) *Server {
	t.Helper()
	renderer, err := render.New(filepath.Join(t.TempDir(), "index.html"))
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(db, renderer, scanner, 2, 0, log)
}

func TestHandleArticles(t *testing.T) {
	db := &fakeStore{articles: []feed.Article{
		{Title: "One", Source: "Bloomberg", ScoreNormalized: 80},
		{Title: "Two", Source: "Economist", ScoreNormalized: 30},
	}}
	srv := newTestServer(t, db, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/articles", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Data  []feed.Article `json:"data"`
		Count int            `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 || len(resp.Data) != 2 {
		t.Errorf("count = %d, data = %d", resp.Count, len(resp.Data))
	}
}

func TestHandleTop(t *testing.T) {
	db := &fakeStore{articles: []feed.Article{
		{Title: "Low", ScoreNormalized: 10},
		{Title: "High", ScoreNormalized: 90},
		{Title: "Mid", ScoreNormalized: 50},
	}}
	srv := newTestServer(t, db, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/top", nil))

	var resp struct {
		Data []feed.Article `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("top = %d, want topN limit of 2", len(resp.Data))
	}
	if resp.Data[0].Title != "High" || resp.Data[1].Title != "Mid" {
		t.Errorf("top order = %q, %q", resp.Data[0].Title, resp.Data[1].Title)
	}
}

func TestHandleSources(t *testing.T) {
	db := &fakeStore{articles: []feed.Article{
		{Source: "Bloomberg"}, {Source: "Bloomberg"}, {Source: "Economist"},
	}}
	srv := newTestServer(t, db, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sources", nil))

	var resp struct {
		Data map[string]int `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data["Bloomberg"] != 2 || resp.Data["Economist"] != 1 {
		t.Errorf("sources = %v", resp.Data)
	}
}

func TestHandleScan(t *testing.T) {
	scanner := &fakeScanner{}
	srv := newTestServer(t, &fakeStore{}, scanner)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/scan", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if scanner.cycles != 1 {
		t.Errorf("cycles = %d, want 1", scanner.cycles)
	}
}

func TestHandleScanNotConfigured(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/scan", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHandleDashboard(t *testing.T) {
	db := &fakeStore{articles: []feed.Article{
		{Title: "Fed cuts rates", ScoreNormalized: 88, IsRelevant: true},
	}}
	srv := newTestServer(t, db, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Fed cuts rates") {
		t.Errorf("dashboard missing article title")
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
