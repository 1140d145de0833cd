package store

const schema = `
CREATE TABLE IF NOT EXISTS articles (
    link             TEXT PRIMARY KEY,
    source           TEXT NOT NULL,
    title            TEXT NOT NULL DEFAULT '',
    content          TEXT NOT NULL DEFAULT '',
    published_date   TEXT NOT NULL DEFAULT '',
    fetched_at       DATETIME NOT NULL,
    score_relevance  REAL NOT NULL DEFAULT 0,
    score_sentiment  REAL NOT NULL DEFAULT 0,
    sentiment_label  TEXT NOT NULL DEFAULT 'neutral',
    score_combined   REAL NOT NULL DEFAULT 0,
    score_normalized REAL NOT NULL DEFAULT 0,
    themes           TEXT NOT NULL DEFAULT '[]',
    matched_keywords TEXT NOT NULL DEFAULT '[]',
    is_relevant      BOOLEAN NOT NULL DEFAULT 0,
    alert_threshold  REAL NOT NULL DEFAULT 75
);

CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source);
CREATE INDEX IF NOT EXISTS idx_articles_fetched_at ON articles(fetched_at);
CREATE INDEX IF NOT EXISTS idx_articles_normalized ON articles(score_normalized);

CREATE TABLE IF NOT EXISTS runs (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at      DATETIME NOT NULL,
    articles_total  INTEGER NOT NULL DEFAULT 0,
    articles_new    INTEGER NOT NULL DEFAULT 0,
    articles_purged INTEGER NOT NULL DEFAULT 0,
    alerts_sent     INTEGER NOT NULL DEFAULT 0,
    threshold       REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`
