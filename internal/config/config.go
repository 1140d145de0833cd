package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/marcvidal/macroradar/pkg/scoring"
)

// Config is the root configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Sources   []SourceConfig  `yaml:"sources"`
	Enrich    EnrichConfig    `yaml:"enrich"`
	Scoring   scoring.Params  `yaml:"scoring"`
	Retention RetentionConfig `yaml:"retention"`
	Alerts    AlertsConfig    `yaml:"alerts"`
	Server    ServerConfig    `yaml:"server"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	LogLevel  string          `yaml:"log_level"`
}

// DatabaseConfig configures SQLite storage.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ScheduleConfig configures the scan interval for daemon mode.
type ScheduleConfig struct {
	ScanInterval string `yaml:"scan_interval"`
}

// ParseScanInterval returns the scan interval as time.Duration.
func (s ScheduleConfig) ParseScanInterval() time.Duration {
	d, err := time.ParseDuration(s.ScanInterval)
	if err != nil {
		return time.Hour
	}
	return d
}

// SourceConfig is one named publisher with its feed URLs.
type SourceConfig struct {
	Name    string       `yaml:"name"`
	Feeds   []FeedConfig `yaml:"feeds"`
	PerFeed int          `yaml:"per_feed"`
}

// FeedConfig is a single RSS/Atom feed entry.
type FeedConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// EnrichConfig controls full-page content fetching for short summaries.
type EnrichConfig struct {
	Enabled bool `yaml:"enabled"`
}

// RetentionConfig controls the sliding corpus window.
type RetentionConfig struct {
	Days int `yaml:"days"`
	TopN int `yaml:"top_n"`
}

// Window returns the retention window as a duration.
func (r RetentionConfig) Window() time.Duration {
	days := r.Days
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

// AlertsConfig configures alert destinations.
type AlertsConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Email    EmailConfig    `yaml:"email"`
	Slack    SlackConfig    `yaml:"slack"`
	Discord  DiscordConfig  `yaml:"discord"`
	Webhook  WebhookConfig  `yaml:"webhook"`
}

// TelegramConfig for Telegram Bot API alerts.
type TelegramConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
	ChatID  string `yaml:"chat_id"`
}

// EmailConfig for SMTP alerts.
type EmailConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	To       string `yaml:"to"`
}

// SlackConfig for Slack webhook alerts.
type SlackConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// DiscordConfig for Discord webhook alerts.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// WebhookConfig for generic webhook alerts.
type WebhookConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Secret  string `yaml:"secret"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DashboardConfig configures the static dashboard output.
type DashboardConfig struct {
	Path string `yaml:"path"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./macroradar.db"},
		Schedule: ScheduleConfig{ScanInterval: "1h"},
		Sources: []SourceConfig{
			{
				Name: "Bloomberg",
				Feeds: []FeedConfig{
					{Name: "Markets", URL: "https://feeds.bloomberg.com/markets/news.rss"},
					{Name: "Economics", URL: "https://feeds.bloomberg.com/economics/news.rss"},
					{Name: "Politics", URL: "https://feeds.bloomberg.com/politics/news.rss"},
				},
				PerFeed: 15,
			},
			{
				Name: "Economist",
				Feeds: []FeedConfig{
					{Name: "Finance", URL: "https://www.economist.com/finance-and-economics/rss.xml"},
					{Name: "Business", URL: "https://www.economist.com/business/rss.xml"},
					{Name: "International", URL: "https://www.economist.com/international/rss.xml"},
				},
				PerFeed: 15,
			},
		},
		Enrich:    EnrichConfig{Enabled: true},
		Scoring:   scoring.DefaultParams(),
		Retention: RetentionConfig{Days: 7, TopN: 20},
		Alerts:    AlertsConfig{},
		Server:    ServerConfig{Port: 8080},
		Dashboard: DashboardConfig{Path: "./index.html"},
		LogLevel:  "info",
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
// Setting a channel credential enables that channel.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MACRORADAR_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Alerts.Telegram.Token = v
		cfg.Alerts.Telegram.Enabled = true
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Alerts.Telegram.ChatID = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Alerts.Email.Host = v
		cfg.Alerts.Email.Enabled = true
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Alerts.Email.Port = port
		}
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		cfg.Alerts.Email.User = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Alerts.Email.Password = v
	}
	if v := os.Getenv("ALERT_EMAIL"); v != "" {
		cfg.Alerts.Email.To = v
	}
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		cfg.Alerts.Slack.WebhookURL = v
		cfg.Alerts.Slack.Enabled = true
	}
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Alerts.Discord.WebhookURL = v
		cfg.Alerts.Discord.Enabled = true
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		cfg.Alerts.Webhook.URL = v
		cfg.Alerts.Webhook.Enabled = true
	}
	if v := os.Getenv("WEBHOOK_SECRET"); v != "" {
		cfg.Alerts.Webhook.Secret = v
	}
}
