package alert

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Webhook sends notifications to a generic HTTP endpoint. The payload is an
// envelope with the rendered text, the alert reason and the article fields,
// so receivers can either display the text verbatim or process the article.
type Webhook struct {
	client *http.Client
	url    string
	secret string
}

type webhookArticle struct {
	Title     string   `json:"title"`
	Link      string   `json:"link"`
	Source    string   `json:"source"`
	Score     float64  `json:"score"`
	Threshold float64  `json:"threshold"`
	Themes    []string `json:"themes"`
	Sentiment string   `json:"sentiment"`
}

type webhookPayload struct {
	Text    string         `json:"text"`
	Reason  string         `json:"reason"`
	Article webhookArticle `json:"article"`
}

// NewWebhook creates a new generic webhook notifier.
func NewWebhook(url, secret string) *Webhook {
	return &Webhook{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    url,
		secret: secret,
	}
}

func (w *Webhook) Name() string { return "webhook" }

func (w *Webhook) Send(ctx context.Context, n *Notification) error {
	body, err := json.Marshal(webhookPayload{
		Text:   n.Message(),
		Reason: n.Reason,
		Article: webhookArticle{
			Title:     n.Title,
			Link:      n.Link,
			Source:    n.Source,
			Score:     n.Score,
			Threshold: n.Threshold,
			Themes:    n.Themes,
			Sentiment: n.Sentiment,
		},
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "macroradar/1.0")

	// HMAC signature for verification.
	if w.secret != "" {
		mac := hmac.New(sha256.New, []byte(w.secret))
		mac.Write(body)
		sig := hex.EncodeToString(mac.Sum(nil))
		req.Header.Set("X-Signature-256", "sha256="+sig)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}

	return nil
}
