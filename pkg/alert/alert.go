// Package alert dispatches article alerts to configured channels. Channels
// are independent: one failing webhook never blocks the others, and
// failures are logged by the caller rather than raised.
package alert

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Reason explains why an article alerted.
const (
	ReasonScore = "score"
	ReasonTheme = "theme"
	ReasonBoth  = "both"
)

// Notification is the data sent to alert destinations.
type Notification struct {
	Title     string   `json:"title"`
	Link      string   `json:"link"`
	Source    string   `json:"source"`
	Score     float64  `json:"score"`
	Threshold float64  `json:"threshold"`
	Themes    []string `json:"themes"`
	Sentiment string   `json:"sentiment"`
	Reason    string   `json:"reason"`
}

// Message renders the plain-text alert body shared by text channels.
func (n *Notification) Message() string {
	themes := strings.Join(n.Themes, ", ")
	if themes == "" {
		themes = "n/a"
	}
	return fmt.Sprintf(
		"MACRO ALERT\nSource: %s\nScore: %.1f/100 (threshold %.1f)\nThemes: %s\nTitle: %s\nLink: %s",
		n.Source, n.Score, n.Threshold, themes, n.Title, n.Link)
}

// Notifier delivers alerts to a specific destination.
type Notifier interface {
	Name() string
	Send(ctx context.Context, n *Notification) error
}

// Manager broadcasts notifications to all registered notifiers.
type Manager struct {
	notifiers []Notifier
}

// NewManager creates a new alert manager.
func NewManager(notifiers []Notifier) *Manager {
	return &Manager{notifiers: notifiers}
}

// HasNotifiers returns true if at least one notifier is configured.
func (m *Manager) HasNotifiers() bool {
	return len(m.notifiers) > 0
}

// Broadcast sends a notification to all registered notifiers and joins
// per-channel errors.
func (m *Manager) Broadcast(ctx context.Context, n *Notification) error {
	var errs []error
	for _, notifier := range m.notifiers {
		if err := notifier.Send(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", notifier.Name(), err))
		}
	}
	return errors.Join(errs...)
}
