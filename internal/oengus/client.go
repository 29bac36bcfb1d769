// Package oengus is a minimal read-only client for the Oengus marathon API.
package oengus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"oengusbot/internal/logx"
)

const DefaultBaseURL = "https://oengus.io"

type Config struct {
	BaseURL  string // default DefaultBaseURL
	Marathon string // marathon slug, required
	Timeout  time.Duration
}

type Client struct {
	base     string
	marathon string
	http     *http.Client
	log      logx.Logger
}

func New(cfg Config, log logx.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.Marathon) == "" {
		return nil, fmt.Errorf("oengus: marathon slug is required")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base:     base,
		marathon: cfg.Marathon,
		http:     &http.Client{Timeout: timeout},
		log:      log,
	}, nil
}

// Submissions fetches the full game/category list in API order.
// The returned order is the announcement order downstream.
func (c *Client) Submissions(ctx context.Context) ([]Submission, error) {
	var subs []Submission
	url := fmt.Sprintf("%s/api/marathon/%s/game", c.base, c.marathon)
	if err := c.getJSON(ctx, url, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// Marathon fetches the marathon metadata (used for the event name).
func (c *Client) Marathon(ctx context.Context) (Marathon, error) {
	var m Marathon
	url := fmt.Sprintf("%s/api/marathon/%s", c.base, c.marathon)
	if err := c.getJSON(ctx, url, &m); err != nil {
		return Marathon{}, err
	}
	return m, nil
}

// SubmissionsURL is the human-facing submissions page, linked from embeds.
func (c *Client) SubmissionsURL() string {
	return fmt.Sprintf("%s/marathon/%s/submissions", c.base, c.marathon)
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("get %s: unexpected status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("get %s: decode: %w", url, err)
	}
	c.log.Debug("oengus fetch", logx.String("url", url), logx.Duration("took", time.Since(start)))
	return nil
}
