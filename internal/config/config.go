// Package config loads the bot configuration from a JSON or YAML file.
//
// Config is read once at startup and is read-only afterwards. Decoding is
// strict: unknown fields and trailing data are rejected so a typoed key
// fails loudly instead of silently falling back to a default.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

type Config struct {
	Discord  DiscordConfig  `json:"discord"`
	Oengus   OengusConfig   `json:"oengus"`
	Announce AnnounceConfig `json:"announce"`
	Logging  LoggingConfig  `json:"logging"`
}

type DiscordConfig struct {
	Token string `json:"token"`
	// BotUserID is the bot's own user id, used to recognize its messages
	// when scanning channel history. Optional; the gateway identity is
	// used when omitted.
	BotUserID string `json:"bot_user_id,omitempty"`
	ChannelID string `json:"channel_id"`
	// LoginTimeout is a Go duration string (e.g. "30s").
	LoginTimeout string `json:"login_timeout,omitempty"`
}

type OengusConfig struct {
	BaseURL  string `json:"base_url,omitempty"` // default "https://oengus.io"
	Marathon string `json:"marathon"`           // marathon slug
	// HTTPTimeout is a Go duration string (e.g. "15s").
	HTTPTimeout string `json:"http_timeout,omitempty"`
}

// AnnounceConfig controls the tick schedule and outbound behavior.
//
// Interval defaults to "30m". The deployments this replaces ran at 10 and
// 30 minutes with no stated rationale, so it is a knob, not a constant.
type AnnounceConfig struct {
	Interval       string `json:"interval,omitempty"`
	PageSize       int    `json:"page_size,omitempty"`         // history page size, default 100
	SendRatePerSec int    `json:"send_rate_per_sec,omitempty"` // embed send pacing, default 1
}

type LoggingConfig struct {
	Level   string      `json:"level"`
	Console bool        `json:"console"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// Load reads, decodes, and validates the config file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	jb, _, err := coerceToJSONBytes(path, b)
	if err != nil {
		return nil, err
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(jb))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	// reject trailing tokens (e.g. concatenated JSON)
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("invalid config: trailing data")
		}
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Discord.Token) == "" {
		return fmt.Errorf("discord.token is required")
	}
	if strings.TrimSpace(c.Discord.ChannelID) == "" {
		return fmt.Errorf("discord.channel_id is required")
	}
	if strings.TrimSpace(c.Oengus.Marathon) == "" {
		return fmt.Errorf("oengus.marathon is required")
	}
	if c.Announce.PageSize < 0 || c.Announce.PageSize > 100 {
		return fmt.Errorf("announce.page_size must be between 0 and 100")
	}
	if c.Announce.SendRatePerSec < 0 {
		return fmt.Errorf("announce.send_rate_per_sec must be >= 0")
	}
	// Durations must at least parse, even though defaults apply later.
	for _, d := range []struct{ path, raw string }{
		{"discord.login_timeout", c.Discord.LoginTimeout},
		{"oengus.http_timeout", c.Oengus.HTTPTimeout},
		{"announce.interval", c.Announce.Interval},
	} {
		if _, err := ParseDurationField(d.path, d.raw); err != nil {
			return err
		}
	}
	return nil
}

// LoginTimeout returns discord.login_timeout, defaulting to 30s.
func (c *Config) LoginTimeout() time.Duration {
	return durationOrDefault(c.Discord.LoginTimeout, 30*time.Second)
}

// HTTPTimeout returns oengus.http_timeout, defaulting to 15s.
func (c *Config) HTTPTimeout() time.Duration {
	return durationOrDefault(c.Oengus.HTTPTimeout, 15*time.Second)
}

// Interval returns announce.interval, defaulting to 30m.
func (c *Config) Interval() time.Duration {
	return durationOrDefault(c.Announce.Interval, 30*time.Minute)
}

func durationOrDefault(raw string, def time.Duration) time.Duration {
	d, err := ParseDurationField("", raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func ParseDurationField(path, raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", path, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: duration must be >= 0", path)
	}
	return d, nil
}
