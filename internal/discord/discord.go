// Package discord adapts discordgo to the narrow session surface the
// announce package needs: bounded login, channel resolution, embed send,
// and backward history pagination.
package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"oengusbot/internal/announce"
	"oengusbot/internal/logx"
)

type Config struct {
	Token string
	// BotUserID is the identity used to recognize the bot's own messages
	// in history. When empty, the gateway-reported user id is used.
	BotUserID    string
	LoginTimeout time.Duration // default 30s
}

type Connector struct {
	cfg Config
	log logx.Logger
}

func NewConnector(cfg Config, log logx.Logger) (*Connector, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("discord: token is required")
	}
	if cfg.LoginTimeout <= 0 {
		cfg.LoginTimeout = 30 * time.Second
	}
	return &Connector{cfg: cfg, log: log}, nil
}

// Login opens a gateway session and waits for the ready event. On timeout
// (or caller cancellation) the half-open session is closed before the
// error surfaces, so no connection leaks out of a failed tick.
func (c *Connector) Login(ctx context.Context) (announce.Session, error) {
	s, err := discordgo.New("Bot " + c.cfg.Token)
	if err != nil {
		return nil, err
	}
	s.Identify.Intents = discordgo.IntentGuilds | discordgo.IntentGuildMessages

	ready := make(chan struct{})
	var once sync.Once
	s.AddHandler(func(_ *discordgo.Session, _ *discordgo.Ready) {
		once.Do(func() { close(ready) })
	})

	if err := s.Open(); err != nil {
		return nil, fmt.Errorf("open gateway: %w", err)
	}

	select {
	case <-ready:
	case <-time.After(c.cfg.LoginTimeout):
		_ = s.Close()
		return nil, fmt.Errorf("no ready event within %s", c.cfg.LoginTimeout)
	case <-ctx.Done():
		_ = s.Close()
		return nil, ctx.Err()
	}

	botID := c.cfg.BotUserID
	if botID == "" && s.State != nil && s.State.User != nil {
		botID = s.State.User.ID
	}
	c.log.Debug("discord session ready", logx.String("bot_user_id", botID))
	return &session{s: s, botID: botID}, nil
}

type session struct {
	s     *discordgo.Session
	botID string
}

func (se *session) BotUserID() string { return se.botID }
func (se *session) Close() error      { return se.s.Close() }

func (se *session) Channel(id string) (announce.Channel, error) {
	ch, err := se.s.Channel(id)
	if err != nil {
		return nil, err
	}
	return &channel{s: se.s, id: ch.ID}, nil
}

type channel struct {
	s  *discordgo.Session
	id string
}

func (c *channel) SendEmbed(ctx context.Context, e announce.Embed) error {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		URL:         e.URL,
		Description: e.Description,
		Color:       e.Color,
		Footer:      &discordgo.MessageEmbedFooter{Text: e.FooterText},
	}
	_, err := c.s.ChannelMessageSendEmbed(c.id, embed, discordgo.WithContext(ctx))
	return err
}

func (c *channel) MessagesBefore(ctx context.Context, beforeID string, limit int) ([]announce.Message, error) {
	msgs, err := c.s.ChannelMessages(c.id, limit, beforeID, "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]announce.Message, 0, len(msgs))
	for _, m := range msgs {
		am := announce.Message{ID: m.ID}
		if m.Author != nil {
			am.AuthorID = m.Author.ID
		}
		for _, e := range m.Embeds {
			info := announce.EmbedInfo{}
			if e.Footer != nil {
				info.FooterText = e.Footer.Text
			}
			am.Embeds = append(am.Embeds, info)
		}
		out = append(out, am)
	}
	return out, nil
}
