// Package announce holds the tick logic: reconcile the live Oengus
// submission list against the ids already announced in channel history,
// and post one embed per category that is still missing.
//
// The channel's message history is the only durable state. Every embed
// carries its category id in the footer ("ID: <digits>") and every tick
// rebuilds the announced set by re-scanning history, which makes ticks
// idempotent with respect to categories that were already posted.
package announce

import (
	"context"

	"oengusbot/internal/oengus"
)

// Embed is the outbound announcement payload, write-once.
type Embed struct {
	Title       string
	URL         string
	Description string
	Color       int
	FooterText  string
}

// EmbedInfo is the slice of a historical embed the scanner cares about.
type EmbedInfo struct {
	FooterText string
}

// Message is a historical channel message as seen by the scanner.
type Message struct {
	ID       string
	AuthorID string
	Embeds   []EmbedInfo
}

// Channel is the narrow channel handle the tick needs: send one embed,
// page backward through history.
type Channel interface {
	SendEmbed(ctx context.Context, e Embed) error
	// MessagesBefore returns up to limit messages older than beforeID,
	// newest first. An empty beforeID starts from the newest message.
	// An empty result means history is exhausted.
	MessagesBefore(ctx context.Context, beforeID string, limit int) ([]Message, error)
}

// Session is an established chat session, torn down at the end of each tick.
type Session interface {
	Channel(id string) (Channel, error)
	// BotUserID is the identity used to recognize the bot's own messages.
	BotUserID() string
	Close() error
}

// Connector establishes a Session, bounded by the platform login timeout.
type Connector interface {
	Login(ctx context.Context) (Session, error)
}

// Source is the submission-list side of a tick.
type Source interface {
	Submissions(ctx context.Context) ([]oengus.Submission, error)
	Marathon(ctx context.Context) (oengus.Marathon, error)
	SubmissionsURL() string
}

// Pending is one (submission, category) pair awaiting announcement.
type Pending struct {
	Submission oengus.Submission
	Category   oengus.Category
}
