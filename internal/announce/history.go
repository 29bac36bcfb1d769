package announce

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"oengusbot/internal/logx"
)

var footerIDPattern = regexp.MustCompile(`ID: ([0-9]+)`)

// announcedIDs walks the channel history backward (each page keyed on the
// previous page's oldest message id, so pagination is inherently sequential)
// and collects every category id the bot has already announced.
//
// A message counts only if it was authored by the bot itself, has exactly
// one embed, and that embed's footer matches footerIDPattern. Anything else
// is skipped, never an error: one unparsable footer must not corrupt the
// rest of the announced set.
func announcedIDs(ctx context.Context, ch Channel, botID string, pageSize int, log logx.Logger) (map[int64]struct{}, error) {
	ids := make(map[int64]struct{})
	before := ""
	for {
		msgs, err := ch.MessagesBefore(ctx, before, pageSize)
		if err != nil {
			return nil, fmt.Errorf("history page before %q: %w", before, err)
		}
		if len(msgs) == 0 {
			return ids, nil
		}
		for _, m := range msgs {
			if m.AuthorID != botID || len(m.Embeds) != 1 {
				continue
			}
			match := footerIDPattern.FindStringSubmatch(m.Embeds[0].FooterText)
			if len(match) != 2 {
				continue
			}
			id, err := strconv.ParseInt(match[1], 10, 64)
			if err != nil {
				// Digit run too long for int64. Skip, same as a mismatch.
				log.Warn("skipping footer with out-of-range id",
					logx.String("message_id", m.ID),
					logx.String("footer", m.Embeds[0].FooterText))
				continue
			}
			ids[id] = struct{}{}
		}
		// Pages are newest first; the last entry is the oldest seen so far.
		before = msgs[len(msgs)-1].ID
	}
}
