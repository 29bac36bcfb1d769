package announce

import (
	"fmt"
	"strings"

	"oengusbot/internal/estimate"
	"oengusbot/internal/logx"
	"oengusbot/internal/oengus"
)

const embedColor = 0x5c88bc

// footerTag must stay in sync with footerIDPattern: the scanner parses the
// id back out of sent embeds on every tick.
func footerTag(categoryID int64) string {
	return fmt.Sprintf("ID: %d", categoryID)
}

// BuildEmbed maps one pending pair to its announcement embed. A malformed
// estimate degrades to a zero-duration display; an approximate announcement
// beats no announcement.
func BuildEmbed(sub oengus.Submission, cat oengus.Category, eventName, submissionsURL string, log logx.Logger) Embed {
	secs, ok := estimate.Parse(cat.Estimate)
	if !ok {
		log.Warn("unparseable estimate, using zero duration",
			logx.Int64("category_id", cat.ID),
			logx.String("estimate", cat.Estimate))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Event**: %s\n\n", eventName)
	fmt.Fprintf(&b, "**Game**: %s\n", sub.Name)
	fmt.Fprintf(&b, "**Category**: %s\n", cat.Name)
	fmt.Fprintf(&b, "**Platform**: %s\n", sub.Console)
	fmt.Fprintf(&b, "**Estimate:** %s", estimate.Format(secs))

	return Embed{
		Title:       fmt.Sprintf("%s submitted a new run!", sub.User.Username),
		URL:         submissionsURL,
		Description: b.String(),
		Color:       embedColor,
		FooterText:  footerTag(cat.ID),
	}
}
