// Package estimate parses and formats Oengus run estimates.
//
// Estimates arrive as ISO-8601-ish duration strings ("PT1H30M"). The
// multipliers are calendar-naive on purpose (a month is 30 days, a year
// 365): run estimates are short, and Oengus itself never emits date
// components in practice, so nobody needs DST-correct month arithmetic here.
package estimate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Grammar: P[nY][nM][nW][nD][T[nH][nM][nS]], any subset of components,
// case-insensitive. Anchored so garbage input fails instead of silently
// matching an empty prefix.
var pattern = regexp.MustCompile(`(?i)^P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// Multipliers per capture group, in grammar order.
var multipliers = [...]int{
	365 * 86400, // years
	30 * 86400,  // months
	7 * 86400,   // weeks
	86400,       // days
	3600,        // hours
	60,          // minutes
	1,           // seconds
}

// Parse converts an estimate encoding to total seconds.
//
// ok is false when the input does not match the duration grammar at all
// (including the empty string); seconds is 0 in that case. Callers are
// expected to log and degrade to a zero-duration display rather than drop
// the announcement.
func Parse(encoding string) (seconds int, ok bool) {
	m := pattern.FindStringSubmatch(strings.TrimSpace(encoding))
	if m == nil {
		return 0, false
	}
	total := 0
	for i, mult := range multipliers {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			// Unreachable with the \d+ groups above, but don't let a
			// freak overflow corrupt the total.
			return 0, false
		}
		total += n * mult
	}
	return total, true
}

// Format renders total seconds as "H:MM:SS" (hours unpadded) when the
// duration reaches an hour, "M:SS" otherwise. Days fold into the hour
// component. This is the only duration formatter in the repo.
func Format(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	if totalSeconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", totalSeconds/3600, totalSeconds%3600/60, totalSeconds%60)
	}
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}
