package announce

import "oengusbot/internal/oengus"

// Unannounced returns the (submission, category) pairs whose category id is
// absent from announced, preserving fetch order: submissions outer,
// categories inner. That order is the outbound posting order, so it is a
// contract, not an accident. Pure function; membership in announced is the
// only exclusion criterion.
func Unannounced(subs []oengus.Submission, announced map[int64]struct{}) []Pending {
	var pending []Pending
	for _, sub := range subs {
		for _, cat := range sub.Categories {
			if _, ok := announced[cat.ID]; ok {
				continue
			}
			pending = append(pending, Pending{Submission: sub, Category: cat})
		}
	}
	return pending
}
