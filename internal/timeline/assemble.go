// Package timeline turns stored entries into the merged, ordered,
// divider-annotated view the display layer consumes.
package timeline

import (
	"sort"
	"time"

	models "io.winapps.timelineapp/internal/models/account"
)

// Item is one timeline entry annotated for display.
type Item struct {
	Entry           models.Entry `json:"entry"`
	AuthorName      string       `json:"authorName"`
	FormName        string       `json:"formName"`
	FormIcon        string       `json:"formIcon"`
	ShowDateDivider bool         `json:"showDateDivider"`
	DateLabel       string       `json:"dateLabel,omitempty"`
}

// Less is the timeline ordering contract: pinned entries precede unpinned
// ones, and within the same pinned state later timestamps come first. The
// order is a pure function of stored state, so concurrent writers
// interleave deterministically once committed.
func Less(a, b models.Entry) bool {
	if a.Pinned != b.Pinned {
		return a.Pinned
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// Sort orders entries in display order.
func Sort(entries []models.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Less(entries[i], entries[j])
	})
}

// Annotate marks the first item of each calendar day with a date divider.
// Dates are compared in loc, the single caregiver-facing timezone, so a
// late-evening entry never picks up the next day's divider just because
// the server stores UTC.
func Annotate(items []Item, loc *time.Location) {
	var prev time.Time
	for i := range items {
		local := items[i].Entry.CreatedAt.In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		if i == 0 || !day.Equal(prev) {
			items[i].ShowDateDivider = true
			items[i].DateLabel = DateLabel(local)
		}
		prev = day
	}
}

// DateLabel formats a divider as "Monday, January 2".
func DateLabel(t time.Time) string {
	return t.Format("Monday, January 2")
}
