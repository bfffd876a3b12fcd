// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Event type tags that count as qualifying activity. The platform emits an
// open set of tags; only these two are significant, matched case-sensitively.
const (
	EventTypePush   = "push"
	EventTypeCreate = "create"
)

// Contributor is an account credited with commits to the source repository,
// as returned by the contributors endpoint.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

// Event is a single timestamped activity record for an account.
type Event struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// CountActivityOn returns the number of qualifying events that fall on the
// calendar date of ref, with both instants expressed in loc. The timezone
// conversion happens before truncating to a date: two events minutes apart
// in UTC can land on different local days near midnight.
func CountActivityOn(events []Event, ref time.Time, loc *time.Location) int {
	refYear, refMonth, refDay := ref.In(loc).Date()
	count := 0
	for _, event := range events {
		if event.Type != EventTypePush && event.Type != EventTypeCreate {
			continue
		}
		year, month, day := event.CreatedAt.In(loc).Date()
		if year == refYear && month == refMonth && day == refDay {
			count++
		}
	}
	return count
}

// HasActivityOn reports whether at least one qualifying event falls on the
// calendar date of ref in loc. An empty event list is never active.
func HasActivityOn(events []Event, ref time.Time, loc *time.Location) bool {
	return CountActivityOn(events, ref, loc) > 0
}
