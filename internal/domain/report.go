package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
)

// Status classifies a single contributor line in the report.
type Status int

const (
	StatusInactive Status = iota
	StatusActive
	StatusError
)

// Line is the per-contributor entry of a report, in contributor-list order.
type Line struct {
	Login  string
	Status Status
	// EventCount is the number of qualifying events on the reference date.
	// Only meaningful for StatusActive lines.
	EventCount int
}

// Report is the finished document for a single run. Degraded reports carry
// no lines: they signal that the contributor list itself could not be
// fetched, which leaves nothing to report on.
type Report struct {
	GeneratedAt time.Time
	Location    *time.Location
	Degraded    bool
	Lines       []Line
	ActiveCount int
}

const degradedBody = "Contributor lookup is currently unavailable. No activity report could be generated for this run."

// Total returns the number of contributors covered by the report, including
// lines whose lookup failed.
func (r *Report) Total() int {
	return len(r.Lines)
}

// ParticipationRate returns the percentage of contributors with qualifying
// activity, rounded to two decimal places. A report with zero contributors
// has a participation rate of 0.
func (r *Report) ParticipationRate() float64 {
	if len(r.Lines) == 0 {
		return 0
	}
	rate, err := stats.Round(float64(r.ActiveCount)/float64(len(r.Lines))*100, 2)
	if err != nil {
		return 0
	}
	return rate
}

// MeanActiveEvents returns the average number of qualifying events among
// active contributors, rounded to two decimal places. The second return is
// false when no contributor was active.
func (r *Report) MeanActiveEvents() (float64, bool) {
	var counts []float64
	for _, line := range r.Lines {
		if line.Status == StatusActive {
			counts = append(counts, float64(line.EventCount))
		}
	}
	if len(counts) == 0 {
		return 0, false
	}
	mean, err := stats.Mean(counts)
	if err != nil {
		return 0, false
	}
	rounded, err := stats.Round(mean, 2)
	if err != nil {
		return 0, false
	}
	return rounded, true
}

// Title returns the issue title for the report, dated in the report's zone.
func (r *Report) Title() string {
	return fmt.Sprintf("Daily contribution report (%s)", r.GeneratedAt.In(r.Location).Format("2006-01-02"))
}

// Body renders the report as Markdown: a heading, one bullet per
// contributor, and a trailing participation summary. Degraded reports
// render the fixed degraded-service message instead.
func (r *Report) Body() string {
	if r.Degraded {
		return degradedBody
	}

	var b strings.Builder
	local := r.GeneratedAt.In(r.Location)
	fmt.Fprintf(&b, "## Contributor activity for %s (%s)\n\n", local.Format("2006-01-02"), r.Location)
	fmt.Fprintf(&b, "_Generated at %s_\n\n", local.Format("2006-01-02 15:04:05 MST"))
	for _, line := range r.Lines {
		b.WriteString(line.Markdown())
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "**Participation: %.2f%% (%d/%d active)**\n", r.ParticipationRate(), r.ActiveCount, len(r.Lines))
	if mean, ok := r.MeanActiveEvents(); ok {
		fmt.Fprintf(&b, "Average qualifying events per active contributor: %.2f\n", mean)
	}
	return b.String()
}

// Markdown renders a single contributor bullet. Active contributors get a
// check glyph and an emphasized login; failed lookups get a warning glyph
// so one broken account is visible without sinking the whole report.
func (l Line) Markdown() string {
	switch l.Status {
	case StatusActive:
		return fmt.Sprintf("- :white_check_mark: [**%s**](https://github.com/%s)", l.Login, l.Login)
	case StatusError:
		return fmt.Sprintf("- :warning: [%s](https://github.com/%s) (lookup failed)", l.Login, l.Login)
	default:
		return fmt.Sprintf("- :x: [%s](https://github.com/%s)", l.Login, l.Login)
	}
}
