// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"
	"time"

	"github.com/ttobae/daily-contrib/internal/domain"
	"github.com/ttobae/daily-contrib/internal/gateway"
)

// Aggregator is the use case for building the daily activity report.
// It orchestrates the contributor listing, per-contributor event lookups,
// and classification.
type Aggregator struct {
	fetcher  gateway.Fetcher
	location *time.Location
	logger   *log.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, location *time.Location, logger *log.Logger) *Aggregator {
	return &Aggregator{
		fetcher:  fetcher,
		location: location,
		logger:   logger,
	}
}

// GenerateReport builds the report for the calendar day of ref in the
// configured zone. It never fails: if the contributor list cannot be
// fetched the whole report degrades to a fixed placeholder, while a single
// contributor's failed lookup only marks that contributor's line and the
// loop continues. Lookups run strictly sequentially so the shared rate
// limit budget is consumed by one request at a time.
func (a *Aggregator) GenerateReport(ctx context.Context, ref time.Time) *domain.Report {
	a.logger.Println("Usecase: generating daily activity report...")
	report := &domain.Report{GeneratedAt: ref, Location: a.location}

	contributors, err := a.fetcher.ListContributors(ctx)
	if err != nil {
		a.logger.Printf("Usecase: contributor list fetch failed: %v", err)
		report.Degraded = true
		return report
	}

	for _, contributor := range contributors {
		events, err := a.fetcher.FetchEvents(ctx, contributor.Login)
		if err != nil {
			a.logger.Printf("Usecase: lookup failed for %s: %v", contributor.Login, err)
			report.Lines = append(report.Lines, domain.Line{Login: contributor.Login, Status: domain.StatusError})
			continue
		}
		line := domain.Line{Login: contributor.Login, Status: domain.StatusInactive}
		if count := domain.CountActivityOn(events, ref, a.location); count > 0 {
			line.Status = domain.StatusActive
			line.EventCount = count
			report.ActiveCount++
		}
		report.Lines = append(report.Lines, line)
	}

	a.logger.Printf("Usecase: report complete (%d/%d active).", report.ActiveCount, report.Total())
	return report
}
