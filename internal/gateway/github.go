package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ttobae/daily-contrib/internal/domain"
)

const (
	defaultBaseURL = "https://api.github.com"
	pageSize       = 100
)

// Fetcher defines the behavior of a gateway for fetching contributor
// activity from GitHub.
type Fetcher interface {
	ListContributors(ctx context.Context) ([]domain.Contributor, error)
	FetchEvents(ctx context.Context, login string) ([]domain.Event, error)
}

// ActivityGateway is the concrete implementation of the Fetcher interface.
// All of its requests go through the resilient Executor.
type ActivityGateway struct {
	executor *Executor
	baseURL  string
	owner    string
	repo     string
	token    string
	logger   *log.Logger
}

// NewActivityGateway is a constructor that creates a new instance of ActivityGateway.
func NewActivityGateway(executor *Executor, owner, repo, token string, logger *log.Logger) Fetcher {
	return &ActivityGateway{
		executor: executor,
		baseURL:  defaultBaseURL,
		owner:    owner,
		repo:     repo,
		token:    token,
		logger:   logger,
	}
}

// ListContributors pages through the contributors endpoint, 100 at a time,
// until a page comes back empty. Duplicates across pages are kept as-is.
// A sustained page failure aborts the whole listing: without the complete
// list there is nothing meaningful to report on.
func (g *ActivityGateway) ListContributors(ctx context.Context) ([]domain.Contributor, error) {
	g.logger.Println("Fetching contributor list...")
	var all []domain.Contributor
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/repos/%s/%s/contributors?per_page=%d&page=%d", g.baseURL, g.owner, g.repo, pageSize, page)
		resp, err := g.executor.Execute(ctx, g.request(http.MethodGet, url))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch contributors page %d: %w", page, err)
		}
		var batch []domain.Contributor
		if err := json.Unmarshal(resp.Body, &batch); err != nil {
			return nil, fmt.Errorf("failed to decode contributors page %d: %w", page, err)
		}
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)
		g.logger.Printf("  Fetched page %d (%d contributors so far)", page, len(all))
	}
	g.logger.Printf("Completed fetching contributor list (%d total).", len(all))
	return all, nil
}

// FetchEvents returns the recent public events for a single account.
func (g *ActivityGateway) FetchEvents(ctx context.Context, login string) ([]domain.Event, error) {
	url := fmt.Sprintf("%s/users/%s/events?per_page=%d", g.baseURL, login, pageSize)
	resp, err := g.executor.Execute(ctx, g.request(http.MethodGet, url))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events for %s: %w", login, err)
	}
	var events []domain.Event
	if err := json.Unmarshal(resp.Body, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events for %s: %w", login, err)
	}
	return events, nil
}

func (g *ActivityGateway) request(method, url string) Request {
	return Request{
		Method: method,
		URL:    url,
		Header: map[string]string{
			"Accept":        "application/vnd.github+json",
			"Authorization": "token " + g.token,
		},
	}
}
