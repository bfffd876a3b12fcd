package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// Publisher defines the behavior of posting a finished report document.
type Publisher interface {
	PublishIssue(ctx context.Context, title, body string) (string, error)
}

// IssuePublisher posts reports as new issues on the destination repository.
type IssuePublisher struct {
	client *github.Client
	owner  string
	repo   string
	logger *log.Logger
}

// NewIssuePublisher is a constructor that creates a new instance of IssuePublisher.
func NewIssuePublisher(token, owner, repo string, logger *log.Logger) (Publisher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &IssuePublisher{
		client: github.NewClient(httpClient),
		owner:  owner,
		repo:   repo,
		logger: logger,
	}, nil
}

// PublishIssue creates the issue and returns its HTML URL.
func (p *IssuePublisher) PublishIssue(ctx context.Context, title, body string) (string, error) {
	issue, _, err := p.client.Issues.Create(ctx, p.owner, p.repo, &github.IssueRequest{
		Title: github.String(title),
		Body:  github.String(body),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create issue on %s/%s: %w", p.owner, p.repo, err)
	}
	p.logger.Printf("Published issue #%d on %s/%s", issue.GetNumber(), p.owner, p.repo)
	return issue.GetHTMLURL(), nil
}
