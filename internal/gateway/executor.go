// Package gateway provides the HTTP layer for the application: a resilient
// request executor, the contributor/event fetcher built on top of it, and
// the issue publisher for the destination repository.
package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"
)

const defaultMaxAttempts = 3

// ErrRetryExhausted is returned when every attempt was consumed by the
// rate-limit wait path without a successful response.
var ErrRetryExhausted = errors.New("retry attempts exhausted")

// RequestError reports a non-2xx response that is not a primary rate limit.
// These are not retried: repeating a 404 or 422 only burns attempts.
type RequestError struct {
	StatusCode int
	Status     string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %s", e.Status)
}

// Request describes a single logical HTTP request. Immutable once built.
type Request struct {
	Method string
	URL    string
	Header map[string]string
	Body   []byte
}

// Response is the transport result consumed by the executor's policy logic.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Doer is implemented by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Executor issues HTTP requests with rate-limit-aware retries. Rate-limit
// exhaustion (403 with zero remaining quota) waits out the reset window and
// tries again; every other failure is terminal for the request.
type Executor struct {
	doer        Doer
	maxAttempts int
	logger      *log.Logger

	// sleep and now are injected so tests can observe the wait behavior
	// without wall-clock delays.
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// NewExecutor creates an Executor over the given transport. A nil doer
// falls back to http.DefaultClient.
func NewExecutor(doer Doer, logger *log.Logger) *Executor {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Executor{
		doer:        doer,
		maxAttempts: defaultMaxAttempts,
		logger:      logger,
		sleep:       sleepContext,
		now:         time.Now,
	}
}

// Execute performs the request. Per attempt: a 2xx response returns
// immediately; a 403 with X-RateLimit-Remaining of 0 sleeps until one
// second past the advertised reset and consumes the attempt; any other
// non-2xx status fails fast with a *RequestError. Only the rate-limit path
// can run the attempt budget down to ErrRetryExhausted.
func (e *Executor) Execute(ctx context.Context, req Request) (*Response, error) {
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		resp, err := e.do(ctx, req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}
		if resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0" {
			wait := e.rateLimitWait(resp.Header)
			e.logger.Printf("Rate limited; waiting %s (attempt %d/%d)", wait, attempt, e.maxAttempts)
			if sleepErr := e.sleep(ctx, wait); sleepErr != nil {
				return nil, sleepErr
			}
			continue
		}
		return nil, &RequestError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return nil, ErrRetryExhausted
}

// rateLimitWait computes how long to pause before the quota window resets,
// with a one-second safety margin. A reset instant already in the past
// yields zero; the caller still goes through the sleep primitive.
func (e *Executor) rateLimitWait(header http.Header) time.Duration {
	reset, err := strconv.ParseInt(header.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return 0
	}
	wait := time.Unix(reset, 0).Sub(e.now()) + time.Second
	if wait < 0 {
		wait = 0
	}
	return wait
}

func (e *Executor) do(ctx context.Context, req Request) (*Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for key, value := range req.Header {
		httpReq.Header.Set(key, value)
	}

	httpResp, err := e.doer.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Header:     httpResp.Header,
		Body:       data,
	}, nil
}

// sleepContext pauses for d without blocking other goroutines, returning
// early if the context is cancelled. Non-positive durations still go
// through the timer so cancellation is observed uniformly.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d < 0 {
		d = 0
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
