// Package gateway provides a gateway to the GitHub REST API for listing
// repository commits.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v84/github"
	"golang.org/x/oauth2"

	"github.com/bhimrazy/ghweekly/internal/domain"
)

const (
	// perPage is the maximum page size the commit-listing endpoint allows.
	perPage = 100

	// maxPages is a safety valve against unbounded pagination.
	maxPages = 100

	maxRetries     = 3
	retryDelay     = 1 * time.Second
	requestTimeout = 30 * time.Second

	// anonPageDelay is inserted between successive page requests when no
	// token is supplied, to stay under the anonymous rate limit.
	anonPageDelay = 100 * time.Millisecond
)

// Diagnostic records one commit record that was skipped during a fetch.
type Diagnostic struct {
	Page   int
	SHA    string
	Reason string
}

// FetchResult is the outcome of one repository fetch: the commit
// timestamps gathered (normalized to UTC), per-record skip diagnostics,
// and the reason pagination stopped early when it did.
type FetchResult struct {
	Timestamps []time.Time
	Skipped    []Diagnostic
	StopReason string
}

// Fetcher defines the behavior of a gateway that lists a user's commits
// in one repository within a date window.
type Fetcher interface {
	FetchCommits(ctx context.Context, repo domain.Repo, user string, window domain.Window) (FetchResult, error)
}

// Options tunes a GitHubGateway beyond its defaults.
type Options struct {
	// MergeCommitter adds a second pass filtered by the committer role.
	// Commits found under both roles are deduplicated by SHA and counted
	// once. The default is author-only.
	MergeCommitter bool
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client        *github.Client
	logger        *log.Logger
	authenticated bool
	merge         bool
	retryDelay    time.Duration

	// sleep is swapped out in tests to observe courtesy delays.
	sleep func(time.Duration)
}

// NewGitHubGateway creates a gateway. An empty token is legal and selects
// the lower anonymous rate limit plus an inter-page courtesy delay.
func NewGitHubGateway(token string, opts Options, logger *log.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	httpClient := &http.Client{
		Transport: transport,
		Timeout:   requestTimeout,
	}
	return &GitHubGateway{
		client:        github.NewClient(httpClient),
		logger:        logger,
		authenticated: token != "",
		merge:         opts.MergeCommitter,
		retryDelay:    retryDelay,
		sleep:         time.Sleep,
	}, nil
}

// FetchCommits lists all commits by user in repo within [window.Start,
// window.End), paging through the commit-listing endpoint. 404 and 403
// responses and malformed pages end the fetch benignly with whatever was
// gathered; other non-200 statuses return a *domain.APIError and
// exhausted transport retries a *domain.NetworkError.
func (g *GitHubGateway) FetchCommits(ctx context.Context, repo domain.Repo, user string, window domain.Window) (FetchResult, error) {
	var result FetchResult
	seen := make(map[string]bool)
	requests := 0

	roles := []string{"author"}
	if g.merge {
		roles = append(roles, "committer")
	}
	for _, role := range roles {
		if err := g.fetchByRole(ctx, repo, user, window, role, seen, &result, &requests); err != nil {
			return FetchResult{}, err
		}
		if result.StopReason != "" {
			break
		}
	}

	g.logger.Printf("fetched %d commits for %s", len(result.Timestamps), repo.FullName())
	return result, nil
}

// fetchByRole runs one pagination pass with a single role filter,
// appending into res and deduplicating against seen.
func (g *GitHubGateway) fetchByRole(ctx context.Context, repo domain.Repo, user string, window domain.Window, role string, seen map[string]bool, res *FetchResult, requests *int) error {
	opts := &github.CommitsListOptions{
		Since:       window.Start,
		Until:       window.End,
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	if role == "committer" {
		opts.Committer = user
	} else {
		opts.Author = user
	}

	for page := 1; page <= maxPages; page++ {
		opts.Page = page
		if !g.authenticated && *requests > 0 {
			g.sleep(anonPageDelay)
		}
		*requests++

		commits, resp, err := g.listPage(ctx, repo, opts)
		if err != nil {
			return g.classify(err, resp, repo, res)
		}

		for _, commit := range commits {
			sha := commit.GetSHA()
			if sha != "" && seen[sha] {
				continue
			}
			date := commit.GetCommit().GetAuthor().GetDate().Time
			if date.IsZero() {
				res.Skipped = append(res.Skipped, Diagnostic{Page: page, SHA: sha, Reason: "missing author date"})
				g.logger.Printf("skipping commit %.8s in %s: missing author date", sha, repo.FullName())
				continue
			}
			if sha != "" {
				seen[sha] = true
			}
			res.Timestamps = append(res.Timestamps, date.UTC())
		}

		// A short page is the natural end of pagination.
		if len(commits) < perPage {
			break
		}
	}
	return nil
}

// listPage performs one page request under the retry policy. Only
// transport failures (no HTTP response at all) are retried; anything that
// produced a response is permanent and classified by the caller.
func (g *GitHubGateway) listPage(ctx context.Context, repo domain.Repo, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
	var commits []*github.RepositoryCommit
	var resp *github.Response

	operation := func() error {
		var err error
		commits, resp, err = g.client.Repositories.ListCommits(ctx, repo.Owner, repo.Name, opts)
		if err != nil && resp != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, _ time.Duration) {
		g.logger.Printf("retrying page %d of %s after transport error: %v", opts.Page, repo.FullName(), err)
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(g.retryDelay), maxRetries), ctx)
	err := backoff.RetryNotify(operation, policy, notify)
	return commits, resp, err
}

// classify maps a page-request error onto the error taxonomy: benign
// early termination (nil return, StopReason set), *domain.APIError, or
// *domain.NetworkError.
func (g *GitHubGateway) classify(err error, resp *github.Response, repo domain.Repo, res *FetchResult) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var respErr *github.ErrorResponse

	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		g.logger.Printf("rate limit or access denied for %s, returning partial results", repo.FullName())
		res.StopReason = "rate limited"
		return nil
	case errors.As(err, &respErr):
		status := respErr.Response.StatusCode
		if status == http.StatusNotFound || status == http.StatusForbidden {
			g.logger.Printf("repository %s not accessible (HTTP %d), returning partial results", repo.FullName(), status)
			res.StopReason = fmt.Sprintf("HTTP %d", status)
			return nil
		}
		return &domain.APIError{StatusCode: status, Repo: repo.FullName()}
	case resp != nil && resp.StatusCode == http.StatusOK:
		// A 200 page with a body the client could not parse.
		g.logger.Printf("malformed response body for %s: %v", repo.FullName(), err)
		res.StopReason = "malformed page"
		return nil
	default:
		return &domain.NetworkError{Repo: repo.FullName(), Err: err}
	}
}
