// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bhimrazy/ghweekly/internal/domain"
	"github.com/bhimrazy/ghweekly/internal/gateway"
)

// Aggregator is the use case for building the weekly commit table.
// It orchestrates per-repository fetches and folds their timestamps into
// a Monday-aligned weekly grid.
type Aggregator struct {
	fetcher     gateway.Fetcher
	logger      *log.Logger
	concurrency int
}

// NewAggregator creates a new Aggregator instance. Concurrency bounds the
// number of repositories fetched in parallel; 1 (or less) keeps
// sequential input-order processing.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger, concurrency int) *Aggregator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Aggregator{
		fetcher:     fetcher,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Aggregate fetches commits by username across repoArgs ("owner/repo"
// strings) within [start, end) and counts them per repository per week.
//
// All input validation happens before any network I/O, and the table's
// shape is fixed before the first fetch. A single repository's fetch
// failure is logged and leaves that column zero; it never aborts the run.
func (a *Aggregator) Aggregate(ctx context.Context, username string, repoArgs []string, start, end time.Time) (*domain.Table, error) {
	if strings.TrimSpace(username) == "" {
		return nil, &domain.ValidationError{Msg: "username cannot be empty"}
	}
	window, err := domain.NewWindow(start, end)
	if err != nil {
		return nil, err
	}
	repos := make([]domain.Repo, len(repoArgs))
	for i, arg := range repoArgs {
		repo, err := domain.ParseRepo(arg)
		if err != nil {
			return nil, err
		}
		repos[i] = repo
	}

	table := domain.NewTable(window, repos)
	a.logger.Printf("fetching commits for %d repositories from %s to %s",
		len(repos), window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"))

	// Workers write only their own slot here; the table is assembled
	// sequentially afterwards so duplicate short names keep their
	// deterministic later-overwrites semantics at any concurrency.
	fetched := make([][]int, len(repos))

	eg := new(errgroup.Group)
	eg.SetLimit(a.concurrency)
	for i, repo := range repos {
		eg.Go(func() error {
			fetched[i] = a.fetchCounts(ctx, table, repo, username, window)
			// Fetch failures degrade to a zero column and must not
			// cancel the other repositories.
			return nil
		})
	}
	_ = eg.Wait()

	for i, counts := range fetched {
		if counts == nil {
			continue
		}
		// Duplicate short names resolve to the first column carrying
		// the name, so a later repository overwrites an earlier
		// namesake.
		col := i
		if first := table.ColumnIndex(repos[i].ShortName()); first >= 0 {
			col = first
		}
		table.SetColumn(col, counts)
	}

	return table, nil
}

// fetchCounts fetches one repository and buckets its timestamps into the
// table's weekly grid. It returns nil when the fetch failed, leaving the
// column zero.
func (a *Aggregator) fetchCounts(ctx context.Context, table *domain.Table, repo domain.Repo, username string, window domain.Window) []int {
	result, err := a.fetcher.FetchCommits(ctx, repo, username, window)
	if err != nil {
		a.logger.Printf("failed to fetch data for %s: %v", repo.FullName(), err)
		return nil
	}
	if len(result.Skipped) > 0 {
		a.logger.Printf("skipped %d malformed commit records in %s", len(result.Skipped), repo.FullName())
	}

	counts := make([]int, len(table.Weeks))
	for _, ts := range result.Timestamps {
		if row := table.WeekIndex(ts); row >= 0 {
			counts[row]++
		}
	}
	return counts
}
