// Package dashboard assembles the market overview: one overview fetch,
// a concurrent per-ticker price fan-out, and a news fetch for the leading
// ticker, merged into an atomically published snapshot.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tickermind/tickermind/internal/api"
)

// ErrSuperseded means a newer refresh was started before this one finished;
// its result was discarded and the published snapshot is untouched.
var ErrSuperseded = errors.New("refresh superseded by a newer one")

// Backend is the slice of the API client the aggregator needs.
type Backend interface {
	DashboardOverview(ctx context.Context, limit int, signalFilter string) (*api.OverviewResponse, error)
	LatestPrice(ctx context.Context, ticker string) (*api.LatestPrice, error)
	News(ctx context.Context, ticker string, limit, days int) ([]api.NewsArticle, error)
}

// Snapshot is one complete refresh cycle's worth of dashboard data. It is
// immutable once published; a ticker missing from Prices means its price
// fetch failed and should render as N/A.
type Snapshot struct {
	Analyses     []api.AnalysisSummary
	Prices       map[string]*api.LatestPrice
	News         []api.NewsArticle
	Distribution map[string]int
	SignalFilter string
	Limit        int
	FetchedAt    time.Time
}

// Aggregator owns the published snapshot and the refresh-generation counter
// that suppresses stale results when refreshes overlap.
type Aggregator struct {
	mu         sync.Mutex
	backend    Backend
	newsLimit  int
	newsDays   int
	generation uint64
	snapshot   *Snapshot

	now func() time.Time
}

// NewAggregator creates an aggregator bound to a backend. newsLimit and
// newsDays scope the news fetch for the leading ticker.
func NewAggregator(backend Backend, newsLimit, newsDays int) *Aggregator {
	return &Aggregator{
		backend:   backend,
		newsLimit: newsLimit,
		newsDays:  newsDays,
		now:       time.Now,
	}
}

// Snapshot returns the most recently published snapshot, or nil before the
// first successful refresh.
func (a *Aggregator) Snapshot() *Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot
}

// Refresh fetches a fresh snapshot. An overview failure fails the whole
// refresh; per-ticker price failures and a news failure degrade to missing
// data instead. Only the most recently initiated refresh may publish: an
// overlapped older call returns ErrSuperseded and leaves the snapshot as is.
func (a *Aggregator) Refresh(ctx context.Context, limit int, signalFilter string) (*Snapshot, error) {
	a.mu.Lock()
	a.generation++
	gen := a.generation
	a.mu.Unlock()

	overview, err := a.backend.DashboardOverview(ctx, limit, signalFilter)
	if err != nil {
		return nil, fmt.Errorf("dashboard overview: %w", err)
	}

	snap := &Snapshot{
		Analyses:     overview.Analyses,
		Prices:       make(map[string]*api.LatestPrice, len(overview.Analyses)),
		Distribution: overview.SignalDistribution,
		SignalFilter: signalFilter,
		Limit:        limit,
		FetchedAt:    a.now(),
	}

	// Fan out one price fetch per ticker plus one news fetch for the
	// leading ticker, then wait for everything to settle before publishing.
	var (
		wg      sync.WaitGroup
		resMu   sync.Mutex
		newsRes []api.NewsArticle
	)
	for _, analysis := range overview.Analyses {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			price, err := a.backend.LatestPrice(ctx, ticker)
			if err != nil {
				return // price absent for this ticker
			}
			resMu.Lock()
			snap.Prices[ticker] = price
			resMu.Unlock()
		}(analysis.Ticker)
	}
	if len(overview.Analyses) > 0 {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			articles, err := a.backend.News(ctx, ticker, a.newsLimit, a.newsDays)
			if err != nil {
				return // news treated as empty
			}
			resMu.Lock()
			newsRes = articles
			resMu.Unlock()
		}(overview.Analyses[0].Ticker)
	}
	wg.Wait()
	snap.News = newsRes

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.generation != gen {
		return nil, ErrSuperseded
	}
	a.snapshot = snap
	return snap, nil
}
