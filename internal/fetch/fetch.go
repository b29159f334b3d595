// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves recent works for a set of journals.
// FetchAll issues one request per journal concurrently and fails the whole
// batch on the first error.
package fetch

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/juanvillada/givelit/pkg/types"
)

// Source fetches the papers of a single journal.
type Source interface {
	Name() string
	Fetch(ctx context.Context, journal types.JournalConfig, q Query) ([]types.Paper, error)
}

// Event reports one finished journal. Events arrive in completion order.
type Event struct {
	Journal   types.JournalConfig
	Papers    int
	Completed int
	Total     int
}

// Options tune FetchAll.
type Options struct {
	// Progress receives one Event per finished journal. FetchAll closes it
	// before returning. May be nil.
	Progress chan<- Event
	Logger   *zap.Logger
}

// FetchAll queries every journal concurrently through src. results[i] holds
// the papers of journals[i] regardless of completion order. If any request
// fails the shared context is cancelled, in-flight requests are abandoned and
// no results are returned.
func FetchAll(ctx context.Context, src Source, journals []types.JournalConfig, q Query, opts Options) ([]types.FetchResult, error) {
	if opts.Progress != nil {
		defer close(opts.Progress)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("no fetch source configured")
	}

	results := make([]types.FetchResult, len(journals))
	done := make(chan int, len(journals))

	g, gctx := errgroup.WithContext(ctx)
	for i, j := range journals {
		g.Go(func() error {
			papers, err := src.Fetch(gctx, j, q)
			if err != nil {
				return err
			}
			results[i] = types.FetchResult{Journal: j, Papers: papers}
			done <- i
			return nil
		})
	}

	// Progress is reported from this goroutine only, so Completed is a plain
	// counter and the errgroup workers never block on a slow consumer.
	waitErr := make(chan error, 1)
	go func() {
		waitErr <- g.Wait()
		close(done)
	}()

	completed := 0
	for i := range done {
		completed++
		if opts.Progress == nil {
			continue
		}
		ev := Event{
			Journal:   results[i].Journal,
			Papers:    len(results[i].Papers),
			Completed: completed,
			Total:     len(journals),
		}
		select {
		case opts.Progress <- ev:
		case <-ctx.Done():
		}
	}

	if err := <-waitErr; err != nil {
		log.Debug("fetch batch aborted", zap.String("source", src.Name()), zap.Error(err))
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r.Papers)
	}
	log.Info("fetch batch completed",
		zap.String("source", src.Name()),
		zap.Int("journals", len(journals)),
		zap.Int("papers", total))
	return results, nil
}

// Flatten concatenates the papers of every result in order.
func Flatten(results []types.FetchResult) []types.Paper {
	var all []types.Paper
	for _, r := range results {
		all = append(all, r.Papers...)
	}
	return all
}

// Empty returns the display names of journals that returned no papers.
func Empty(results []types.FetchResult) []string {
	var names []string
	for _, r := range results {
		if len(r.Papers) == 0 {
			names = append(names, r.Journal.Name)
		}
	}
	return names
}
