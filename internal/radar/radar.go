// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package radar runs one literature scan end to end: resolve journals, fetch
// every journal concurrently, rank, group by keyword coverage and assemble
// the report input.
package radar

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/juanvillada/givelit/internal/config"
	"github.com/juanvillada/givelit/internal/coverage"
	"github.com/juanvillada/givelit/internal/fetch"
	"github.com/juanvillada/givelit/internal/httputil"
	"github.com/juanvillada/givelit/internal/journals"
	"github.com/juanvillada/givelit/internal/rank"
	"github.com/juanvillada/givelit/internal/report"
	"github.com/juanvillada/givelit/pkg/types"
)

// ErrNoKeywords is returned when no usable keyword remains after trimming.
var ErrNoKeywords = errors.New("please provide at least one keyword")

// Deps are the collaborators of Run. Zero values select the defaults.
type Deps struct {
	// Source fetches one journal. Defaults to Crossref over a client built
	// from the run's HTTPConfig.
	Source fetch.Source
	Logger *zap.Logger
	// OnProgress is called once per finished journal, in completion order.
	OnProgress func(fetch.Event)
	// Now anchors the date filter and paper ages. Zero means time.Now().
	Now time.Time
}

// Keywords splits comma lists, trims entries and drops blanks. It returns
// ErrNoKeywords when nothing remains.
func Keywords(values []string) ([]string, error) {
	kw := config.SplitList(values)
	if len(kw) == 0 {
		return nil, ErrNoKeywords
	}
	return kw, nil
}

// Journals resolves the configured journal labels against the catalog.
func Journals(cfg types.RadarConfig) []types.JournalConfig {
	return journals.Resolve(cfg.Journals, journals.Catalog(cfg.Catalog))
}

// Run executes a scan described by cfg. Invalid input is rejected before any
// request is made; any fetch failure aborts the run with no partial report.
func Run(ctx context.Context, cfg types.RadarConfig, deps Deps) (report.Input, error) {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := deps.Now
	if now.IsZero() {
		now = time.Now()
	}

	keywords, err := Keywords(cfg.Keywords)
	if err != nil {
		return report.Input{}, err
	}
	if err := config.Validate(&cfg); err != nil {
		return report.Input{}, err
	}
	targets := Journals(cfg)

	src := deps.Source
	if src == nil {
		crossref := fetch.NewCrossrefSource(httputil.NewClient(cfg.HTTPConfig), cfg.Mailto, log)
		crossref.BaseURL = cfg.CrossrefURL
		src = crossref
	}

	q := fetch.Query{Keywords: keywords, DaysBack: cfg.Days, MaxResults: cfg.Limit, Now: now}
	log.Info("radar run started",
		zap.Strings("keywords", keywords),
		zap.Strings("journals", journals.Names(targets)),
		zap.Int("limit", cfg.Limit),
		zap.Int("days", cfg.Days))

	results, err := fetchWithProgress(ctx, src, targets, q, log, deps.OnProgress)
	if err != nil {
		if errors.Is(err, fetch.ErrInvalidQuery) {
			return report.Input{}, err
		}
		return report.Input{}, fmt.Errorf("crossref request failed: %w", err)
	}

	ranked := rank.Process(fetch.Flatten(results), rank.Options{
		Keywords:      keywords,
		Days:          cfg.Days,
		RecencyWindow: cfg.RecencyWindow(),
		Sort:          cfg.Sort,
		MaxResults:    cfg.Limit,
		Now:           now,
	})
	log.Debug("ranking finished", zap.Int("ranked", len(ranked)))

	return report.Input{
		Papers:   ranked,
		Keywords: keywords,
		Journals: journals.Names(targets),
		Options: map[string]string{
			report.OptLimit:        strconv.Itoa(cfg.Limit),
			report.OptDays:         strconv.Itoa(cfg.Days),
			report.OptSort:         string(cfg.Sort),
			report.OptFormat:       string(cfg.Format),
			report.OptJournalCount: strconv.Itoa(len(targets)),
		},
		Missing:   fetch.Empty(results),
		Coverage:  coverage.Group(ranked, len(keywords)),
		Generated: now,
	}, nil
}

func fetchWithProgress(ctx context.Context, src fetch.Source, targets []types.JournalConfig, q fetch.Query, log *zap.Logger, onProgress func(fetch.Event)) ([]types.FetchResult, error) {
	opts := fetch.Options{Logger: log}
	if onProgress == nil {
		return fetch.FetchAll(ctx, src, targets, q, opts)
	}

	events := make(chan fetch.Event)
	opts.Progress = events
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for ev := range events {
			onProgress(ev)
		}
	}()

	results, err := fetch.FetchAll(ctx, src, targets, q, opts)
	<-drained
	return results, err
}
