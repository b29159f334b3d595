// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank turns fetched papers into the ordered list a report shows:
// score, drop unusable papers, sort by the chosen strategy and truncate.
package rank

import (
	"sort"
	"strings"
	"time"

	"github.com/juanvillada/givelit/internal/relevance"
	"github.com/juanvillada/givelit/pkg/types"
)

// Options configure Process.
type Options struct {
	Keywords []string
	// Days drops papers older than Days; 0 keeps every age.
	Days int
	// RecencyWindow normalises the freshness bonus.
	RecencyWindow int
	Sort          types.SortStrategy
	// MaxResults truncates the output; 0 means no limit.
	MaxResults int
	Now        time.Time
}

// Process scores, filters, sorts and truncates papers. The input slice is
// not modified.
func Process(papers []types.Paper, opts Options) []types.Paper {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	scored := relevance.ScoreAll(papers, opts.Keywords, opts.RecencyWindow, now)
	kept := Filter(scored, opts.Days)
	Sort(kept, opts.Sort)

	if opts.MaxResults > 0 && len(kept) > opts.MaxResults {
		kept = kept[:opts.MaxResults]
	}
	return kept
}

// Filter drops papers without a URL and, when days > 0, papers whose known
// age exceeds days. Papers of unknown age are kept.
func Filter(papers []types.Paper, days int) []types.Paper {
	kept := make([]types.Paper, 0, len(papers))
	for _, p := range papers {
		if strings.TrimSpace(p.URL) == "" {
			continue
		}
		if days > 0 && p.AgeDays != nil && *p.AgeDays > days {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// Sort orders papers in place. Unknown strategies fall back to score.
func Sort(papers []types.Paper, strategy types.SortStrategy) {
	var less func(a, b types.Paper) bool
	switch strategy {
	case types.SortRecency:
		less = byRecency
	case types.SortJournal:
		less = byJournal
	default:
		less = byScore
	}
	sort.SliceStable(papers, func(i, j int) bool {
		return less(papers[i], papers[j])
	})
}

// byScore: relevance desc, age asc (unknown last), title asc.
func byScore(a, b types.Paper) bool {
	if c := compareRelevance(a, b); c != 0 {
		return c < 0
	}
	if c := compareAge(a, b); c != 0 {
		return c < 0
	}
	return compareTitle(a, b) < 0
}

// byRecency: age asc (unknown last), relevance desc, title asc.
func byRecency(a, b types.Paper) bool {
	if c := compareAge(a, b); c != 0 {
		return c < 0
	}
	if c := compareRelevance(a, b); c != 0 {
		return c < 0
	}
	return compareTitle(a, b) < 0
}

// byJournal: journal asc, relevance desc, age asc (unknown last).
func byJournal(a, b types.Paper) bool {
	ja, jb := strings.ToLower(a.Journal), strings.ToLower(b.Journal)
	if ja != jb {
		return ja < jb
	}
	if c := compareRelevance(a, b); c != 0 {
		return c < 0
	}
	return compareAge(a, b) < 0
}

// compareRelevance is negative when a ranks before b (higher relevance).
func compareRelevance(a, b types.Paper) int {
	switch {
	case a.Relevance > b.Relevance:
		return -1
	case a.Relevance < b.Relevance:
		return 1
	}
	return 0
}

// compareAge is negative when a is younger; unknown ages sort last.
func compareAge(a, b types.Paper) int {
	switch {
	case a.AgeDays == nil && b.AgeDays == nil:
		return 0
	case a.AgeDays == nil:
		return 1
	case b.AgeDays == nil:
		return -1
	}
	return *a.AgeDays - *b.AgeDays
}

func compareTitle(a, b types.Paper) int {
	return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
}
