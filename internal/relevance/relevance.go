// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance scores papers against the query keywords.
// Keyword hits, Crossref's own score and a bounded recency bonus are combined
// into a single number rounded to two decimals.
package relevance

import (
	"math"
	"strings"
	"time"

	"github.com/juanvillada/givelit/pkg/types"
)

const (
	titleHitWeight = 6.0
	// Hits in title+abstract. Title hits are counted here as well.
	textHitWeight    = 2.5
	sourceScoreScale = 10.0
	freshnessWeight  = 5.0
)

// Result is the outcome of scoring one paper.
type Result struct {
	Relevance  float64
	MatchCount int
	// AgeDays is nil when the publication date is unknown or in the future.
	AgeDays *int
}

// Score computes the relevance of p for keywords without modifying p.
// recencyWindowDays normalises the freshness bonus; values below 1 are
// treated as 1. ref is the reference "now". The result is never negative.
func Score(p types.Paper, keywords []string, recencyWindowDays int, ref time.Time) Result {
	title := strings.ToLower(p.Title)
	text := strings.ToLower(p.Title + " " + p.SummaryText())

	var res Result
	score := 0.0

	for _, kw := range keywords {
		target := strings.ToLower(strings.TrimSpace(kw))
		if target == "" {
			continue
		}
		score += titleHitWeight * float64(strings.Count(title, target))
		if hits := strings.Count(text, target); hits > 0 {
			score += textHitWeight * float64(hits)
			res.MatchCount++
		}
	}

	if p.SourceScore != nil && *p.SourceScore != 0 {
		score += *p.SourceScore / sourceScoreScale
	}

	if age, ok := AgeDays(p, ref); ok {
		res.AgeDays = &age
		score += Freshness(age, recencyWindowDays) * freshnessWeight
	}

	res.Relevance = round2(math.Max(score, 0))
	return res
}

// Apply returns a copy of p carrying the scoring result.
func Apply(p types.Paper, r Result) types.Paper {
	p.Relevance = r.Relevance
	p.MatchCount = r.MatchCount
	p.AgeDays = r.AgeDays
	return p
}

// ScoreAll scores every paper and returns new values; the input is not modified.
func ScoreAll(papers []types.Paper, keywords []string, recencyWindowDays int, ref time.Time) []types.Paper {
	out := make([]types.Paper, len(papers))
	for i, p := range papers {
		out[i] = Apply(p, Score(p, keywords, recencyWindowDays, ref))
	}
	return out
}

// AgeDays returns the whole days elapsed between publication and ref.
// ok is false when the date is unknown or lies in the future.
func AgeDays(p types.Paper, ref time.Time) (int, bool) {
	if p.Published == nil {
		return 0, false
	}
	elapsed := ref.Sub(*p.Published)
	if elapsed < 0 {
		return 0, false
	}
	return int(math.Floor(elapsed.Hours() / 24)), true
}

// Freshness decays linearly from 1 at age 0 to 0 at the window boundary.
func Freshness(ageDays, windowDays int) float64 {
	window := max(windowDays, 1)
	return math.Max(0, float64(window-ageDays)/float64(window))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
