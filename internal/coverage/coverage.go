// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package coverage buckets ranked papers by how many query keywords they
// matched.
package coverage

import "github.com/juanvillada/givelit/pkg/types"

// Level names a coverage tier.
type Level string

const (
	Full    Level = "full"
	Near    Level = "near"
	Partial Level = "partial"
	// Single holds papers that matched no keyword at all.
	Single    Level = "single"
	Unmatched Level = "unmatched"
)

// Order is the fixed display order of the tiers.
var Order = []Level{Full, Near, Partial, Single}

// Label returns the heading shown in reports for l.
func (l Level) Label() string {
	switch l {
	case Full:
		return "All keywords matched"
	case Near:
		return "Nearly all keywords matched"
	case Partial:
		return "Some keywords matched"
	case Single:
		return "No keyword matches"
	default:
		return "Unmatched"
	}
}

// Bucket is one non-empty coverage tier.
type Bucket struct {
	Level  Level         `json:"level" yaml:"level"`
	Papers []types.Paper `json:"papers" yaml:"papers"`
}

// Classify returns the tier of a paper that matched matchCount of
// totalKeywords keywords.
func Classify(matchCount, totalKeywords int) Level {
	switch {
	case totalKeywords <= 0:
		return Unmatched
	case matchCount >= totalKeywords:
		return Full
	case matchCount >= max(totalKeywords-1, 1):
		return Near
	case matchCount >= 1:
		return Partial
	default:
		return Single
	}
}

// Group partitions papers into tiers in Order, omitting empty tiers and
// keeping the input order inside each tier. When totalKeywords <= 0 every
// paper lands in a single Unmatched bucket.
func Group(papers []types.Paper, totalKeywords int) []Bucket {
	if len(papers) == 0 {
		return nil
	}
	if totalKeywords <= 0 {
		return []Bucket{{Level: Unmatched, Papers: append([]types.Paper(nil), papers...)}}
	}

	byLevel := make(map[Level][]types.Paper, len(Order))
	for _, p := range papers {
		l := Classify(p.MatchCount, totalKeywords)
		byLevel[l] = append(byLevel[l], p)
	}

	buckets := make([]Bucket, 0, len(Order))
	for _, l := range Order {
		if ps := byLevel[l]; len(ps) > 0 {
			buckets = append(buckets, Bucket{Level: l, Papers: ps})
		}
	}
	return buckets
}

// Counts returns the number of papers per tier, for summaries.
func Counts(buckets []Bucket) map[Level]int {
	counts := make(map[Level]int, len(buckets))
	for _, b := range buckets {
		counts[b.Level] = len(b.Papers)
	}
	return counts
}
