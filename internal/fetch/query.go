// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidQuery is returned before any request when the keywords join to
// an empty query.
var ErrInvalidQuery = errors.New("at least one keyword is required")

const (
	minRows = 20
	maxRows = 150
)

// Query holds the per-run search parameters shared by every journal.
type Query struct {
	Keywords []string
	// DaysBack restricts results to papers published on or after
	// Now - DaysBack days. Zero disables the filter.
	DaysBack int
	// MaxResults is the report size; the page requested from Crossref is
	// larger so that re-ranking has candidates to choose from.
	MaxResults int
	// Now anchors the date filter. Zero means time.Now().
	Now time.Time
}

// Text returns the space-joined keywords, trimmed.
func (q Query) Text() string {
	return strings.TrimSpace(strings.Join(q.Keywords, " "))
}

// Validate reports ErrInvalidQuery for an empty query.
func (q Query) Validate() error {
	if q.Text() == "" {
		return ErrInvalidQuery
	}
	return nil
}

// Rows is the page size requested per journal: three times MaxResults,
// clamped to [20, 150].
func (q Query) Rows() int {
	return min(max(q.MaxResults*3, minRows), maxRows)
}

// Keep is the number of papers retained per journal after parsing.
func (q Query) Keep() int {
	return q.MaxResults * 2
}

// PublishedAfter returns the from-pub-date cutoff as YYYY-MM-DD, or "" when
// DaysBack is not positive.
func (q Query) PublishedAfter() string {
	if q.DaysBack <= 0 {
		return ""
	}
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	return now.UTC().AddDate(0, 0, -q.DaysBack).Format("2006-01-02")
}
