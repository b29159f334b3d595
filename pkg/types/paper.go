// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the givelit pipeline.
package types

import "time"

// JournalConfig identifies a search target. ContainerTitle is the value
// sent to Crossref's container-title filter.
type JournalConfig struct {
	// Key is a kebab-case identifier (e.g. "nature-microbiology").
	Key string `json:"key" yaml:"key" mapstructure:"key"`

	// Name is the display name used in reports.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// ContainerTitle is the journal title as Crossref indexes it.
	ContainerTitle string `json:"container_title" yaml:"container_title" mapstructure:"container_title"`
}

// Paper is the normalised representation of an article returned by Crossref.
// Relevance, MatchCount and AgeDays are zero until the scoring stage sets them.
type Paper struct {
	// Journal is the display name of the journal the paper was fetched for.
	Journal string `json:"journal" yaml:"journal"`

	// Title is the first title Crossref returned, or "Untitled".
	Title string `json:"title" yaml:"title"`

	// URL is the landing page (usually a doi.org link). Papers without one
	// never reach the report.
	URL string `json:"url" yaml:"url"`

	// Published is the publication date, nil when Crossref had none or it
	// could not be parsed.
	Published *time.Time `json:"published,omitempty" yaml:"published,omitempty"`

	// Authors lists the authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Summary is the abstract with markup stripped, nil when absent.
	Summary *string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Relevance is the composite score, rounded to two decimals.
	Relevance float64 `json:"relevance" yaml:"relevance"`

	// SourceScore is Crossref's own relevance score, when provided.
	SourceScore *float64 `json:"source_score,omitempty" yaml:"source_score,omitempty"`

	// MatchCount is the number of distinct keywords found in title or abstract.
	MatchCount int `json:"match_count" yaml:"match_count"`

	// AgeDays is the whole number of days since publication. Only set when
	// Published is known and not in the future.
	AgeDays *int `json:"age_days,omitempty" yaml:"age_days,omitempty"`
}

// FormattedDate returns the publication date as YYYY-MM-DD, or "Unknown".
func (p Paper) FormattedDate() string {
	if p.Published == nil {
		return "Unknown"
	}
	return p.Published.Format("2006-01-02")
}

// SummaryText returns the abstract or the empty string.
func (p Paper) SummaryText() string {
	if p.Summary == nil {
		return ""
	}
	return *p.Summary
}

// FetchResult is the outcome of querying one journal.
type FetchResult struct {
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Papers  []Paper       `json:"papers" yaml:"papers"`
}
