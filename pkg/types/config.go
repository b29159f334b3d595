package types

import (
	"fmt"
	"strings"
	"time"
)

// HTTPConfig holds shared HTTP settings for the Crossref client.
type HTTPConfig struct {
	// Timeout is applied to every request (default 15s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent identifies givelit to Crossref.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// Mailto is sent as Crossref's mailto parameter for polite pool access.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty" mapstructure:"mailto"`
}

// SortStrategy selects the final report order.
type SortStrategy string

const (
	SortScore   SortStrategy = "score"
	SortRecency SortStrategy = "recency"
	SortJournal SortStrategy = "journal"
)

// ParseSortStrategy validates s case-insensitively.
func ParseSortStrategy(s string) (SortStrategy, error) {
	switch v := SortStrategy(strings.ToLower(strings.TrimSpace(s))); v {
	case SortScore, SortRecency, SortJournal:
		return v, nil
	case "":
		return SortScore, nil
	default:
		return "", fmt.Errorf("unsupported sort %q: use score, recency or journal", s)
	}
}

// ReportFormat selects the renderer.
type ReportFormat string

const (
	FormatCLI  ReportFormat = "cli"
	FormatWeb  ReportFormat = "web"
	FormatJSON ReportFormat = "json"
	FormatYAML ReportFormat = "yaml"
	FormatCSL  ReportFormat = "csl"
	FormatXLSX ReportFormat = "xlsx"
)

// ParseReportFormat validates s case-insensitively.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch v := ReportFormat(strings.ToLower(strings.TrimSpace(s))); v {
	case FormatCLI, FormatWeb, FormatJSON, FormatYAML, FormatCSL, FormatXLSX:
		return v, nil
	case "":
		return FormatCLI, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use cli, web, json, yaml, csl or xlsx", s)
	}
}

// Extension returns the file extension used for auto-generated output names.
func (f ReportFormat) Extension() string {
	switch f {
	case FormatWeb:
		return "html"
	case FormatCSL:
		return "csl.yaml"
	case FormatCLI:
		return "txt"
	default:
		return string(f)
	}
}

// RequiresFile reports whether the format cannot be written to a terminal.
func (f ReportFormat) RequiresFile() bool {
	return f == FormatWeb || f == FormatXLSX
}

// RadarConfig holds every setting of a radar run.
type RadarConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Keywords rank relevance; at least one non-blank keyword is required.
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`

	// Journals are user labels resolved against the catalog. Empty means defaults.
	Journals []string `json:"journals" yaml:"journals" mapstructure:"journals"`

	// Catalog extends the built-in journal list.
	Catalog []JournalConfig `json:"catalog,omitempty" yaml:"catalog,omitempty" mapstructure:"catalog"`

	// Limit is the maximum number of papers in the report (1-100, default 12).
	Limit int `json:"limit" yaml:"limit" mapstructure:"limit"`

	// Days keeps papers published within the last N days; 0 disables the cutoff.
	Days int `json:"days" yaml:"days" mapstructure:"days"`

	Sort   SortStrategy `json:"sort" yaml:"sort" mapstructure:"sort"`
	Format ReportFormat `json:"format" yaml:"format" mapstructure:"format"`

	// Output is the destination path. Empty writes terminal formats to stdout
	// and auto-names file formats.
	Output string `json:"output,omitempty" yaml:"output,omitempty" mapstructure:"output"`

	// CrossrefURL overrides the Crossref works endpoint, e.g. for a mirror.
	CrossrefURL string `json:"crossref_url,omitempty" yaml:"crossref_url,omitempty" mapstructure:"crossref_url"`

	LogLevel  string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" mapstructure:"log_format"`
}

// RecencyWindow is the freshness normalisation window in days: Days when a
// cutoff is set, otherwise 30.
func (c RadarConfig) RecencyWindow() int {
	if c.Days > 0 {
		return c.Days
	}
	return 30
}
