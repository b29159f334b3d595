// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a ranked radar run. Renderers present what they are
// given: they never re-sort, re-filter or re-score papers.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/juanvillada/givelit/internal/coverage"
	"github.com/juanvillada/givelit/pkg/types"
)

// Option keys carried in Input.Options.
const (
	OptLimit        = "limit"
	OptDays         = "days"
	OptSort         = "sort"
	OptFormat       = "format"
	OptJournalCount = "journalCount"
)

// Input is everything a renderer needs.
type Input struct {
	Papers    []types.Paper
	Keywords  []string
	Journals  []string
	Options   map[string]string
	Missing   []string
	Coverage  []coverage.Bucket
	Generated time.Time
}

// Render writes in to w using format.
func Render(w io.Writer, format types.ReportFormat, in Input) error {
	switch format {
	case types.FormatCLI, "":
		return WriteCLI(w, in)
	case types.FormatWeb:
		return WriteHTML(w, in)
	case types.FormatJSON:
		return WriteJSON(w, in)
	case types.FormatYAML:
		return WriteManifest(w, in)
	case types.FormatCSL:
		return WriteCSL(w, in)
	case types.FormatXLSX:
		return WriteXLSX(w, in)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// OutputPath returns output when set. Otherwise file formats get an
// auto-generated name stamped with now and terminal formats get "", meaning
// stdout.
func OutputPath(format types.ReportFormat, output string, now time.Time) string {
	if output = strings.TrimSpace(output); output != "" {
		return output
	}
	if !format.RequiresFile() {
		return ""
	}
	return fmt.Sprintf("givelit-report-%s.%s", now.Format("20060102-150405"), format.Extension())
}

// authorLine joins the first n authors, appending "et al." when more exist.
func authorLine(authors []string, n int) string {
	if len(authors) <= n {
		return strings.Join(authors, ", ")
	}
	return strings.Join(authors[:n], ", ") + ", et al."
}

func quoted(keywords []string) string {
	q := make([]string, len(keywords))
	for i, k := range keywords {
		q[i] = `"` + k + `"`
	}
	return strings.Join(q, ", ")
}

func ageText(p types.Paper) string {
	if p.AgeDays == nil {
		return "—"
	}
	return fmt.Sprint(*p.AgeDays)
}
