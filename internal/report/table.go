// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strings"
)

const cliAuthors = 4

// WriteCLI writes a plain-text report: header, journal summary, then papers
// grouped by keyword coverage.
func WriteCLI(w io.Writer, in Input) error {
	var b strings.Builder

	b.WriteString("GiveLit - recent literature radar\n")
	fmt.Fprintf(&b, "Keywords: %s | Journals: %s\n", quoted(in.Keywords), strings.Join(in.Journals, ", "))
	if !in.Generated.IsZero() {
		fmt.Fprintf(&b, "Generated: %s\n", in.Generated.UTC().Format("2006-01-02 15:04 UTC"))
	}
	b.WriteString("\n")

	if lines := Plot(Summarise(in.Papers), PlotWidth); len(lines) > 0 {
		b.WriteString("Journal summary\n")
		for _, l := range lines {
			b.WriteString(l + "\n")
		}
		b.WriteString("\n")
	}

	if len(in.Papers) == 0 {
		b.WriteString("No papers matched the filters.\n")
		writeMissing(&b, in.Missing)
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString("Top Matches\n")
	rank := 0
	for _, bucket := range in.Coverage {
		fmt.Fprintf(&b, "\n== %s (%d) ==\n", bucket.Level.Label(), len(bucket.Papers))
		fmt.Fprintf(&b, "%-3s  %-6s  %-8s  %-10s  %-22s  %s\n", "#", "Score", "Days ago", "Date", "Journal", "Title")
		for _, p := range bucket.Papers {
			rank++
			fmt.Fprintf(&b, "%-3d  %6.2f  %8s  %-10s  %-22s  %s\n",
				rank, p.Relevance, ageText(p), p.FormattedDate(), truncate(p.Journal, 22), p.Title)
			authors := authorLine(p.Authors, cliAuthors)
			if authors == "" {
				authors = "—"
			}
			fmt.Fprintf(&b, "%-3s  %s\n", "", authors)
			fmt.Fprintf(&b, "%-3s  %s\n", "", p.URL)
		}
	}
	writeMissing(&b, in.Missing)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeMissing(b *strings.Builder, missing []string) {
	if len(missing) > 0 {
		fmt.Fprintf(b, "\nNo matches returned for: %s\n", strings.Join(missing, ", "))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
