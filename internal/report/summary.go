// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/juanvillada/givelit/pkg/types"
)

// PlotWidth is the bar length of the busiest journal in the summary plot.
const PlotWidth = 18

const (
	plotBar          = "█"
	plotJournalWidth = 22
)

// JournalRow is one line of the per-journal summary.
type JournalRow struct {
	Journal string  `json:"journal" yaml:"journal"`
	Count   int     `json:"count" yaml:"count"`
	Mean    float64 `json:"mean_relevance" yaml:"mean_relevance"`
}

// Summarise counts papers per journal and averages their relevance. Rows are
// ordered by count desc, mean desc, then journal name case-insensitively.
func Summarise(papers []types.Paper) []JournalRow {
	index := make(map[string]int)
	var rows []JournalRow
	var sums []float64
	for _, p := range papers {
		i, ok := index[p.Journal]
		if !ok {
			i = len(rows)
			index[p.Journal] = i
			rows = append(rows, JournalRow{Journal: p.Journal})
			sums = append(sums, 0)
		}
		rows[i].Count++
		sums[i] += p.Relevance
	}
	for i := range rows {
		rows[i].Mean = sums[i] / float64(rows[i].Count)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Mean != b.Mean {
			return a.Mean > b.Mean
		}
		return strings.ToLower(a.Journal) < strings.ToLower(b.Journal)
	})
	return rows
}

// Plot renders rows as horizontal bars scaled to width. A journal with at
// least one paper always gets one bar.
func Plot(rows []JournalRow, width int) []string {
	if len(rows) == 0 {
		return nil
	}
	maxCount := 0
	for _, r := range rows {
		maxCount = max(maxCount, r.Count)
	}
	if maxCount == 0 {
		maxCount = 1
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		length := 0
		if r.Count > 0 {
			length = max(int(math.Round(float64(r.Count)/float64(maxCount)*float64(width))), 1)
		}
		noun := "papers"
		if r.Count == 1 {
			noun = "paper"
		}
		lines = append(lines, fmt.Sprintf("%-*s | %-*s %d %s, avg %.2f",
			plotJournalWidth, r.Journal, width, strings.Repeat(plotBar, length), r.Count, noun, r.Mean))
	}
	return lines
}
