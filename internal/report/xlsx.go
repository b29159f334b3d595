// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	sheetPapers   = "Papers"
	sheetJournals = "Journals"
)

var (
	paperHeader   = []any{"Rank", "Coverage", "Journal", "Title", "Date", "Days ago", "Score", "Keywords matched", "Authors", "URL", "Abstract"}
	journalHeader = []any{"Journal", "Papers", "Mean score"}
)

// WriteXLSX writes a workbook with a Papers sheet (one row per ranked paper)
// and a Journals sheet (the per-journal summary).
func WriteXLSX(w io.Writer, in Input) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetPapers); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetJournals); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	if err := setRow(f, sheetPapers, 1, paperHeader); err != nil {
		return err
	}
	row := 2
	for _, bucket := range in.Coverage {
		for _, p := range bucket.Papers {
			var age any = ""
			if p.AgeDays != nil {
				age = *p.AgeDays
			}
			values := []any{
				row - 1, bucket.Level.Label(), p.Journal, p.Title, p.FormattedDate(), age,
				p.Relevance, p.MatchCount, strings.Join(p.Authors, ", "), p.URL, p.SummaryText(),
			}
			if err := setRow(f, sheetPapers, row, values); err != nil {
				return err
			}
			if p.URL != "" {
				cell, _ := excelize.CoordinatesToCellName(10, row)
				if err := f.SetCellHyperLink(sheetPapers, cell, p.URL, "External"); err != nil {
					return fmt.Errorf("linking %s: %w", cell, err)
				}
			}
			row++
		}
	}

	if err := setRow(f, sheetJournals, 1, journalHeader); err != nil {
		return err
	}
	for i, r := range Summarise(in.Papers) {
		if err := setRow(f, sheetJournals, i+2, []any{r.Journal, r.Count, r.Mean}); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
	}
	return nil
}
