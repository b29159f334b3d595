// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/juanvillada/givelit/internal/config"
	"github.com/juanvillada/givelit/internal/fetch"
	"github.com/juanvillada/givelit/internal/httputil"
	"github.com/juanvillada/givelit/internal/radar"
	"github.com/juanvillada/givelit/internal/report"
	"github.com/juanvillada/givelit/pkg/types"
)

var radarCmd = &cobra.Command{
	Use:   "radar",
	Short: "Surface the most relevant recent papers for the chosen journals",
	Long: `Radar queries Crossref once per journal, concurrently, scores every returned
paper against the keywords and prints the top matches grouped by how many
keywords they hit. Any failed request aborts the run.

Formats: cli (terminal table), web (HTML page), json, yaml (run manifest),
csl (CSL-YAML bibliography) and xlsx (spreadsheet). web and xlsx are always
written to a file; without --output the name is generated from the time.`,
	RunE: runRadar,
}

func init() {
	f := radarCmd.Flags()
	f.StringSliceP("keyword", "k", []string{"metagenomics"}, "keyword used to rank relevance (repeat or comma-separate)")
	f.StringArrayP("journal", "j", nil, "journal key, name or container title (repeat, or separate with ; or ,)")
	f.IntP("limit", "n", 12, "maximum number of papers in the report (1-100)")
	f.IntP("days", "d", 30, "only include papers published within the last N days (0 disables)")
	f.StringP("format", "f", string(types.FormatCLI), "report format: cli, web, json, yaml, csl or xlsx")
	f.StringP("output", "o", "", "output path (default: stdout, or an auto-generated file for web and xlsx)")
	f.String("sort", string(types.SortScore), "sort order: score, recency or journal")
	f.Duration("timeout", httputil.DefaultTimeout, "per-request HTTP timeout")
	f.String("mailto", "", "contact email sent to Crossref (default from .secrets/crossref-mailto)")

	for flag, key := range map[string]string{
		"keyword": config.KeyKeywords,
		"journal": config.KeyJournals,
		"limit":   config.KeyLimit,
		"days":    config.KeyDays,
		"format":  config.KeyFormat,
		"output":  config.KeyOutput,
		"sort":    config.KeySort,
		"timeout": config.KeyTimeout,
		"mailto":  config.KeyMailto,
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(radarCmd)
}

func runRadar(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	keywords, err := radar.Keywords(cfg.Keywords)
	if err != nil {
		return err
	}
	targets := radar.Journals(cfg)

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "Scanning %d journal(s) for %s...\n", len(targets), strings.Join(keywords, ", "))

	now := time.Now()
	in, err := radar.Run(cmd.Context(), cfg, radar.Deps{
		Logger: log,
		Now:    now,
		OnProgress: func(ev fetch.Event) {
			fmt.Fprintf(stderr, "  [%d/%d] %s: %d paper(s)\n", ev.Completed, ev.Total, ev.Journal.Name, ev.Papers)
		},
	})
	if err != nil {
		return err
	}

	path := report.OutputPath(cfg.Format, cfg.Output, now)
	if path == "" {
		return report.Render(cmd.OutOrStdout(), cfg.Format, in)
	}
	if err := writeReport(path, cfg.Format, in); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "Report saved to %s\n", path)
	return nil
}

func writeReport(path string, format types.ReportFormat, in report.Input) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := report.Render(f, format, in); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
