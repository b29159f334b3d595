// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/juanvillada/givelit/internal/report"
	"github.com/juanvillada/givelit/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show <manifest.yaml>",
	Short: "Re-render a saved run without querying Crossref",
	Long: `Show reads a run manifest written by "radar --format yaml" and renders it
again in any report format. Papers keep their saved order and scores.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringP("format", "f", string(types.FormatCLI), "report format: cli, web, json, yaml, csl or xlsx")
	showCmd.Flags().StringP("output", "o", "", "output path (default: stdout, or an auto-generated file for web and xlsx)")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	rawFormat, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	format, err := types.ParseReportFormat(rawFormat)
	if err != nil {
		return err
	}

	m, err := report.ReadManifest(args[0])
	if err != nil {
		return err
	}
	in := m.Input()

	path := report.OutputPath(format, output, time.Now())
	if path == "" {
		return report.Render(cmd.OutOrStdout(), format, in)
	}
	if err := writeReport(path, format, in); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to %s\n", path)
	return nil
}
