// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/juanvillada/givelit/internal/config"
	"github.com/juanvillada/givelit/internal/journals"
	"github.com/juanvillada/givelit/pkg/types"
)

var journalsCmd = &cobra.Command{
	Use:   "journals",
	Short: "List the journals givelit knows by key or name",
	Long: `Journals prints the built-in catalog followed by any catalog entries from the
config file. Any entry can be passed to radar --journal by key, name or
container title; unknown labels are searched as container titles verbatim.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var extra []types.JournalConfig
		if err := viper.UnmarshalKey(config.KeyCatalog, &extra); err != nil {
			return fmt.Errorf("reading journal catalog: %w", err)
		}
		printCatalog(cmd.OutOrStdout(), journals.Catalog(extra))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(journalsCmd)
}

func printCatalog(w io.Writer, catalog []types.JournalConfig) {
	fmt.Fprintf(w, "%-24s  %-28s  %s\n", "KEY", "NAME", "CONTAINER TITLE")
	for _, j := range catalog {
		fmt.Fprintf(w, "%-24s  %-28s  %s\n", j.Key, j.Name, j.ContainerTitle)
	}
	fmt.Fprintf(w, "\n%d journals\n", len(catalog))
}
