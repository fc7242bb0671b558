// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pandoc-fixtures/internal/plan"
	"github.com/pdiddy/pandoc-fixtures/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show Markdown sources and the fixtures they map to",
	Long: `List walks --source like generate does and prints each source with the
fixture path it would be written to, followed by any output collisions.
Nothing is converted.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().Bool("json", false, "output the plan as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	fixtures, err := planFixtures(afero.NewOsFs(), cfg)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatList(cmd.OutOrStdout(), fixtures, jsonOutput)
}

// listing is the JSON form of the list output.
type listing struct {
	Fixtures   []types.Fixture  `json:"fixtures"`
	Collisions []plan.Collision `json:"collisions"`
}

func formatList(w io.Writer, fixtures []types.Fixture, jsonOutput bool) error {
	collisions := plan.Collisions(fixtures)

	if jsonOutput {
		out := listing{Fixtures: fixtures, Collisions: collisions}
		if out.Fixtures == nil {
			out.Fixtures = []types.Fixture{}
		}
		if out.Collisions == nil {
			out.Collisions = []plan.Collision{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(fixtures) == 0 {
		fmt.Fprintln(w, "No Markdown sources found.")
		return nil
	}

	width := 0
	for _, f := range fixtures {
		if len(f.Source) > width {
			width = len(f.Source)
		}
	}
	for _, f := range fixtures {
		fmt.Fprintf(w, "%-*s  ->  %s\n", width, f.Source, f.Output)
	}
	fmt.Fprintf(w, "\n%d sources\n", len(fixtures))

	for _, c := range collisions {
		fmt.Fprintf(w, "collision: %s written by %d sources, %s wins\n", c.Output, len(c.Sources), c.Winner())
	}
	return nil
}
