// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pandoc-fixtures/internal/manifest"
	"github.com/pdiddy/pandoc-fixtures/pkg/types"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Inspect the fixture manifest (list, export)",
	Long: `Manifest reads the SQLite database written by "generate --manifest".
It records, per fixture, the source it came from, whether the conversion
succeeded, and the SHA-256 of the written file.`,
}

// --- list subcommand ---

var manifestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded fixtures",
	Args:  cobra.NoArgs,
	RunE:  runManifestList,
}

func runManifestList(cmd *cobra.Command, args []string) error {
	store, err := openManifest()
	if err != nil {
		return err
	}
	defer store.Close()

	status, _ := cmd.Flags().GetString("status")
	ctx := context.Background()
	records, err := store.List(ctx, types.ConversionStatus(status))
	if err != nil {
		return err
	}
	counts, err := store.Summary(ctx)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatManifest(cmd.OutOrStdout(), records, counts, jsonOutput)
}

// formatManifest prints records as a table followed by the per-status counts
// of the whole manifest, or as a JSON array.
func formatManifest(w io.Writer, records []manifest.Record, counts map[types.ConversionStatus]int, jsonOutput bool) error {
	if jsonOutput {
		if records == nil {
			records = []manifest.Record{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No fixtures recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-30s  %-10s  %-12s  %s\n", "Output", "Status", "SHA-256", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, r := range records {
		output := r.Output
		if len(output) > 30 {
			output = "..." + output[len(output)-27:]
		}
		sum := r.SHA256
		if len(sum) > 12 {
			sum = sum[:12]
		}
		fmt.Fprintf(w, "%-30s  %-10s  %-12s  %s\n", output, r.Status, sum, r.Source)
	}
	fmt.Fprintf(w, "\n%d fixtures\n", len(records))
	fmt.Fprintf(w, "Manifest: %d converted, %d failed\n",
		counts[types.ConversionDone], counts[types.ConversionFailed])
	return nil
}

// --- export subcommand ---

var manifestExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the manifest to YAML or JSON",
	Long: `Export writes every manifest record to a file next to the database
(fixtures.db -> fixtures.yaml or fixtures.json) unless --output is given.`,
	Args: cobra.NoArgs,
	RunE: runManifestExport,
}

func runManifestExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	store, err := openManifest()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	switch format {
	case "yaml", "":
		if output == "" {
			output = store.ExportPath("yaml")
		}
		err = store.ExportYAML(ctx, output)
	case "json":
		if output == "" {
			output = store.ExportPath("json")
		}
		err = store.ExportJSON(ctx, output)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", store.Path(), output)
	return nil
}

// --- shared helpers ---

func openManifest() (*manifest.Store, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if cfg.Manifest == "" {
		return nil, fmt.Errorf("no manifest configured: pass --manifest or set manifest in the config file")
	}
	return manifest.Open(cfg.Manifest)
}

func init() {
	manifestListCmd.Flags().String("status", "", "filter by status: converted or failed")
	manifestListCmd.Flags().Bool("json", false, "output records as JSON")

	manifestExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	manifestExportCmd.Flags().String("output", "", "export file (default: next to the database)")

	manifestCmd.AddCommand(manifestListCmd)
	manifestCmd.AddCommand(manifestExportCmd)

	rootCmd.AddCommand(manifestCmd)
}
