// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pandoc-fixtures/internal/container"
	"github.com/pdiddy/pandoc-fixtures/internal/convert"
	"github.com/pdiddy/pandoc-fixtures/internal/discover"
	"github.com/pdiddy/pandoc-fixtures/internal/logging"
	"github.com/pdiddy/pandoc-fixtures/internal/manifest"
	"github.com/pdiddy/pandoc-fixtures/internal/plan"
	"github.com/pdiddy/pandoc-fixtures/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Convert every Markdown source into a JSON fixture",
	Long: `Generate finds every file ending in .md below --source and runs the
converter once per file, waiting for each process to exit before starting the
next. Existing fixtures with the same name are overwritten.

With the default flat layout, sources that share a base name in different
subdirectories write the same fixture and the last one wins. Such collisions
are logged as warnings. Use --layout mirror to keep the subdirectories.

A failed conversion does not stop the run or change the exit status unless
--strict is given.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "print planned conversions without running the converter")
	cmd.Flags().Bool("strict", false, "exit non-zero when any conversion fails")
}

func init() {
	addGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	log, err := logging.New("fixturegen", cfg.Log)
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	strict, _ := cmd.Flags().GetBool("strict")

	var conv convert.Converter
	if !dryRun {
		conv, err = newConverter(cfg)
		if err != nil {
			return err
		}
	}

	var rec *manifest.Store
	if cfg.Manifest != "" && !dryRun {
		rec, err = manifest.Open(cfg.Manifest)
		if err != nil {
			return err
		}
		defer rec.Close()
	}

	result, err := generate(afero.NewOsFs(), cfg, conv, rec, dryRun, cmd.OutOrStdout(), log)
	if err != nil {
		return err
	}
	return exitStatus(result, strict)
}

// exitStatus turns per-file failures into an error only under --strict.
func exitStatus(result convert.BatchResult, strict bool) error {
	if strict && result.HasFailures() {
		return fmt.Errorf("%d fixture(s) failed conversion", result.Failed)
	}
	return nil
}

// newConverter builds the converter selected by cfg.Backend.
func newConverter(cfg types.GeneratorConfig) (convert.Converter, error) {
	switch cfg.Backend {
	case types.BackendContainer:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		c, err := convert.NewContainerConverter(rt, cfg.Image, cfg.From, cfg.To)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		p, err := convert.NewPandocConverter(cfg.Tool, cfg.From, cfg.To)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// generate discovers, plans, and converts. rec may be nil.
func generate(fs afero.Fs, cfg types.GeneratorConfig, conv convert.Converter, rec *manifest.Store, dryRun bool, w io.Writer, log logging.Logger) (convert.BatchResult, error) {
	fixtures, err := planFixtures(fs, cfg)
	if err != nil {
		return convert.BatchResult{}, err
	}
	log.Debug("fixtures discovered", "source", cfg.SourceDir, "count", len(fixtures))

	for _, c := range plan.Collisions(fixtures) {
		log.Warn("output collision", "output", c.Output, "sources", c.Sources, "winner", c.Winner())
	}

	opts := convert.Options{DryRun: dryRun}
	if !dryRun {
		if err := plan.PrepareDirs(fs, fixtures); err != nil {
			return convert.BatchResult{}, err
		}
		desc := conv.Name()
		if v, err := conv.Version(); err != nil {
			log.Warn("converter version unavailable", "converter", conv.Name(), "error", err)
		} else {
			desc = v
			log.Info("using converter", "converter", conv.Name(), "version", v)
		}
		if rec != nil {
			rec.SetConverter(desc)
			opts.Recorder = rec
		}
	}

	return convert.Generate(conv, fixtures, w, opts), nil
}

// planFixtures discovers sources under cfg.SourceDir and assigns outputs.
func planFixtures(fs afero.Fs, cfg types.GeneratorConfig) ([]types.Fixture, error) {
	found, err := discover.Markdown(fs, cfg.SourceDir)
	if err != nil {
		return nil, err
	}
	return plan.Assign(found, cfg.OutDir, cfg.Layout, cfg.OutputExt())
}
