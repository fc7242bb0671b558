// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the fixturegen CLI, which turns a tree
// of Markdown files into Pandoc JSON test fixtures.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pandoc-fixtures/internal/convert"
	"github.com/pdiddy/pandoc-fixtures/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command. Run without a subcommand it generates
// fixtures with the default settings.
var rootCmd = &cobra.Command{
	Use:   "fixturegen",
	Short: "Generate Pandoc JSON fixtures from Markdown sources",
	Long: `fixturegen walks the markdown/ directory, runs pandoc on every .md file
it finds, and writes <name>.json into the current directory:

  pandoc -f markdown -t json -o <name>.json <source>

Files are converted one at a time. A failed conversion is reported and the
run moves on to the next file. Running fixturegen with no arguments is the
same as running "fixturegen generate".`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runGenerate,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./fixturegen.yaml or ~/.config/fixturegen/config.yaml)")
	flags.String("source", types.DefaultSourceDir, "directory tree to search for .md files")
	flags.String("out-dir", types.DefaultOutDir, "directory that receives the generated fixtures")
	flags.String("tool", types.DefaultTool, "converter binary, looked up on PATH")
	flags.String("from", types.DefaultFrom, "converter input format")
	flags.String("to", types.DefaultTo, "converter output format (also the fixture extension)")
	flags.String("layout", string(types.LayoutFlat), "output layout: flat (one directory, names may collide) or mirror (keep subdirectories)")
	flags.String("backend", string(types.BackendPandoc), "converter backend: pandoc (local binary) or container (docker/podman)")
	flags.String("image", "", "container image for the container backend (default "+convert.DefaultImage+")")
	flags.String("manifest", "", "SQLite manifest recording generated fixtures (disabled when empty)")
	flags.String("log-level", "info", "diagnostic log level: trace, debug, info, warn, error")
	flags.String("log-format", "console", "diagnostic log format: console, json, pretty")

	for key, flag := range map[string]string{
		"source":     "source",
		"out_dir":    "out-dir",
		"tool":       "tool",
		"from":       "from",
		"to":         "to",
		"layout":     "layout",
		"backend":    "backend",
		"image":      "image",
		"manifest":   "manifest",
		"log.level":  "log-level",
		"log.format": "log-format",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	addGenerateFlags(rootCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fixturegen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "fixturegen"))
		}
	}

	viper.SetEnvPrefix("FIXTUREGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, env, and file settings.
func loadConfig(v *viper.Viper) (types.GeneratorConfig, error) {
	var cfg types.GeneratorConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	cfg = cfg.WithDefaults()

	switch cfg.Layout {
	case types.LayoutFlat, types.LayoutMirror:
	default:
		return cfg, fmt.Errorf("unsupported layout %q: use %s or %s", cfg.Layout, types.LayoutFlat, types.LayoutMirror)
	}
	switch cfg.Backend {
	case types.BackendPandoc, types.BackendContainer:
	default:
		return cfg, fmt.Errorf("unsupported backend %q: use %s or %s", cfg.Backend, types.BackendPandoc, types.BackendContainer)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
