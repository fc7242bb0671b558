// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Layout selects where generated fixtures are placed under the output
// directory.
type Layout string

const (
	// LayoutFlat writes every fixture directly into the output directory.
	// Sources sharing a base name overwrite each other.
	LayoutFlat Layout = "flat"

	// LayoutMirror recreates the source subdirectory structure under the
	// output directory.
	LayoutMirror Layout = "mirror"
)

// ConversionBackend identifies how the converter is invoked.
type ConversionBackend string

const (
	BackendPandoc    ConversionBackend = "pandoc"
	BackendContainer ConversionBackend = "container"
)

// Defaults reproduce the zero-argument behavior of the fixture script.
const (
	DefaultSourceDir = "markdown"
	DefaultOutDir    = "."
	DefaultTool      = "pandoc"
	DefaultFrom      = "markdown"
	DefaultTo        = "json"
)

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console, json, or pretty (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// GeneratorConfig holds settings for a fixture generation run.
type GeneratorConfig struct {
	// SourceDir is the root of the Markdown tree (default "markdown").
	SourceDir string `json:"source" yaml:"source" mapstructure:"source"`

	// OutDir receives the generated JSON files (default: working directory).
	OutDir string `json:"out_dir" yaml:"out_dir" mapstructure:"out_dir"`

	// Tool is the converter binary looked up on PATH (default "pandoc").
	Tool string `json:"tool" yaml:"tool" mapstructure:"tool"`

	// From and To are the converter's input and output format flags.
	From string `json:"from" yaml:"from" mapstructure:"from"`
	To   string `json:"to" yaml:"to" mapstructure:"to"`

	// Layout selects flat or mirrored output placement.
	Layout Layout `json:"layout" yaml:"layout" mapstructure:"layout"`

	// Backend selects the local binary or a containerized converter.
	Backend ConversionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Image is the converter image for the container backend.
	Image string `json:"image,omitempty" yaml:"image,omitempty" mapstructure:"image"`

	// Manifest is the path of the SQLite manifest database. Empty disables it.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty" mapstructure:"manifest"`

	Log LogConfig `json:"log" yaml:"log" mapstructure:"log"`
}

// WithDefaults returns a copy of c with every empty field set to its default.
func (c GeneratorConfig) WithDefaults() GeneratorConfig {
	if c.SourceDir == "" {
		c.SourceDir = DefaultSourceDir
	}
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
	if c.Tool == "" {
		c.Tool = DefaultTool
	}
	if c.From == "" {
		c.From = DefaultFrom
	}
	if c.To == "" {
		c.To = DefaultTo
	}
	if c.Layout == "" {
		c.Layout = LayoutFlat
	}
	if c.Backend == "" {
		c.Backend = BackendPandoc
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	return c
}

// OutputExt returns the extension for generated files, derived from To.
func (c GeneratorConfig) OutputExt() string {
	if c.To == "" {
		return "." + DefaultTo
	}
	return "." + c.To
}
