// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// ConversionStatus indicates the outcome of converting one Markdown source.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Fixture pairs a discovered Markdown source with the JSON file generated
// from it.
type Fixture struct {
	// Source is the path of the Markdown file as found during the walk
	// (e.g. "markdown/guide/setup.md").
	Source string `json:"source" yaml:"source"`

	// Dir is the directory part of Source.
	Dir string `json:"dir" yaml:"dir"`

	// Name is the file name of Source, extension included.
	Name string `json:"name" yaml:"name"`

	// Ext is the extension of Name (always ".md" for discovered files).
	Ext string `json:"ext" yaml:"ext"`

	// RelDir is Dir relative to the discovery root ("." for top-level files).
	RelDir string `json:"rel_dir" yaml:"rel_dir"`

	// Output is the path the converter writes to. Empty until planned.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

// BaseName returns Name without its extension. Leading dots are part of
// the name, so ".md" and "..md" have no extension to strip and keep their
// full name.
func (f Fixture) BaseName() string {
	base := f.Name[:len(f.Name)-len(f.Ext)]
	if strings.Trim(base, ".") == "" {
		return f.Name
	}
	return base
}
