// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs an external document converter over discovered
// Markdown sources, one process at a time.
package convert

import (
	"fmt"
	"io"

	"github.com/pdiddy/pandoc-fixtures/pkg/types"
)

// Converter turns one Markdown file into a JSON fixture on disk. The pandoc
// binary and the pandoc container image implement this interface.
type Converter interface {
	// Name identifies the backend in status output.
	Name() string

	// Version reports the converter's version string.
	Version() (string, error)

	// Convert reads input and writes the converted document to output. It
	// returns once the converter process has exited.
	Convert(input, output string) error
}

// Recorder receives the outcome of each conversion. The manifest store
// implements it.
type Recorder interface {
	Record(f types.Fixture, status types.ConversionStatus) error
}

// Options adjust a batch run.
type Options struct {
	// DryRun prints the planned conversions without starting any process.
	DryRun bool

	// Recorder, when set, is notified after every conversion.
	Recorder Recorder
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Failed    int
	Planned   int
}

// Total returns the number of fixtures processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed + r.Planned
}

// HasFailures reports whether any fixture failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertFixture runs c on a single planned fixture and prints one status
// line to w. A converter error is reported, never returned.
func ConvertFixture(c Converter, f types.Fixture, w io.Writer) types.ConversionStatus {
	if err := c.Convert(f.Source, f.Output); err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", f.Source, err)
		return types.ConversionFailed
	}
	fmt.Fprintf(w, "converted: %s -> %s\n", f.Source, f.Output)
	return types.ConversionDone
}

// Generate converts fixtures in order. Each conversion finishes before the
// next one starts, and a failed conversion does not stop the batch. Fixtures
// must already carry their Output path.
func Generate(c Converter, fixtures []types.Fixture, w io.Writer, opts Options) BatchResult {
	var result BatchResult
	for _, f := range fixtures {
		if opts.DryRun {
			fmt.Fprintf(w, "planned:   %s -> %s\n", f.Source, f.Output)
			result.Planned++
			continue
		}

		status := ConvertFixture(c, f, w)
		switch status {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionFailed:
			result.Failed++
		}

		if opts.Recorder != nil {
			if err := opts.Recorder.Record(f, status); err != nil {
				fmt.Fprintf(w, "warning: manifest not updated for %s: %v\n", f.Output, err)
			}
		}
	}

	if opts.DryRun {
		fmt.Fprintf(w, "\nDry run: %d planned\n", result.Planned)
		return result
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())
	return result
}
