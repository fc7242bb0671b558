// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan maps discovered Markdown sources to the JSON fixture paths
// the converter writes.
//
// The flat layout puts every fixture straight into the output directory, so
// sources with the same base name in different subdirectories collide and
// the last one converted wins. The mirror layout recreates the source
// subdirectories and cannot collide.
package plan

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/pdiddy/pandoc-fixtures/pkg/types"
)

// Assign returns a copy of fixtures with Output set according to layout.
// ext is the output extension including its dot (e.g. ".json").
func Assign(fixtures []types.Fixture, outDir string, layout types.Layout, ext string) ([]types.Fixture, error) {
	out := make([]types.Fixture, len(fixtures))
	for i, f := range fixtures {
		name := f.BaseName() + ext
		switch layout {
		case types.LayoutFlat, "":
			f.Output = filepath.Join(outDir, name)
		case types.LayoutMirror:
			f.Output = filepath.Join(outDir, f.RelDir, name)
		default:
			return nil, fmt.Errorf("unsupported layout %q: use %s or %s", layout, types.LayoutFlat, types.LayoutMirror)
		}
		out[i] = f
	}
	return out, nil
}

// Collision lists the sources that are all written to one output path.
type Collision struct {
	Output  string   `json:"output"`
	Sources []string `json:"sources"`
}

// Winner returns the source whose output survives the run.
func (c Collision) Winner() string {
	return c.Sources[len(c.Sources)-1]
}

// Collisions reports every output path claimed by more than one source,
// ordered by output path. Sources keep processing order.
func Collisions(fixtures []types.Fixture) []Collision {
	bySource := make(map[string][]string)
	for _, f := range fixtures {
		bySource[f.Output] = append(bySource[f.Output], f.Source)
	}

	var collisions []Collision
	for output, srcs := range bySource {
		if len(srcs) > 1 {
			collisions = append(collisions, Collision{Output: output, Sources: srcs})
		}
	}
	sort.Slice(collisions, func(i, j int) bool {
		return collisions[i].Output < collisions[j].Output
	})
	return collisions
}

// PrepareDirs creates the parent directory of every planned output. Under
// the flat layout this is only the output directory itself.
func PrepareDirs(fs afero.Fs, fixtures []types.Fixture) error {
	seen := make(map[string]bool)
	for _, f := range fixtures {
		dir := filepath.Dir(f.Output)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	return nil
}
