// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ExportPath returns the default export file for format ("yaml" or "json"):
// the database path with its extension replaced.
func (s *Store) ExportPath(format string) string {
	base := strings.TrimSuffix(s.path, filepath.Ext(s.path))
	return base + "." + format
}

// ExportYAML writes every record to path as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	records, err := s.List(ctx, "")
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes every record to path as an indented JSON array.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	records, err := s.List(ctx, "")
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
