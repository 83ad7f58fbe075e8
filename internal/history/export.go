// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes the most recent conversions to w as YAML, newest first.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, limit int) error {
	recs, err := s.Recent(ctx, limit)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes the most recent conversions to w as indented JSON,
// newest first.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer, limit int) error {
	recs, err := s.Recent(ctx, limit)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
