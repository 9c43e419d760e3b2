// Package report writes run results: the JSON documents, the
// inspector's markdown summary, console progress output, and optional
// preview thumbnails.
package report

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteJSON marshals v with two-space indentation and writes it to path
// in a single write.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}
