// Package report writes JSON report files to a "reports" directory with
// timestamped filenames, so successive runs can be kept and diffed over time.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteJSON encodes data as indented JSON into reports/<prefix>-<timestamp>.json
// and returns the path of the file it created. The directory is created on
// first use; the second-resolution timestamp keeps filenames from colliding
// across runs.
func WriteJSON(data interface{}, prefix string) (string, error) {
	reportsDir := "reports"
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	path := filepath.Join(reportsDir, fmt.Sprintf("%s-%s.json", prefix, timestamp))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}

	return path, nil
}
