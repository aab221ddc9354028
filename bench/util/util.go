// Package util reads and writes the report.json summary of a run.
package util

import (
	"encoding/json"
	"os"
	"path/filepath"
)

type Report struct {
	Profile    string           `json:"profile"`
	Seed       int64            `json:"seed"`
	Versions   int64            `json:"versions"`
	Changes    int64            `json:"changes"`
	Inserts    int64            `json:"inserts"`
	Updates    int64            `json:"updates"`
	Deletes    int64            `json:"deletes"`
	Size       int64            `json:"size"`
	Height     int8             `json:"height"`
	Hash       string           `json:"hash"`
	DurationMs int64            `json:"duration_ms"`
	Metrics    map[string]int64 `json:"metrics,omitempty"`
}

// LoadReport loads the report.json file in dir. A missing file yields a
// nil report and no error.
func LoadReport(dir string) (*Report, error) {
	bz, err := os.ReadFile(filepath.Join(dir, "report.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(bz, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// SaveReport writes r to report.json in dir, creating dir if needed.
func SaveReport(dir string, r Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	bz, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "report.json"), bz, 0o644)
}
