// Package testutil provides testing utilities for fitc tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// TempCSV creates a temporary CSV file and returns its path.
// The file is automatically cleaned up when the test finishes.
func TempCSV(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp CSV: %v", err)
	}
	return path
}

// TempFile creates a temporary file with the given content and extension.
func TempFile(t *testing.T, content, ext string) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test"+ext)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// EventsCSV returns standard test CSV content for a two-column event
// table.
func EventsCSV() string {
	return `x,y
1.5,0.2
2.0,0.8
3.5,1.1
4.0,0.5
5.5,0.9`
}

// GaussModel returns the canonical single-gaussian model source used
// across tests.
func GaussModel() string {
	return `x = obs("x")
mu = param(5.0)
sigma = param(2.0)
g = gauss(x, mu, sigma)
return nll(g)
`
}

// MakeEventsFrame creates a two-column test frame matching EventsCSV.
func MakeEventsFrame() *dataframe.DataFrame {
	return dataframe.NewDataFrame(
		dataframe.NewSeriesFloat64("x", nil, 1.5, 2.0, 3.5, 4.0, 5.5),
		dataframe.NewSeriesFloat64("y", nil, 0.2, 0.8, 1.1, 0.5, 0.9),
	)
}

// AssertFloat64Near checks if two float64 values are approximately equal.
func AssertFloat64Near(t *testing.T, expected, actual, tolerance float64) {
	t.Helper()
	if actual < expected-tolerance || actual > expected+tolerance {
		t.Errorf("expected %.6f, got %.6f (tolerance: %.6f)", expected, actual, tolerance)
	}
}
