// Package loader reads observable data tables and flattens their columns
// into the contiguous buffer generated model functions index.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/imports"
	"github.com/xitongsys/parquet-go-source/local"
)

// Error definitions
var (
	ErrEmptyTable        = errors.New("data table has no columns")
	ErrUnsupportedFormat = errors.New("unsupported data format")
)

// Load reads a data file into a DataFrame, picking the format from the
// file extension: .csv, .json or .parquet.
func Load(path string) (*dataframe.DataFrame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".json":
		return LoadJSON(path)
	case ".parquet":
		return LoadParquet(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadCSV reads a CSV file with a header row, auto-detecting column
// types.
func LoadCSV(path string) (*dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	df, err := imports.LoadFromCSV(context.Background(), file, imports.CSVLoadOptions{
		InferDataTypes: true,
	})
	if err != nil {
		return nil, err
	}
	if df == nil || len(df.Series) == 0 {
		return nil, ErrEmptyTable
	}
	return df, nil
}

// LoadJSON reads a JSON file containing an array of objects, one object
// per row. Column types are inferred automatically.
func LoadJSON(path string) (*dataframe.DataFrame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyTable
	}

	df, err := imports.LoadFromJSON(context.Background(), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if df == nil || len(df.Series) == 0 {
		return nil, ErrEmptyTable
	}
	return df, nil
}

// LoadParquet reads a Parquet file through the parquet-go local file
// source.
func LoadParquet(path string) (*dataframe.DataFrame, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	df, err := imports.LoadFromParquet(context.Background(), fr)
	if err != nil {
		return nil, err
	}
	if df == nil || len(df.Series) == 0 {
		return nil, ErrEmptyTable
	}
	return df, nil
}
