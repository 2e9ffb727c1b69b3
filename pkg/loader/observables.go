package loader

import (
	"errors"
	"fmt"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// Flattening errors
var (
	ErrColumnMissing = errors.New("column not found in data table")
	ErrNoEvents      = errors.New("data table has no rows")
)

// ObsData is the flattened, column-major observable buffer handed to a
// generated model function. Column i occupies Buf[i*Events:(i+1)*Events],
// matching the offsets the model registers for its observables.
type ObsData struct {
	Columns []string
	Events  int
	Buf     []float64
}

// Offset returns the base offset of the named column within Buf.
func (d *ObsData) Offset(name string) (int, bool) {
	for i, col := range d.Columns {
		if col == name {
			return i * d.Events, true
		}
	}
	return 0, false
}

// Column returns the named column's values as a slice into Buf.
func (d *ObsData) Column(name string) ([]float64, bool) {
	off, ok := d.Offset(name)
	if !ok {
		return nil, false
	}
	return d.Buf[off : off+d.Events], true
}

// Flatten extracts the named columns from df into one contiguous buffer,
// in the given order. Integer columns are widened to float64; nil cells
// and non-numeric columns are errors.
func Flatten(df *dataframe.DataFrame, columns []string) (*ObsData, error) {
	if len(columns) == 0 {
		return nil, errors.New("no columns requested")
	}

	events := df.NRows()
	if events == 0 {
		return nil, ErrNoEvents
	}

	data := &ObsData{
		Columns: columns,
		Events:  events,
		Buf:     make([]float64, len(columns)*events),
	}

	for i, name := range columns {
		s := findSeries(df, name)
		if s == nil {
			return nil, fmt.Errorf("%w: %s", ErrColumnMissing, name)
		}
		for row := 0; row < events; row++ {
			v, err := floatAt(s, row)
			if err != nil {
				return nil, err
			}
			data.Buf[i*events+row] = v
		}
	}
	return data, nil
}

func findSeries(df *dataframe.DataFrame, name string) dataframe.Series {
	for _, s := range df.Series {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// floatAt coerces the cell at row to float64.
func floatAt(s dataframe.Series, row int) (float64, error) {
	v := s.Value(row)
	if v == nil {
		return 0, fmt.Errorf("column %q has a nil value at row %d", s.Name(), row)
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("column %q is not numeric: row %d holds %T", s.Name(), row, v)
	}
}
