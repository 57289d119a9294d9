// Package dataset gives column access to the original (pre-transformation)
// tabular data a PAM was fitted on. Only the response and predictor columns
// are ever read; the data is never expanded into the model's internal
// representation.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// RugPoints is the number of quantile positions drawn as rug ticks:
// probabilities 0, 0.005, 0.01, …, 1.
const RugPoints = 201

// MissingColumnError reports that a requested column does not exist in the
// dataset.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("dataset: no column %q", e.Column)
}

// Dataset is an in-memory column store. Unparseable or empty cells are NaN.
type Dataset struct {
	columns map[string][]float64
	names   []string
	rows    int
}

// New builds a Dataset from named columns. All columns must have the same
// length.
func New(columns map[string][]float64) (*Dataset, error) {
	d := &Dataset{columns: make(map[string][]float64, len(columns))}
	for name, vals := range columns {
		if d.rows == 0 {
			d.rows = len(vals)
		} else if len(vals) != d.rows {
			return nil, fmt.Errorf("dataset: column %q has %d rows, want %d", name, len(vals), d.rows)
		}
		d.columns[name] = vals
		d.names = append(d.names, name)
	}
	sort.Strings(d.names)
	return d, nil
}

// LoadCSV reads a headered CSV file into a Dataset. Cells that do not parse
// as numbers (including empty cells and "NA") become NaN.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset header: %w", err)
	}
	names := append([]string(nil), header...)
	cols := make([][]float64, len(names))

	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read dataset row: %w", err)
		}
		for i := range names {
			v := math.NaN()
			if i < len(rec) {
				if parsed, perr := strconv.ParseFloat(rec[i], 64); perr == nil {
					v = parsed
				}
			}
			cols[i] = append(cols[i], v)
		}
	}

	byName := make(map[string][]float64, len(names))
	for i, name := range names {
		byName[name] = cols[i]
	}
	return New(byName)
}

// Rows returns the number of rows in the dataset.
func (d *Dataset) Rows() int { return d.rows }

// Names returns the column names in sorted order.
func (d *Dataset) Names() []string { return append([]string(nil), d.names...) }

// Column returns the values of the named column, or MissingColumnError.
func (d *Dataset) Column(name string) ([]float64, error) {
	vals, ok := d.columns[name]
	if !ok {
		return nil, &MissingColumnError{Column: name}
	}
	return vals, nil
}

// QuantileTicks returns the RugPoints-long quantile sequence (p = 0, 0.005,
// …, 1) of the named column, ignoring NaN values. Quantiles use linear
// interpolation. An all-NaN or empty column yields no ticks.
func (d *Dataset) QuantileTicks(name string) ([]float64, error) {
	vals, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	clean := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return nil, nil
	}
	sort.Float64s(clean)

	ticks := make([]float64, RugPoints)
	for i := range ticks {
		p := float64(i) / float64(RugPoints-1)
		ticks[i] = stat.Quantile(p, stat.LinInterp, clean, nil)
	}
	return ticks, nil
}
