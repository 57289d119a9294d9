package pam

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// maxDumpSize caps the term-dump file size (32MB). A 100×100 grid per term
// is well under 1MB; anything larger than this is a malformed export.
const maxDumpSize = 32 * 1024 * 1024

// Dump is the JSON interchange format for evaluated model terms, as exported
// by the fitting software. Missing fitted values are encoded as JSON null.
type Dump struct {
	Terms []DumpTerm `json:"terms"`
}

// DumpTerm is one evaluated term in a Dump. Smooth terms carry Fit; tensor
// terms carry Grid (rows follow X) and optionally SE of equal shape.
type DumpTerm struct {
	Labels []string    `json:"labels"`
	X      nullableVec `json:"x"`
	Y      nullableVec `json:"y,omitempty"`
	Fit    nullableVec `json:"fit,omitempty"`
	Grid   nullableMat `json:"grid,omitempty"`
	SE     nullableMat `json:"se,omitempty"`
}

// nullableVec decodes a JSON array where null means NaN.
type nullableVec []float64

func (v *nullableVec) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]float64, len(raw))
	for i, p := range raw {
		if p == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *p
		}
	}
	*v = out
	return nil
}

func (v nullableVec) MarshalJSON() ([]byte, error) {
	raw := make([]*float64, len(v))
	for i := range v {
		if !math.IsNaN(v[i]) {
			x := v[i]
			raw[i] = &x
		}
	}
	return json.Marshal(raw)
}

type nullableMat []nullableVec

// StaticModel is a Model backed by pre-evaluated term grids from a Dump.
// Its grid resolution is fixed by the export; evaluation requests at any
// other resolution fail rather than resample.
type StaticModel struct {
	terms   []Term
	numGrid int
}

// LoadDump reads a term-dump JSON file and returns the model it describes.
// The path must have a .json extension and the file must be under the size
// cap; partial dumps (terms without standard errors) are accepted.
func LoadDump(path string) (*StaticModel, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("term dump must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat term dump: %w", err)
	}
	if info.Size() > maxDumpSize {
		return nil, fmt.Errorf("term dump too large: %d bytes (max %d)", info.Size(), maxDumpSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read term dump: %w", err)
	}

	var d Dump
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse term dump JSON: %w", err)
	}
	return NewStaticModel(d)
}

// NewStaticModel validates a Dump and builds the in-memory model from it.
func NewStaticModel(d Dump) (*StaticModel, error) {
	if len(d.Terms) == 0 {
		return nil, fmt.Errorf("term dump contains no terms")
	}

	m := &StaticModel{}
	for i, dt := range d.Terms {
		t, err := dt.toTerm()
		if err != nil {
			return nil, fmt.Errorf("term %d: %w", i, err)
		}
		n := len(t.X)
		if m.numGrid == 0 {
			m.numGrid = n
		} else if n != m.numGrid {
			return nil, fmt.Errorf("term %d: grid size %d differs from %d", i, n, m.numGrid)
		}
		m.terms = append(m.terms, t)
	}
	return m, nil
}

// NumGrid returns the per-axis grid resolution the dump was evaluated at.
func (m *StaticModel) NumGrid() int { return m.numGrid }

// EvalTerms returns every term of the model. numGrid must equal the dump's
// resolution; a static model cannot resample.
func (m *StaticModel) EvalTerms(numGrid int) ([]Term, error) {
	if numGrid != m.numGrid {
		return nil, fmt.Errorf("static model evaluated at %d grid points, cannot evaluate at %d", m.numGrid, numGrid)
	}
	out := make([]Term, len(m.terms))
	copy(out, m.terms)
	return out, nil
}

// EvalTensor returns the tensor term with axis labels {a, b}. The dump must
// include standard errors for that term.
func (m *StaticModel) EvalTensor(a, b string, numGrid int) (Term, error) {
	if numGrid != m.numGrid {
		return Term{}, fmt.Errorf("static model evaluated at %d grid points, cannot evaluate at %d", m.numGrid, numGrid)
	}
	t, err := FindTensor(m.terms, a, b)
	if err != nil {
		return Term{}, err
	}
	if t.SE == nil {
		return Term{}, fmt.Errorf("term dump has no standard errors for %s:%s", a, b)
	}
	return t, nil
}

func (dt DumpTerm) toTerm() (Term, error) {
	switch len(dt.Labels) {
	case 1:
		if len(dt.X) == 0 {
			return Term{}, fmt.Errorf("smooth %q: empty grid", dt.Labels[0])
		}
		if len(dt.Fit) != len(dt.X) {
			return Term{}, fmt.Errorf("smooth %q: %d fitted values for %d grid points",
				dt.Labels[0], len(dt.Fit), len(dt.X))
		}
		return Term{
			Labels: append([]string(nil), dt.Labels...),
			X:      dt.X,
			Fit:    dt.Fit,
		}, nil
	case 2:
		if len(dt.X) == 0 || len(dt.Y) == 0 {
			return Term{}, fmt.Errorf("tensor %s:%s: empty grid", dt.Labels[0], dt.Labels[1])
		}
		grid, err := denseFromRows(dt.Grid, len(dt.X), len(dt.Y))
		if err != nil {
			return Term{}, fmt.Errorf("tensor %s:%s grid: %w", dt.Labels[0], dt.Labels[1], err)
		}
		t := Term{
			Labels: append([]string(nil), dt.Labels...),
			X:      dt.X,
			Y:      dt.Y,
			Grid:   grid,
		}
		if dt.SE != nil {
			se, err := denseFromRows(dt.SE, len(dt.X), len(dt.Y))
			if err != nil {
				return Term{}, fmt.Errorf("tensor %s:%s se: %w", dt.Labels[0], dt.Labels[1], err)
			}
			t.SE = se
		}
		return t, nil
	default:
		return Term{}, fmt.Errorf("term has %d labels, want 1 or 2", len(dt.Labels))
	}
}

func denseFromRows(rows nullableMat, r, c int) (*mat.Dense, error) {
	if len(rows) != r {
		return nil, fmt.Errorf("%d rows, want %d", len(rows), r)
	}
	out := mat.NewDense(r, c, nil)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), c)
		}
		out.SetRow(i, row)
	}
	return out, nil
}
