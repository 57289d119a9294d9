// Package testutil provides shared test utilities and fixtures.
//
// This package centralises the matrix and float comparisons the numeric
// pipeline tests need, so individual test files stay readable.
package testutil

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/mat"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertMatEqual checks two matrices cell by cell within tol. NaN equals NaN,
// so missing cells compare as intended.
func AssertMatEqual(t *testing.T, got, want mat.Matrix, tol float64) {
	t.Helper()
	gr, gc := got.Dims()
	wr, wc := want.Dims()
	if gr != wr || gc != wc {
		t.Fatalf("matrix is %dx%d, want %dx%d", gr, gc, wr, wc)
	}
	for i := 0; i < gr; i++ {
		for j := 0; j < gc; j++ {
			g, w := got.At(i, j), want.At(i, j)
			if math.IsNaN(g) && math.IsNaN(w) {
				continue
			}
			if math.IsNaN(g) != math.IsNaN(w) || math.Abs(g-w) > tol {
				t.Errorf("cell (%d,%d) = %v, want %v", i, j, g, w)
			}
		}
	}
}

// AssertFloatsEqual diffs two float slices with NaN-aware approximate
// comparison.
func AssertFloatsEqual(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, tol), cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

// Mat builds a dense matrix from rows for compact test fixtures.
func Mat(rows ...[]float64) *mat.Dense {
	if len(rows) == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		out.SetRow(i, row)
	}
	return out
}
