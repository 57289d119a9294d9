package surface

import (
	"math"
	"testing"

	"github.com/pam-tools/pamviz/internal/testutil"
)

func TestBuildBroadcastsMainEffect(t *testing.T) {
	inter := testutil.Mat(
		[]float64{0, 0, 0, 0},
		[]float64{0, 0, 0, 0},
		[]float64{0, 0, 0, 0},
		[]float64{0, 0, 0, 0},
	)
	got, err := Build([]float64{1, 2, 3, 4}, inter)
	testutil.AssertNoError(t, err)

	want := testutil.Mat(
		[]float64{1, 2, 3, 4},
		[]float64{1, 2, 3, 4},
		[]float64{1, 2, 3, 4},
		[]float64{1, 2, 3, 4},
	)
	testutil.AssertMatEqual(t, got, want, 0)
}

func TestBuildAddsInteraction(t *testing.T) {
	inter := testutil.Mat(
		[]float64{0.5, -0.5},
		[]float64{1.0, math.NaN()},
	)
	got, err := Build([]float64{1, 2}, inter)
	testutil.AssertNoError(t, err)

	want := testutil.Mat(
		[]float64{1.5, 1.5},
		[]float64{2.0, math.NaN()},
	)
	testutil.AssertMatEqual(t, got, want, 1e-12)

	r, c := got.Dims()
	if r != 2 || c != 2 {
		t.Errorf("surface is %dx%d, want 2x2", r, c)
	}
}

func TestBuildDimensionMismatch(t *testing.T) {
	_, err := Build([]float64{1, 2, 3}, testutil.Mat([]float64{0, 0}))
	testutil.AssertError(t, err)
}

func TestSymmetricLimits(t *testing.T) {
	tests := []struct {
		name string
		z    [][]float64
		max  float64
	}{
		{"positive max", [][]float64{{1, -2}, {0.5, 1.5}}, 2},
		{"negative max", [][]float64{{-3, 1}, {0, 2}}, 3},
		{"ignores NaN", [][]float64{{math.NaN(), 1}, {-1.5, math.NaN()}}, 1.5},
		{"all NaN", [][]float64{{math.NaN()}, {math.NaN()}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := SymmetricLimits(testutil.Mat(tt.z...))
			if hi != tt.max {
				t.Errorf("hi = %v, want %v", hi, tt.max)
			}
			if lo != -hi {
				t.Errorf("limits not symmetric: lo = %v, hi = %v", lo, hi)
			}
		})
	}
}

func TestCenterRowsZeroMean(t *testing.T) {
	fit := testutil.Mat(
		[]float64{1, 2, 3},
		[]float64{-4, 0, math.NaN()},
	)
	se := testutil.Mat(
		[]float64{0.1, 0.2, 0.3},
		[]float64{0.5, 0.5, 0.5},
	)
	mid, lo, hi, err := CenterRows(fit, se, 2)
	testutil.AssertNoError(t, err)

	for i := 0; i < 2; i++ {
		sum, n := 0.0, 0
		for j := 0; j < 3; j++ {
			if v := mid.At(i, j); !math.IsNaN(v) {
				sum += v
				n++
			}
		}
		if n == 0 {
			t.Fatalf("row %d has no values", i)
		}
		if mean := sum / float64(n); math.Abs(mean) > 1e-12 {
			t.Errorf("row %d mean = %v after centering, want 0", i, mean)
		}
	}

	// Row 0 mean is 2: fit 1 with se 0.1 becomes mid -1, band [-1.2, -0.8].
	if got := mid.At(0, 0); math.Abs(got-(-1)) > 1e-12 {
		t.Errorf("mid[0,0] = %v, want -1", got)
	}
	if got := lo.At(0, 0); math.Abs(got-(-1.2)) > 1e-12 {
		t.Errorf("lo[0,0] = %v, want -1.2", got)
	}
	if got := hi.At(0, 0); math.Abs(got-(-0.8)) > 1e-12 {
		t.Errorf("hi[0,0] = %v, want -0.8", got)
	}
}

func TestCenterRowsAllMissingRow(t *testing.T) {
	fit := testutil.Mat(
		[]float64{math.NaN(), math.NaN()},
		[]float64{1, 3},
	)
	se := testutil.Mat(
		[]float64{1, 1},
		[]float64{1, 1},
	)
	mid, lo, hi, err := CenterRows(fit, se, 2)
	testutil.AssertNoError(t, err)

	for j := 0; j < 2; j++ {
		if !math.IsNaN(mid.At(0, j)) || !math.IsNaN(lo.At(0, j)) || !math.IsNaN(hi.At(0, j)) {
			t.Errorf("all-missing row not propagated at column %d", j)
		}
	}
	// The valid row still centers.
	if got := mid.At(1, 0); math.Abs(got-(-1)) > 1e-12 {
		t.Errorf("mid[1,0] = %v, want -1", got)
	}
}

func TestCenterRowsShapeMismatch(t *testing.T) {
	_, _, _, err := CenterRows(testutil.Mat([]float64{1, 2}), testutil.Mat([]float64{1}), 2)
	testutil.AssertError(t, err)
}

func TestPropagateMissing(t *testing.T) {
	dst := testutil.Mat(
		[]float64{1, 2},
		[]float64{3, 4},
	)
	src := testutil.Mat(
		[]float64{math.NaN(), 0},
		[]float64{0, math.NaN()},
	)
	testutil.AssertNoError(t, PropagateMissing(dst, src))

	want := testutil.Mat(
		[]float64{math.NaN(), 2},
		[]float64{3, math.NaN()},
	)
	testutil.AssertMatEqual(t, dst, want, 0)
}

func TestMaskInsignificant(t *testing.T) {
	z := testutil.Mat(
		[]float64{1, 2, 3},
		[]float64{4, 5, 6},
	)
	// Cell (0,0) band spans zero; (0,2) band is NaN; the rest exclude zero.
	lo := testutil.Mat(
		[]float64{-1, 0.5, math.NaN()},
		[]float64{0.1, -2, 1},
	)
	hi := testutil.Mat(
		[]float64{1, 2, math.NaN()},
		[]float64{3, -0.5, 4},
	)
	got := MaskInsignificant(z, lo, hi)

	want := testutil.Mat(
		[]float64{math.NaN(), 2, math.NaN()},
		[]float64{4, 5, 6},
	)
	testutil.AssertMatEqual(t, got, want, 0)
}

func TestMaskSpanningBandBlanksWholeRow(t *testing.T) {
	z := testutil.Mat(
		[]float64{1, 2},
		[]float64{3, 4},
	)
	lo := testutil.Mat(
		[]float64{-1, -1},
		[]float64{1, 1},
	)
	hi := testutil.Mat(
		[]float64{1, 1},
		[]float64{2, 2},
	)
	z3 := MaskInsignificant(z, lo, hi)
	if !math.IsNaN(z3.At(0, 0)) || !math.IsNaN(z3.At(0, 1)) {
		t.Fatal("row with bands spanning zero should be fully missing in the mask")
	}

	// With nothing retained, the row's sum is trivially zero, so the
	// row-level filter drops it too.
	z2 := DropEmptyRows(z, z3)
	if !math.IsNaN(z2.At(0, 0)) || !math.IsNaN(z2.At(0, 1)) {
		t.Error("empty masked row should be dropped from the row-filtered surface")
	}
	if z2.At(1, 0) != 3 || z2.At(1, 1) != 4 {
		t.Error("retained row should pass through unchanged")
	}
}

func TestDropEmptyRowsExactZeroSum(t *testing.T) {
	z := testutil.Mat(
		[]float64{1, 2},
		[]float64{3, 4},
	)
	// Row 0 retains values that cancel to exactly zero.
	masked := testutil.Mat(
		[]float64{-2, 2},
		[]float64{3, math.NaN()},
	)
	got := DropEmptyRows(z, masked)

	want := testutil.Mat(
		[]float64{math.NaN(), math.NaN()},
		[]float64{3, 4},
	)
	testutil.AssertMatEqual(t, got, want, 0)
}
