package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pam-tools/pamviz/internal/testutil"
)

func TestColumnMissing(t *testing.T) {
	d, err := New(map[string][]float64{"RT": {1, 2, 3}})
	testutil.AssertNoError(t, err)

	_, err = d.Column("x1")
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingColumnError", err)
	}
	if missing.Column != "x1" {
		t.Errorf("error column = %q, want x1", missing.Column)
	}
}

func TestNewRejectsRaggedColumns(t *testing.T) {
	_, err := New(map[string][]float64{"a": {1, 2}, "b": {1}})
	testutil.AssertError(t, err)
}

func TestQuantileTicks(t *testing.T) {
	vals := make([]float64, 1000)
	for i := range vals {
		vals[i] = float64(i)
	}
	d, err := New(map[string][]float64{"RT": vals})
	testutil.AssertNoError(t, err)

	ticks, err := d.QuantileTicks("RT")
	testutil.AssertNoError(t, err)

	if len(ticks) != RugPoints {
		t.Fatalf("got %d ticks, want %d", len(ticks), RugPoints)
	}
	if ticks[0] != 0 {
		t.Errorf("first tick = %v, want minimum 0", ticks[0])
	}
	if ticks[RugPoints-1] != 999 {
		t.Errorf("last tick = %v, want maximum 999", ticks[RugPoints-1])
	}
	// Median of 0..999 sits mid-range regardless of interpolation detail.
	if mid := ticks[RugPoints/2]; math.Abs(mid-499.5) > 1 {
		t.Errorf("median tick = %v, want about 499.5", mid)
	}
	// Ticks are non-decreasing.
	for i := 1; i < len(ticks); i++ {
		if ticks[i] < ticks[i-1] {
			t.Fatalf("ticks not sorted at %d: %v < %v", i, ticks[i], ticks[i-1])
		}
	}
}

func TestQuantileTicksIgnoreNaN(t *testing.T) {
	d, err := New(map[string][]float64{
		"x1": {math.NaN(), 5, math.NaN(), 1, 3},
	})
	testutil.AssertNoError(t, err)

	ticks, err := d.QuantileTicks("x1")
	testutil.AssertNoError(t, err)
	if ticks[0] != 1 || ticks[len(ticks)-1] != 5 {
		t.Errorf("ticks span [%v, %v], want [1, 5]", ticks[0], ticks[len(ticks)-1])
	}
}

func TestQuantileTicksAllMissing(t *testing.T) {
	d, err := New(map[string][]float64{"x1": {math.NaN(), math.NaN()}})
	testutil.AssertNoError(t, err)

	ticks, err := d.QuantileTicks("x1")
	testutil.AssertNoError(t, err)
	if ticks != nil {
		t.Errorf("all-missing column should yield no ticks, got %d", len(ticks))
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "RT,x1\n100,0.5\n200,NA\n,1.5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := LoadCSV(path)
	testutil.AssertNoError(t, err)

	if d.Rows() != 3 {
		t.Fatalf("rows = %d, want 3", d.Rows())
	}
	rt, err := d.Column("RT")
	testutil.AssertNoError(t, err)
	testutil.AssertFloatsEqual(t, rt, []float64{100, 200, math.NaN()}, 0)

	x1, err := d.Column("x1")
	testutil.AssertNoError(t, err)
	testutil.AssertFloatsEqual(t, x1, []float64{0.5, math.NaN(), 1.5}, 0)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	testutil.AssertError(t, err)
}
