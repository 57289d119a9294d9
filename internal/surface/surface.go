// Package surface implements the matrix pipeline that turns evaluated PAM
// terms into the effect surface and its significance-filtered variants.
// All routines treat NaN as "missing" and ignore it in sums and means.
package surface

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Build combines a one-dimensional main effect with a two-dimensional
// interaction into the effect surface: surface[i,j] = main[j] + inter[i,j].
// Rows index elapsed time, columns index the predictor grid, so the main
// effect is broadcast down each column.
func Build(main []float64, inter *mat.Dense) (*mat.Dense, error) {
	r, c := inter.Dims()
	if len(main) != c {
		return nil, fmt.Errorf("surface: main effect has %d values for %d interaction columns", len(main), c)
	}
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, main[j]+inter.At(i, j))
		}
	}
	return out, nil
}

// SymmetricLimits returns color-scale limits centered on zero: (-m, m) where
// m is the largest absolute non-NaN value in z. An all-NaN matrix yields
// (0, 0).
func SymmetricLimits(z mat.Matrix) (lo, hi float64) {
	r, c := z.Dims()
	m := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := math.Abs(z.At(i, j))
			if !math.IsNaN(v) && v > m {
				m = v
			}
		}
	}
	return -m, m
}

// CenterRows centers each row of fit around its mean over non-NaN values and
// derives the confidence band at k standard errors: for every cell,
// mid = fit - rowmean, lo = fit - k*se - rowmean, hi = fit + k*se - rowmean.
// A row with no non-NaN fitted values stays NaN throughout.
func CenterRows(fit, se *mat.Dense, k float64) (mid, lo, hi *mat.Dense, err error) {
	r, c := fit.Dims()
	if sr, sc := se.Dims(); sr != r || sc != c {
		return nil, nil, nil, fmt.Errorf("surface: se is %dx%d, fit is %dx%d", sr, sc, r, c)
	}
	mid = mat.NewDense(r, c, nil)
	lo = mat.NewDense(r, c, nil)
	hi = mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		mean, ok := rowMean(fit, i)
		for j := 0; j < c; j++ {
			f := fit.At(i, j)
			s := se.At(i, j)
			if !ok || math.IsNaN(f) {
				mid.Set(i, j, math.NaN())
				lo.Set(i, j, math.NaN())
				hi.Set(i, j, math.NaN())
				continue
			}
			mid.Set(i, j, f-mean)
			lo.Set(i, j, f-k*s-mean)
			hi.Set(i, j, f+k*s-mean)
		}
	}
	return mid, lo, hi, nil
}

// rowMean is the mean of row i ignoring NaN. ok is false when every value in
// the row is NaN.
func rowMean(m *mat.Dense, i int) (mean float64, ok bool) {
	_, c := m.Dims()
	sum, n := 0.0, 0
	for j := 0; j < c; j++ {
		if v := m.At(i, j); !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return math.NaN(), false
	}
	return sum / float64(n), true
}

// PropagateMissing sets dst[i,j] to NaN wherever src[i,j] is NaN, keeping the
// two matrices' missingness visually aligned. The matrices must have equal
// dimensions.
func PropagateMissing(dst *mat.Dense, src mat.Matrix) error {
	r, c := dst.Dims()
	if sr, sc := src.Dims(); sr != r || sc != c {
		return fmt.Errorf("surface: src is %dx%d, dst is %dx%d", sr, sc, r, c)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.IsNaN(src.At(i, j)) {
				dst.Set(i, j, math.NaN())
			}
		}
	}
	return nil
}

// MaskInsignificant copies z and blanks every cell whose confidence band
// spans zero (lo < 0 and hi > 0). Cells where the band is NaN are treated as
// insignificant too, since nothing supports them.
func MaskInsignificant(z, lo, hi *mat.Dense) *mat.Dense {
	r, c := z.Dims()
	out := mat.DenseCopyOf(z)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			l, h := lo.At(i, j), hi.At(i, j)
			if math.IsNaN(l) || math.IsNaN(h) || (l < 0 && h > 0) {
				out.Set(i, j, math.NaN())
			}
		}
	}
	return out
}

// DropEmptyRows copies z and blanks every row whose corresponding masked row
// sums to exactly zero over non-NaN entries. A row the significance mask
// retained nothing from (all NaN, sum trivially zero) disappears entirely;
// this is the row-level all-or-nothing filter, distinct from the cell-level
// mask.
func DropEmptyRows(z, masked *mat.Dense) *mat.Dense {
	r, c := z.Dims()
	out := mat.DenseCopyOf(z)
	for i := 0; i < r; i++ {
		sum := 0.0
		for j := 0; j < c; j++ {
			if v := masked.At(i, j); !math.IsNaN(v) {
				sum += v
			}
		}
		if sum == 0 {
			for j := 0; j < c; j++ {
				out.Set(i, j, math.NaN())
			}
		}
	}
	return out
}
