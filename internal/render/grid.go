// Package render draws effect surfaces with gonum/plot: layered rasters with
// NaN-transparent cells, contour lines, axis rugs, and an interactive
// echarts heatmap for the serve mode.
package render

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Grid adapts a surface matrix to gonum/plot's GridXYZ. X carries the
// elapsed-time coordinates (plot x axis), Y the predictor coordinates (plot
// y axis), and Data.At(i, j) is the value at (X[i], Y[j]).
type Grid struct {
	XCoords []float64
	YCoords []float64
	Data    *mat.Dense
}

// Dims returns the number of columns (x points) and rows (y points).
func (g *Grid) Dims() (c, r int) { return len(g.XCoords), len(g.YCoords) }

// X returns the x coordinate of column c.
func (g *Grid) X(c int) float64 { return g.XCoords[c] }

// Y returns the y coordinate of row r.
func (g *Grid) Y(r int) float64 { return g.YCoords[r] }

// Z returns the value at column c, row r. NaN marks a missing cell.
func (g *Grid) Z(c, r int) float64 { return g.Data.At(c, r) }

// cellEdges returns the n+1 boundaries of cells centered on the n given
// coordinates: midpoints between neighbours, extrapolated half a step at the
// ends.
func cellEdges(coords []float64) []float64 {
	n := len(coords)
	edges := make([]float64, n+1)
	if n == 1 {
		edges[0] = coords[0] - 0.5
		edges[1] = coords[0] + 0.5
		return edges
	}
	edges[0] = coords[0] - (coords[1]-coords[0])/2
	for i := 1; i < n; i++ {
		edges[i] = (coords[i-1] + coords[i]) / 2
	}
	edges[n] = coords[n-1] + (coords[n-1]-coords[n-2])/2
	return edges
}

// dataRange returns the outermost cell edges of the grid.
func (g *Grid) dataRange() (xmin, xmax, ymin, ymax float64) {
	xe := cellEdges(g.XCoords)
	ye := cellEdges(g.YCoords)
	return xe[0], xe[len(xe)-1], ye[0], ye[len(ye)-1]
}

// hasValue reports whether the grid contains at least one non-NaN cell.
func (g *Grid) hasValue() bool {
	c, r := g.Dims()
	for i := 0; i < c; i++ {
		for j := 0; j < r; j++ {
			if !math.IsNaN(g.Z(i, j)) {
				return true
			}
		}
	}
	return false
}
