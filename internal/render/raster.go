package render

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Raster draws a grid as filled cells colored by value against fixed limits.
// NaN cells are skipped entirely, so whatever was drawn underneath stays
// visible; layering an opaque raster over an alpha-dimmed one produces the
// background/foreground overlay.
type Raster struct {
	Grid    *Grid
	Palette Palette
	// Min and Max fix the color scale. Values outside are clamped.
	Min, Max float64
}

// NewRaster builds a raster layer for g using p at the given color limits.
func NewRaster(g *Grid, p Palette, min, max float64) *Raster {
	return &Raster{Grid: g, Palette: p, Min: min, Max: max}
}

// Plot implements plot.Plotter.
func (rs *Raster) Plot(c draw.Canvas, plt *plot.Plot) {
	if len(rs.Palette) == 0 {
		return
	}
	trX, trY := plt.Transforms(&c)
	nx, ny := rs.Grid.Dims()
	xe := cellEdges(rs.Grid.XCoords)
	ye := cellEdges(rs.Grid.YCoords)

	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			v := rs.Grid.Z(i, j)
			if math.IsNaN(v) {
				continue
			}
			c.SetColor(rs.Palette[rs.colorIndex(v)])

			x0, x1 := trX(xe[i]), trX(xe[i+1])
			y0, y1 := trY(ye[j]), trY(ye[j+1])

			var p vg.Path
			p.Move(vg.Point{X: x0, Y: y0})
			p.Line(vg.Point{X: x1, Y: y0})
			p.Line(vg.Point{X: x1, Y: y1})
			p.Line(vg.Point{X: x0, Y: y1})
			p.Close()
			c.Fill(p)
		}
	}
}

func (rs *Raster) colorIndex(v float64) int {
	if rs.Max <= rs.Min {
		return 0
	}
	f := (v - rs.Min) / (rs.Max - rs.Min)
	idx := int(f * float64(len(rs.Palette)-1))
	if idx < 0 {
		return 0
	}
	if idx >= len(rs.Palette) {
		return len(rs.Palette) - 1
	}
	return idx
}

// DataRange implements plot.DataRanger so the axes cover the full cells, not
// just the cell centers.
func (rs *Raster) DataRange() (xmin, xmax, ymin, ymax float64) {
	return rs.Grid.dataRange()
}
