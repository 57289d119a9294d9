package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Rug draws short tick marks at the given positions along one axis edge,
// marking the distribution of a variable. With Vertical false the ticks sit
// on the bottom edge at the given x positions; with Vertical true they sit on
// the left edge at the given y positions.
type Rug struct {
	Positions []float64
	Vertical  bool
	Length    vg.Length
	LineStyle draw.LineStyle
}

// NewRug builds a rug plotter with the default tick length and style.
func NewRug(positions []float64, vertical bool) *Rug {
	return &Rug{
		Positions: positions,
		Vertical:  vertical,
		Length:    vg.Points(5),
		LineStyle: draw.LineStyle{
			Color: color.Black,
			Width: vg.Points(0.5),
		},
	}
}

// Plot implements plot.Plotter. Positions outside the axis range are not
// drawn. The rug never widens the axis ranges; it annotates whatever range
// the surface established.
func (r *Rug) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, pos := range r.Positions {
		if r.Vertical {
			if pos < plt.Y.Min || pos > plt.Y.Max {
				continue
			}
			y := trY(pos)
			c.StrokeLine2(r.LineStyle, c.Min.X, y, c.Min.X+r.Length, y)
		} else {
			if pos < plt.X.Min || pos > plt.X.Max {
				continue
			}
			x := trX(pos)
			c.StrokeLine2(r.LineStyle, x, c.Min.Y, x, c.Min.Y+r.Length)
		}
	}
}
