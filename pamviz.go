// Package pamviz visualizes the fitted effect surface of a piece-wise
// exponential additive mixed (PAM) survival model: the two-dimensional
// interaction between elapsed time and one chosen predictor, rendered as a
// heatmap with a significance-aware overlay and contour lines.
//
// The model has already been fitted elsewhere; pamviz consumes evaluated term
// grids (pam.Model) together with the original dataset, and assembles a
// gonum/plot figure the caller renders to any explicit target. Nothing here
// touches ambient graphics state.
package pamviz

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/pam-tools/pamviz/internal/dataset"
	"github.com/pam-tools/pamviz/internal/pam"
	"github.com/pam-tools/pamviz/internal/render"
	"github.com/pam-tools/pamviz/internal/surface"
)

// autoLevelCount is the target number of contour levels when none are given.
const autoLevelCount = 7

// Result is an assembled effect-surface figure plus the grids behind it, so
// alternative renderers (the echarts serve mode) and callers inspecting the
// significance filtering can reuse them.
type Result struct {
	// Plot holds the layered figure: translucent full surface, opaque
	// significance-filtered overlay, contour lines, then rugs.
	Plot *plot.Plot

	// Surface is the full effect surface (main effect + interaction),
	// x = time, y = predictor.
	Surface *render.Grid

	// Foreground is the overlay actually drawn: the cell-level mask when
	// Area is set, the row-filtered surface otherwise.
	Foreground *render.Grid

	// Limits are the symmetric color-scale limits shared by both layers.
	Limits [2]float64
}

// Plot builds the effect-surface figure for the tensor interaction between
// elapsed time and predictor. The model must contain a smooth term labelled
// predictor and a tensor term over {tend, predictor} in either axis order;
// data must contain the response and predictor columns. Lookup and column
// failures (pam.TermNotFoundError, pam.AmbiguousTermError,
// dataset.MissingColumnError) are returned before anything is drawn.
func Plot(model pam.Model, predictor string, data *dataset.Dataset, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(predictor); err != nil {
		return nil, err
	}
	o.resolve(predictor)

	// Term lookup runs first: a predictor the model does not know is a
	// term error even when the dataset lacks the column too.
	terms, err := model.EvalTerms(o.numGrid)
	if err != nil {
		return nil, err
	}
	smooth, err := pam.FindSmooth(terms, predictor)
	if err != nil {
		return nil, err
	}
	inter, err := pam.FindTensor(terms, pam.TimeLabel, predictor)
	if err != nil {
		return nil, err
	}

	// Both columns are required, whether or not their rugs are drawn, so a
	// bad dataset still fails before anything is assembled.
	if _, err := data.Column(o.response); err != nil {
		return nil, err
	}
	if _, err := data.Column(predictor); err != nil {
		return nil, err
	}

	var rugXTicks, rugYTicks []float64
	if o.rugX {
		if rugXTicks, err = data.QuantileTicks(o.response); err != nil {
			return nil, err
		}
	}
	if o.rugY {
		if rugYTicks, err = data.QuantileTicks(predictor); err != nil {
			return nil, err
		}
	}

	surf, err := surface.Build(smooth.Fit, inter.Grid)
	if err != nil {
		return nil, err
	}
	lo, hi := surface.SymmetricLimits(surf)

	// The interaction is re-evaluated on its own to get standard errors, then
	// centered per time row so the band measures departure from that row's
	// mean effect.
	tensor, err := model.EvalTensor(pam.TimeLabel, predictor, o.numGrid)
	if err != nil {
		return nil, err
	}
	mid, bandLo, bandHi, err := surface.CenterRows(tensor.Grid, tensor.SE, o.se)
	if err != nil {
		return nil, err
	}
	if err := surface.PropagateMissing(mid, surf); err != nil {
		return nil, err
	}

	masked := surface.MaskInsignificant(surf, bandLo, bandHi)
	fg := masked
	if !o.area {
		fg = surface.DropEmptyRows(surf, masked)
	}

	bgGrid := &render.Grid{XCoords: inter.X, YCoords: inter.Y, Data: surf}
	fgGrid := &render.Grid{XCoords: inter.X, YCoords: inter.Y, Data: fg}

	dimmed, err := o.palette.WithAlpha(o.alpha)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = o.main
	p.X.Label.Text = o.xlab
	p.Y.Label.Text = o.ylab

	p.Add(render.NewRaster(bgGrid, dimmed, lo, hi))
	p.Add(render.NewRaster(fgGrid, o.palette, lo, hi))

	levels := o.levels
	if levels == nil {
		levels = render.NiceLevels(lo, hi, autoLevelCount)
	}
	if len(levels) > 0 {
		p.Add(plotter.NewContour(bgGrid, levels, render.Palette{color.Black}))
	}

	if o.rugX {
		p.Add(render.NewRug(rugXTicks, false))
	}
	if o.rugY {
		p.Add(render.NewRug(rugYTicks, true))
	}

	return &Result{
		Plot:       p,
		Surface:    bgGrid,
		Foreground: fgGrid,
		Limits:     [2]float64{lo, hi},
	}, nil
}
