package render

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// visualMapSteps is how many palette colors are handed to the echarts visual
// map. The full ramp has hundreds of entries; echarts interpolates between
// the sampled stops, so more would only bloat the page.
const visualMapSteps = 11

// EChartsOptions controls the interactive heatmap page.
type EChartsOptions struct {
	Title    string
	Subtitle string
	XLabel   string
	YLabel   string
	Palette  Palette
	Min, Max float64
}

// WriteHTML renders the grid as an interactive echarts heatmap page. NaN
// cells are omitted, so the masked foreground reads as gaps just as it does
// in the raster output.
func WriteHTML(w io.Writer, g *Grid, o EChartsOptions) error {
	nx, ny := g.Dims()
	if nx == 0 || ny == 0 {
		return fmt.Errorf("render: empty grid")
	}
	if !g.hasValue() {
		return fmt.Errorf("render: grid has no non-missing cells")
	}

	xCats := make([]string, nx)
	for i := range xCats {
		xCats[i] = strconv.FormatFloat(g.X(i), 'g', 4, 64)
	}
	yCats := make([]string, ny)
	for j := range yCats {
		yCats[j] = strconv.FormatFloat(g.Y(j), 'g', 4, 64)
	}

	data := make([]opts.HeatMapData, 0, nx*ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			v := g.Z(i, j)
			if math.IsNaN(v) {
				continue
			}
			data = append(data, opts.HeatMapData{Value: []interface{}{i, j, v}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: o.Title, Width: "900px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{Title: o.Title, Subtitle: o.Subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: o.XLabel, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: o.YLabel, NameLocation: "middle", NameGap: 40, Data: yCats}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(o.Min),
			Max:        float32(o.Max),
			InRange:    &opts.VisualMapInRange{Color: sampleHex(o.Palette, visualMapSteps)},
		}),
	)
	hm.SetXAxis(xCats).AddSeries("effect", data)

	if err := hm.Render(w); err != nil {
		return fmt.Errorf("render: failed to render chart: %w", err)
	}
	return nil
}

// sampleHex picks n evenly spaced colors from the palette as hex strings.
func sampleHex(p Palette, n int) []string {
	if len(p) == 0 {
		return nil
	}
	if len(p) <= n {
		out := make([]string, len(p))
		for i, c := range p {
			out[i] = HexString(c)
		}
		return out
	}
	out := make([]string, n)
	for i := range out {
		idx := i * (len(p) - 1) / (n - 1)
		out[i] = HexString(p[idx])
	}
	return out
}
