package pamviz

import (
	"fmt"

	"github.com/pam-tools/pamviz/internal/config"
	"github.com/pam-tools/pamviz/internal/render"
)

// options collects the presentation parameters of a surface plot. Zero
// values mean "use the default"; resolve fills the gaps.
type options struct {
	response string
	se       float64
	area     bool
	numGrid  int
	palette  render.Palette
	alpha    string
	levels   []float64
	rugX     bool
	rugY     bool
	main     string
	xlab     string
	ylab     string
}

// Option adjusts one presentation parameter of Plot.
type Option func(*options)

func defaultOptions() options {
	return options{
		response: config.DefaultResponse,
		se:       config.DefaultSE,
		numGrid:  config.DefaultNumGrid,
		alpha:    config.DefaultAlpha,
		rugX:     true,
		rugY:     true,
	}
}

// Response names the response column used for the x-axis rug. Default "RT".
func Response(name string) Option { return func(o *options) { o.response = name } }

// SE sets the width of the significance band in standard errors. Default 2.
func SE(k float64) Option { return func(o *options) { o.se = k } }

// Area selects the cell-level significance mask as the foreground overlay
// instead of the row-filtered surface. Default false.
func Area(on bool) Option { return func(o *options) { o.area = on } }

// NumGrid sets the per-axis grid resolution. Default 100.
func NumGrid(n int) Option { return func(o *options) { o.numGrid = n } }

// WithPalette replaces the default 500-step diverging red-yellow-blue ramp.
func WithPalette(p render.Palette) Option { return func(o *options) { o.palette = p } }

// Alpha sets the 2-hex-digit alpha suffix applied to the background layer's
// colors. Default "66".
func Alpha(suffix string) Option { return func(o *options) { o.alpha = suffix } }

// Levels fixes the contour levels. By default levels are chosen
// automatically from the surface range.
func Levels(levs []float64) Option { return func(o *options) { o.levels = levs } }

// RugX toggles the response-distribution rug on the time axis. Default true.
func RugX(on bool) Option { return func(o *options) { o.rugX = on } }

// RugY toggles the predictor-distribution rug. Default true.
func RugY(on bool) Option { return func(o *options) { o.rugY = on } }

// Main overrides the plot title. Defaults to the predictor name.
func Main(title string) Option { return func(o *options) { o.main = title } }

// XLab overrides the x-axis label. Default "time".
func XLab(label string) Option { return func(o *options) { o.xlab = label } }

// YLab overrides the y-axis label. Defaults to the predictor name.
func YLab(label string) Option { return func(o *options) { o.ylab = label } }

// FromDefaults applies every field set in a loaded defaults file. Explicit
// Options given after it still win.
func FromDefaults(cfg *config.PlotDefaults) Option {
	return func(o *options) {
		o.response = cfg.GetResponse()
		o.se = cfg.GetSE()
		o.area = cfg.GetArea()
		o.numGrid = cfg.GetNumGrid()
		o.alpha = cfg.GetAlpha()
		o.rugX = cfg.GetRugX()
		o.rugY = cfg.GetRugY()
		if len(cfg.Levels) > 0 {
			o.levels = cfg.Levels
		}
		if cfg.PaletteSteps != nil {
			o.palette = render.DivergingRYB(cfg.GetPaletteSteps())
		}
	}
}

func (o *options) validate(predictor string) error {
	if predictor == "" {
		return fmt.Errorf("pamviz: predictor name is required")
	}
	if o.se <= 0 {
		return fmt.Errorf("pamviz: se must be positive, got %v", o.se)
	}
	if o.numGrid < 2 {
		return fmt.Errorf("pamviz: num_grid must be at least 2, got %d", o.numGrid)
	}
	return nil
}

func (o *options) resolve(predictor string) {
	if o.palette == nil {
		o.palette = render.DivergingRYB(config.DefaultPaletteSteps)
	}
	if o.main == "" {
		o.main = predictor
	}
	if o.xlab == "" {
		o.xlab = "time"
	}
	if o.ylab == "" {
		o.ylab = predictor
	}
}
