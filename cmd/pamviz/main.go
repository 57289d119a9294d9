// Command pamviz renders the time × predictor effect surface of a fitted PAM
// from a term-dump JSON and the original dataset CSV. It writes a static
// figure (PNG, SVG or PDF, chosen by the output extension) or serves the
// interactive echarts heatmap over HTTP.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/pam-tools/pamviz"
	"github.com/pam-tools/pamviz/internal/config"
	"github.com/pam-tools/pamviz/internal/dataset"
	"github.com/pam-tools/pamviz/internal/pam"
	"github.com/pam-tools/pamviz/internal/render"
)

var (
	modelPath  = flag.String("model", "", "Term-dump JSON exported by the fitting software (required)")
	dataPath   = flag.String("data", "", "Original dataset CSV (required)")
	predictor  = flag.String("predictor", "", "Predictor term to plot against time (required)")
	outPath    = flag.String("out", "surface.png", "Output file; format follows the extension")
	configPath = flag.String("config", "", "Optional presentation defaults JSON")
	listen     = flag.String("listen", "", "Serve the interactive heatmap on this address instead of writing a file")

	response = flag.String("response", "", "Response column for the time-axis rug")
	seMult   = flag.Float64("se", 0, "Significance band width in standard errors")
	area     = flag.Bool("area", false, "Show the cell-level significance mask instead of the row-filtered surface")
	numGrid  = flag.Int("num-grid", 0, "Grid resolution per axis")
	levels   = flag.String("levels", "", "Comma-separated contour levels (default automatic)")
	colors   = flag.String("palette", "", "Comma-separated hex colors overriding the built-in ramp")
	alpha    = flag.String("alpha", "", "Two-hex-digit background alpha")
	rugX     = flag.Bool("rugx", true, "Draw the response quantile rug on the time axis")
	rugY     = flag.Bool("rugy", true, "Draw the predictor quantile rug")
	title    = flag.String("title", "", "Plot title (default: predictor name)")
	xlab     = flag.String("xlab", "", "X-axis label (default: time)")
	ylab     = flag.String("ylab", "", "Y-axis label (default: predictor name)")
)

func main() {
	flag.Parse()

	if *modelPath == "" || *dataPath == "" || *predictor == "" {
		flag.Usage()
		log.Fatal("-model, -data and -predictor are required")
	}

	cfg := config.EmptyPlotDefaults()
	if *configPath != "" {
		loaded, err := config.LoadPlotDefaults(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	model, err := pam.LoadDump(*modelPath)
	if err != nil {
		log.Fatalf("failed to load model terms: %v", err)
	}
	data, err := dataset.LoadCSV(*dataPath)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}
	log.Printf("loaded %d-point grid, dataset with %d rows", model.NumGrid(), data.Rows())

	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	opts, err := buildOptions(cfg, setFlags)
	if err != nil {
		log.Fatal(err)
	}

	result, err := pamviz.Plot(model, *predictor, data, opts...)
	if err != nil {
		log.Fatalf("failed to build surface plot: %v", err)
	}

	if *listen != "" {
		serve(*listen, result, cfg)
		return
	}

	w := vg.Length(cfg.GetWidthInches()) * vg.Inch
	h := vg.Length(cfg.GetHeightInches()) * vg.Inch
	if err := result.Plot.Save(w, h, *outPath); err != nil {
		log.Fatalf("failed to save plot: %v", err)
	}
	log.Printf("wrote %s", *outPath)
}

// buildOptions layers config-file defaults under explicitly set flags;
// setFlags tells config-backed toggles apart from untouched flag defaults.
func buildOptions(cfg *config.PlotDefaults, setFlags map[string]bool) ([]pamviz.Option, error) {
	opts := []pamviz.Option{pamviz.FromDefaults(cfg)}

	if *response != "" {
		opts = append(opts, pamviz.Response(*response))
	}
	if *seMult > 0 {
		opts = append(opts, pamviz.SE(*seMult))
	}
	if *area {
		opts = append(opts, pamviz.Area(true))
	}
	if *numGrid > 0 {
		opts = append(opts, pamviz.NumGrid(*numGrid))
	}
	if *alpha != "" {
		opts = append(opts, pamviz.Alpha(*alpha))
	}
	if *levels != "" {
		levs, err := parseLevels(*levels)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pamviz.Levels(levs))
	}
	if *colors != "" {
		p, err := render.ParsePalette(*colors)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pamviz.WithPalette(p))
	}
	if setFlags["rugx"] {
		opts = append(opts, pamviz.RugX(*rugX))
	}
	if setFlags["rugy"] {
		opts = append(opts, pamviz.RugY(*rugY))
	}
	if *title != "" {
		opts = append(opts, pamviz.Main(*title))
	}
	if *xlab != "" {
		opts = append(opts, pamviz.XLab(*xlab))
	}
	if *ylab != "" {
		opts = append(opts, pamviz.YLab(*ylab))
	}
	return opts, nil
}

func parseLevels(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad contour level %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// serve exposes the interactive heatmap. /?layer=full shows the complete
// surface; the default shows the significance-filtered overlay.
func serve(addr string, result *pamviz.Result, cfg *config.PlotDefaults) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", surfaceHandler(result, cfg))

	log.Printf("serving effect surface on http://%s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}

func surfaceHandler(result *pamviz.Result, cfg *config.PlotDefaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		grid := result.Foreground
		subtitle := "significant effects"
		if r.URL.Query().Get("layer") == "full" {
			grid = result.Surface
			subtitle = "full surface"
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := render.WriteHTML(w, grid, render.EChartsOptions{
			Title:    result.Plot.Title.Text,
			Subtitle: subtitle,
			XLabel:   result.Plot.X.Label.Text,
			YLabel:   result.Plot.Y.Label.Text,
			Palette:  render.DivergingRYB(cfg.GetPaletteSteps()),
			Min:      result.Limits[0],
			Max:      result.Limits[1],
		})
		if err != nil {
			log.Printf("render error: %v", err)
		}
	}
}
