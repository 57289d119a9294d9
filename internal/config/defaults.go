// Package config loads presentation defaults for effect-surface plots.
// Fields omitted from the JSON file fall back to the built-in defaults, so
// partial configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Built-in defaults, used wherever the config file leaves a field unset.
const (
	DefaultResponse     = "RT"
	DefaultSE           = 2.0
	DefaultNumGrid      = 100
	DefaultPaletteSteps = 500
	DefaultAlpha        = "66"
	DefaultWidthInches  = 8.0
	DefaultHeightInches = 6.0
)

// PlotDefaults is the root configuration for presentation parameters. The
// schema matches the CLI flags so one JSON file can seed a whole batch of
// renders.
type PlotDefaults struct {
	Response     *string   `json:"response,omitempty"`
	SE           *float64  `json:"se,omitempty"`
	Area         *bool     `json:"area,omitempty"`
	NumGrid      *int      `json:"num_grid,omitempty"`
	PaletteSteps *int      `json:"palette_steps,omitempty"`
	Alpha        *string   `json:"alpha,omitempty"` // 2-hex-digit background alpha
	RugX         *bool     `json:"rugx,omitempty"`
	RugY         *bool     `json:"rugy,omitempty"`
	Levels       []float64 `json:"levels,omitempty"`
	WidthInches  *float64  `json:"width_inches,omitempty"`
	HeightInches *float64  `json:"height_inches,omitempty"`
}

// EmptyPlotDefaults returns a PlotDefaults with all fields unset.
func EmptyPlotDefaults() *PlotDefaults {
	return &PlotDefaults{}
}

// LoadPlotDefaults loads presentation defaults from a JSON file. The file
// must have a .json extension and stay under the size cap.
func LoadPlotDefaults(path string) (*PlotDefaults, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyPlotDefaults()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks ranges for every set field.
func (c *PlotDefaults) Validate() error {
	if c.SE != nil && *c.SE <= 0 {
		return fmt.Errorf("se must be positive, got %v", *c.SE)
	}
	if c.NumGrid != nil && *c.NumGrid < 2 {
		return fmt.Errorf("num_grid must be at least 2, got %d", *c.NumGrid)
	}
	if c.PaletteSteps != nil && *c.PaletteSteps < 2 {
		return fmt.Errorf("palette_steps must be at least 2, got %d", *c.PaletteSteps)
	}
	if c.Alpha != nil && len(*c.Alpha) != 2 {
		return fmt.Errorf("alpha must be 2 hex digits, got %q", *c.Alpha)
	}
	if c.WidthInches != nil && *c.WidthInches <= 0 {
		return fmt.Errorf("width_inches must be positive, got %v", *c.WidthInches)
	}
	if c.HeightInches != nil && *c.HeightInches <= 0 {
		return fmt.Errorf("height_inches must be positive, got %v", *c.HeightInches)
	}
	return nil
}

// GetResponse returns the response column name or the built-in default.
func (c *PlotDefaults) GetResponse() string {
	if c.Response != nil {
		return *c.Response
	}
	return DefaultResponse
}

// GetSE returns the significance-band width in standard errors.
func (c *PlotDefaults) GetSE() float64 {
	if c.SE != nil {
		return *c.SE
	}
	return DefaultSE
}

// GetArea reports whether the foreground shows the cell-level mask.
func (c *PlotDefaults) GetArea() bool {
	if c.Area != nil {
		return *c.Area
	}
	return false
}

// GetNumGrid returns the per-axis grid resolution.
func (c *PlotDefaults) GetNumGrid() int {
	if c.NumGrid != nil {
		return *c.NumGrid
	}
	return DefaultNumGrid
}

// GetPaletteSteps returns the number of colors in the ramp.
func (c *PlotDefaults) GetPaletteSteps() int {
	if c.PaletteSteps != nil {
		return *c.PaletteSteps
	}
	return DefaultPaletteSteps
}

// GetAlpha returns the background alpha suffix.
func (c *PlotDefaults) GetAlpha() string {
	if c.Alpha != nil {
		return *c.Alpha
	}
	return DefaultAlpha
}

// GetRugX reports whether the response-axis rug is drawn.
func (c *PlotDefaults) GetRugX() bool {
	if c.RugX != nil {
		return *c.RugX
	}
	return true
}

// GetRugY reports whether the predictor-axis rug is drawn.
func (c *PlotDefaults) GetRugY() bool {
	if c.RugY != nil {
		return *c.RugY
	}
	return true
}

// GetWidthInches returns the output width.
func (c *PlotDefaults) GetWidthInches() float64 {
	if c.WidthInches != nil {
		return *c.WidthInches
	}
	return DefaultWidthInches
}

// GetHeightInches returns the output height.
func (c *PlotDefaults) GetHeightInches() float64 {
	if c.HeightInches != nil {
		return *c.HeightInches
	}
	return DefaultHeightInches
}
