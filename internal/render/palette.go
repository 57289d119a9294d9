package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// rdYlBuAnchors are the 11 anchor colors of the diverging red-yellow-blue
// ramp, red end first.
var rdYlBuAnchors = []string{
	"#A50026", "#D73027", "#F46D43", "#FDAE61", "#FEE090", "#FFFFBF",
	"#E0F3F8", "#ABD9E9", "#74ADD1", "#4575B4", "#313695",
}

// Palette is an ordered list of colors, usable both as the foreground color
// scale and, alpha-dimmed, as the background scale. It satisfies
// gonum/plot's palette.Palette.
type Palette []color.Color

// Colors returns the palette colors in order.
func (p Palette) Colors() []color.Color { return p }

// DivergingRYB builds an n-step red-yellow-blue diverging ramp by linear
// interpolation between the standard 11 anchor colors.
func DivergingRYB(n int) Palette {
	anchors := make([]color.NRGBA, len(rdYlBuAnchors))
	for i, hex := range rdYlBuAnchors {
		c, err := ParseHex(hex)
		if err != nil {
			panic("render: bad anchor color " + hex)
		}
		anchors[i] = c
	}
	if n < 2 {
		n = 2
	}
	out := make(Palette, n)
	for i := range out {
		t := float64(i) / float64(n-1) * float64(len(anchors)-1)
		lo := int(t)
		if lo >= len(anchors)-1 {
			lo = len(anchors) - 2
		}
		f := t - float64(lo)
		a, b := anchors[lo], anchors[lo+1]
		out[i] = color.NRGBA{
			R: lerp8(a.R, b.R, f),
			G: lerp8(a.G, b.G, f),
			B: lerp8(a.B, b.B, f),
			A: 255,
		}
	}
	return out
}

func lerp8(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f + 0.5)
}

// WithAlpha returns a copy of the palette with the given 2-hex-digit alpha
// suffix applied to every color, e.g. "66" for the dimmed background layer.
func (p Palette) WithAlpha(suffix string) (Palette, error) {
	if len(suffix) != 2 {
		return nil, fmt.Errorf("render: alpha suffix must be 2 hex digits, got %q", suffix)
	}
	a, err := strconv.ParseUint(suffix, 16, 8)
	if err != nil {
		return nil, fmt.Errorf("render: bad alpha suffix %q: %w", suffix, err)
	}
	out := make(Palette, len(p))
	for i, c := range p {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		n.A = uint8(a)
		out[i] = n
	}
	return out, nil
}

// ParseHex parses "#RRGGBB" or "#RRGGBBAA" (case-insensitive, leading '#'
// optional) into a non-premultiplied color.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("render: bad hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("render: bad hex color %q: %w", s, err)
	}
	c := color.NRGBA{A: 255}
	if len(h) == 8 {
		c.A = uint8(v & 0xff)
		v >>= 8
	}
	c.B = uint8(v & 0xff)
	c.G = uint8(v >> 8 & 0xff)
	c.R = uint8(v >> 16 & 0xff)
	return c, nil
}

// HexString formats a color as "#RRGGBB", dropping any alpha. Used when
// handing palette colors to the echarts visual map.
func HexString(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
}

// ParsePalette parses a comma-separated list of hex or named colors into a
// Palette. Only hex forms are accepted; the fitting software exports hex.
func ParsePalette(s string) (Palette, error) {
	parts := strings.Split(s, ",")
	out := make(Palette, 0, len(parts))
	for _, part := range parts {
		c, err := ParseHex(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
