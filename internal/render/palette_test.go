package render

import (
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"rgb with hash", "#A50026", color.NRGBA{R: 0xA5, G: 0x00, B: 0x26, A: 0xFF}, false},
		{"rgb without hash", "313695", color.NRGBA{R: 0x31, G: 0x36, B: 0x95, A: 0xFF}, false},
		{"rgba", "#FFFFBF66", color.NRGBA{R: 0xFF, G: 0xFF, B: 0xBF, A: 0x66}, false},
		{"lowercase", "#d73027", color.NRGBA{R: 0xD7, G: 0x30, B: 0x27, A: 0xFF}, false},
		{"too short", "#FFF", color.NRGBA{}, true},
		{"not hex", "#GGGGGG", color.NRGBA{}, true},
		{"empty", "", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDivergingRYB(t *testing.T) {
	p := DivergingRYB(500)
	if len(p) != 500 {
		t.Fatalf("palette has %d colors, want 500", len(p))
	}
	first := p[0].(color.NRGBA)
	last := p[len(p)-1].(color.NRGBA)
	if first != (color.NRGBA{R: 0xA5, G: 0x00, B: 0x26, A: 0xFF}) {
		t.Errorf("first color = %+v, want red anchor", first)
	}
	if last != (color.NRGBA{R: 0x31, G: 0x36, B: 0x95, A: 0xFF}) {
		t.Errorf("last color = %+v, want blue anchor", last)
	}
	if len(p.Colors()) != 500 {
		t.Error("Colors() should return the full ramp")
	}
}

func TestWithAlpha(t *testing.T) {
	p := Palette{color.NRGBA{R: 10, G: 20, B: 30, A: 255}}
	dimmed, err := p.WithAlpha("66")
	if err != nil {
		t.Fatal(err)
	}
	got := dimmed[0].(color.NRGBA)
	if got.A != 0x66 {
		t.Errorf("alpha = %#x, want 0x66", got.A)
	}
	if got.R != 10 || got.G != 20 || got.B != 30 {
		t.Errorf("rgb changed: %+v", got)
	}
	// Original is untouched.
	if p[0].(color.NRGBA).A != 255 {
		t.Error("WithAlpha must not mutate the source palette")
	}

	if _, err := p.WithAlpha("6"); err == nil {
		t.Error("expected error for 1-digit suffix")
	}
	if _, err := p.WithAlpha("zz"); err == nil {
		t.Error("expected error for non-hex suffix")
	}
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette("#A50026, #FFFFBF, #313695")
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 3 {
		t.Fatalf("got %d colors, want 3", len(p))
	}
	if _, err := ParsePalette("#A50026, blue"); err == nil {
		t.Error("expected error for named color")
	}
}

func TestHexString(t *testing.T) {
	got := HexString(color.NRGBA{R: 0xA5, G: 0x00, B: 0x26, A: 0x66})
	if got != "#A50026" {
		t.Errorf("HexString = %q, want #A50026", got)
	}
}
