package annotate

import (
	"image"
	"image/color"
	"testing"

	"github.com/Amjad50/Fyp/pkg/geometry"
	"github.com/Amjad50/Fyp/pkg/relation"
	"github.com/Amjad50/Fyp/pkg/symbols"
	"github.com/Amjad50/Fyp/pkg/tree"
)

func white(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

// near reports whether two colors differ by at most a few levels per
// channel, leaving room for antialiasing.
func near(a, b color.NRGBA) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= 8 && d(a.G, b.G) <= 8 && d(a.B, b.B) <= 8 && d(a.A, b.A) <= 8
}

func TestDraw(t *testing.T) {
	src := white(100, 60)
	crops := []symbols.LabeledCrop{
		{Label: "x", Box: geometry.NewBox(10, 20, 30, 40)},
		{Label: "2", Box: geometry.NewBox(70, 20, 90, 40)},
	}
	out := Draw(src, crops, []Link{{From: 0, To: 1}, {From: 0, To: 7}})

	if got := src.NRGBAAt(10, 20); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("source modified: %v", got)
	}
	palette := Palette(2)
	bg := color.NRGBA{255, 255, 255, 255}
	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"left edge of first box", 10, 25, palette[0]},
		{"top edge of first box", 15, 20, palette[0]},
		{"right edge of second box", 89, 25, palette[1]},
		{"bottom edge of second box", 85, 39, palette[1]},
		{"link midpoint", 50, 30, LinkColor},
		{"link thickness", 50, 29, LinkColor},
		{"inside first box", 12, 25, bg},
		{"background", 50, 5, bg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := out.NRGBAAt(tt.x, tt.y); !near(got, tt.want) {
				t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPalette(t *testing.T) {
	p := Palette(6)
	seen := map[color.NRGBA]bool{}
	for _, c := range p {
		if c.A != 255 {
			t.Errorf("color %v is not opaque", c)
		}
		seen[c] = true
	}
	if len(seen) != 6 {
		t.Errorf("Palette(6) has %d distinct colors", len(seen))
	}
	if len(Palette(0)) != 0 {
		t.Error("Palette(0) is not empty")
	}
}

func TestTreeLinks(t *testing.T) {
	tr := tree.New([]symbols.LabeledCrop{
		{Label: "x", Box: geometry.NewBox(0, 10, 20, 40)},
		{Label: "2", Box: geometry.NewBox(22, 0, 30, 15)},
		{Label: "+", Box: geometry.NewBox(40, 15, 60, 35)},
	})
	if err := tr.AddConnection(0, 1, relation.Power); err != nil {
		t.Fatal(err)
	}
	if err := tr.AddConnection(0, 2, relation.Left); err != nil {
		t.Fatal(err)
	}
	links := TreeLinks(tr)
	if len(links) != 2 {
		t.Fatalf("TreeLinks() = %v, want 2 links", links)
	}
	want := map[Link]bool{{0, 1}: true, {0, 2}: true}
	for _, l := range links {
		if !want[l] {
			t.Errorf("unexpected link %v", l)
		}
	}
}

func TestDrawBoxes(t *testing.T) {
	out := DrawBoxes(white(20, 20), []geometry.Box{geometry.NewBox(2, 2, 10, 10)})
	if got := out.NRGBAAt(2, 6); !near(got, Palette(1)[0]) {
		t.Errorf("left edge = %v, want %v", got, Palette(1)[0])
	}
	if got := out.NRGBAAt(6, 6); !near(got, color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("inside = %v, want white", got)
	}
}
