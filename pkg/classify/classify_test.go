package classify

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/geometry"
	"github.com/Amjad50/Fyp/pkg/symbols"
)

func glyph(w, h int, bars ...[4]int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for _, b := range bars {
		for y := b[1]; y < b[3]; y++ {
			for x := b[0]; x < b[2]; x++ {
				img.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return img
}

func TestShape(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		img   image.Image
		label string
		code  errors.Code
	}{
		{"minus", glyph(40, 4, [4]int{0, 0, 40, 4}), symbols.Minus, ""},
		{"equals", glyph(40, 14, [4]int{0, 0, 40, 3}, [4]int{1, 10, 40, 13}), symbols.Equals, ""},
		{"stem", glyph(4, 40, [4]int{0, 0, 4, 40}), "", errors.ErrCodeUnknownLabel},
		{"uneven bars", glyph(40, 14, [4]int{0, 0, 40, 3}, [4]int{0, 10, 20, 13}), "", errors.ErrCodeUnknownLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, err := Shape{}.Classify(ctx, tt.img)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Errorf("Classify() error = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil || label != tt.label {
				t.Errorf("Classify() = %q, %v, want %q", label, err, tt.label)
			}
		})
	}
}

func fixed(name, label string, err error) Func {
	return Func{ID: name, Fn: func(context.Context, image.Image) (string, error) { return label, err }}
}

func TestChain(t *testing.T) {
	ctx := context.Background()
	img := glyph(4, 4)

	c := Chain{
		fixed("off", "", errors.New(errors.ErrCodeUnavailable, "off")),
		fixed("unsure", "", errors.New(errors.ErrCodeUnknownLabel, "unsure")),
		fixed("x", "x", nil),
		fixed("never", "y", nil),
	}
	if got, err := c.Classify(ctx, img); err != nil || got != "x" {
		t.Errorf("Classify() = %q, %v, want x", got, err)
	}
	if got := c.Name(); got != "chain(off,unsure,x,never)" {
		t.Errorf("Name() = %q", got)
	}

	broken := Chain{fixed("bad", "", errors.New(errors.ErrCodeInternal, "boom")), fixed("x", "x", nil)}
	if _, err := broken.Classify(ctx, img); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Classify() error = %v, want INTERNAL_ERROR", err)
	}

	if _, err := (Chain{}).Classify(ctx, img); !errors.Is(err, errors.ErrCodeUnknownLabel) {
		t.Errorf("empty chain error = %v, want UNKNOWN_LABEL", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := c.Classify(cancelled, img); err != context.Canceled {
		t.Errorf("cancelled Classify() error = %v", err)
	}
}

func TestNormalizeOCR(t *testing.T) {
	tests := []struct{ in, want string }{
		{"x\n", "x"},
		{"—", "-"},
		{"∑", `\sum`},
		{"π", `\pi`},
		{"", ""},
		{"ab", ""},
		{"  7 ", "7"},
	}
	for _, tt := range tests {
		if got := NormalizeOCR(tt.in); got != tt.want {
			t.Errorf("NormalizeOCR(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveFractionBars(t *testing.T) {
	crop := func(label string, l, t, r, b int) symbols.LabeledCrop {
		return symbols.LabeledCrop{Label: label, Box: geometry.NewBox(l, t, r, b)}
	}
	crops := []symbols.LabeledCrop{
		crop("-", 0, 50, 100, 53),
		crop("2", 36, 0, 64, 46),
		crop("1", 38, 60, 61, 106),
		crop("-", 120, 50, 150, 53),
		crop("x", 160, 30, 190, 60),
	}
	if n := ResolveFractionBars(crops); n != 1 {
		t.Errorf("ResolveFractionBars() = %d, want 1", n)
	}
	if crops[0].Label != symbols.Frac {
		t.Errorf("bar with operands labeled %q", crops[0].Label)
	}
	if crops[3].Label != symbols.Minus {
		t.Errorf("lone minus relabeled to %q", crops[3].Label)
	}
}

func TestTesseractUnavailableFallsThrough(t *testing.T) {
	tess, err := NewTesseract(TesseractOptions{Language: "no-such-language"})
	if err == nil {
		defer tess.Close()
		t.Skip("tesseract accepted an unknown language")
	}
	if !errors.Is(err, errors.ErrCodeUnavailable) {
		t.Errorf("NewTesseract() error = %v, want UNAVAILABLE", err)
	}
}
