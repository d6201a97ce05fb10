package relation

import (
	"encoding/json"
	"testing"

	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/geometry"
	"github.com/Amjad50/Fyp/pkg/symbols"
)

func TestInverse(t *testing.T) {
	for _, r := range Forward {
		inv := r.Inverse()
		if !inv.IsInverse() {
			t.Errorf("%v.Inverse() = %v, not an inverse", r, inv)
		}
		if inv.Inverse() != r {
			t.Errorf("%v.Inverse().Inverse() = %v", r, inv.Inverse())
		}
		if inv.String() != r.String()+"_inverse" {
			t.Errorf("inverse name = %q, want %q", inv.String(), r.String()+"_inverse")
		}
	}
}

func TestParse(t *testing.T) {
	for _, r := range All {
		got, err := Parse(r.String())
		if err != nil || got != r {
			t.Errorf("Parse(%q) = %v, %v", r.String(), got, err)
		}
	}
	if _, err := Parse("diagonal"); err == nil {
		t.Error("Parse(diagonal) succeeded")
	}
}

func TestRelationJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Relation{"r": SubInverse})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"r":"sub_inverse"}` {
		t.Errorf("Marshal = %s", data)
	}
	var back map[string]Relation
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back["r"] != SubInverse {
		t.Errorf("Unmarshal = %v, want sub_inverse", back["r"])
	}
}

func TestPenalty(t *testing.T) {
	if None.Penalty() != 1e6 {
		t.Errorf("None.Penalty() = %v", None.Penalty())
	}
	for _, r := range []Relation{Left, Power, Sub, Up, Down} {
		if r.Penalty() != 0 {
			t.Errorf("%v.Penalty() = %v, want 0", r, r.Penalty())
		}
	}
}

func crop(label string, l, t, r, b int) symbols.LabeledCrop {
	return symbols.LabeledCrop{Label: label, Box: geometry.NewBox(l, t, r, b)}
}

func TestClassify(t *testing.T) {
	c := NewClassifier(symbols.Default())

	tests := []struct {
		name string
		a, b symbols.LabeledCrop
		want Relation
	}{
		{"same line", crop("x", 0, 0, 34, 32), crop("x", 50, 0, 84, 32), Left},
		{"power", crop("x", 0, 20, 34, 52), crop("2", 36, 0, 50, 23), Power},
		{"sub", crop("x", 0, 0, 34, 32), crop("2", 36, 20, 50, 43), Sub},
		{"fraction numerator", crop(symbols.Frac, 0, 50, 100, 53), crop("x", 30, 0, 64, 32), Up},
		{"fraction denominator", crop(symbols.Frac, 0, 50, 100, 53), crop("x", 30, 70, 64, 102), Down},
		{"size mismatch", crop("x", 0, 16, 17, 32), crop("x", 30, 0, 64, 32), None},
		{"far above", crop("x", 0, 200, 34, 232), crop("x", 10, 0, 44, 32), None},
		{"minus has no power", crop("-", 0, 40, 42, 43), crop(".", 45, 37, 52, 44), None},
		{"minus row", crop("-", 0, 40, 42, 43), crop(".", 45, 52, 52, 59), Left},
		{"same size high", crop("x", 0, 30, 34, 62), crop("x", 40, 0, 74, 32), Power},
		{"small power below 25 degrees", crop("x", 0, 20, 34, 52), crop("2", 40, 18, 54, 41), Power},
		{"same size below 25 degrees", crop("x", 0, 20, 34, 52), crop("x", 60, 0, 94, 32), None},
		{"sum upper limit outside its box", crop(symbols.Sum, 0, 30, 91, 127), crop("n", 60, 0, 97, 32), Up},
		{"sum lower limit outside its box", crop(symbols.Sum, 0, 30, 91, 127), crop("n", 60, 130, 97, 162), Down},
		{"descender y", crop("x", 0, 0, 34, 32), crop("y", 50, 0, 82, 45), Left},
		{"descender parenthesis", crop("x", 0, 22, 34, 54), crop("(", 50, 0, 66, 69), Left},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := c.Classify(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Classify() error: %v", err)
			}
			if !ok {
				t.Fatal("Classify() reported no relation")
			}
			if got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyRightToLeft(t *testing.T) {
	c := NewClassifier(symbols.Default())
	_, ok, err := c.Classify(crop("x", 50, 0, 84, 32), crop("x", 0, 0, 34, 32))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("Classify() considered a pair whose first box starts to the right")
	}
}

func TestClassifyUnknownLabel(t *testing.T) {
	c := NewClassifier(symbols.Default())
	_, _, err := c.Classify(crop("x", 0, 0, 34, 32), crop("@", 50, 0, 84, 32))
	if !errors.Is(err, errors.ErrCodeUnknownLabel) {
		t.Errorf("Classify() error = %v, want UNKNOWN_LABEL", err)
	}
}

func TestCanBePowerOrSub(t *testing.T) {
	a := geometry.NewBox(0, 100, 10, 110)
	tests := []struct {
		top  int
		want bool
	}{
		{85, false},
		{90, true},
		{95, true},
		{105, true},
		{120, true},
		{125, false},
	}
	for _, tt := range tests {
		b := geometry.NewBox(20, tt.top, 25, tt.top+5)
		if got := CanBePowerOrSub(a, b); got != tt.want {
			t.Errorf("CanBePowerOrSub(top=%d) = %v, want %v", tt.top, got, tt.want)
		}
	}
}
