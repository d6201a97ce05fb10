package geometry

import (
	"math"
	"testing"
)

func TestBoxMetrics(t *testing.T) {
	b := NewBox(10, 20, 40, 60)

	if b.Width() != 30 || b.Height() != 40 {
		t.Errorf("size = %dx%d, want 30x40", b.Width(), b.Height())
	}
	if c := b.Center(); c.X != 25 || c.Y != 40 {
		t.Errorf("Center() = %v, want {25 40}", c)
	}
	if !b.Valid() {
		t.Error("Valid() = false, want true")
	}
	if NewBox(5, 5, 5, 10).Valid() {
		t.Error("zero-width box reported valid")
	}
}

func TestBoxUnion(t *testing.T) {
	got := NewBox(0, 10, 5, 12).Union(NewBox(1, 0, 6, 3))
	want := NewBox(0, 0, 6, 12)
	if got != want {
		t.Errorf("Union() = %v, want %v", got, want)
	}
}

func TestAngle(t *testing.T) {
	tests := []struct {
		name string
		q    Point
		want float64
	}{
		{"right", Point{10, 0}, 0},
		{"above", Point{0, -10}, 90},
		{"below", Point{0, 10}, -90},
		{"above right", Point{10, -10}, 45},
		{"below right", Point{10, 10}, -45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Angle(Point{}, tt.q); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Angle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(Point{0, 0}, Point{3, 4}); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}

func TestSegmentIntersection(t *testing.T) {
	p, ok := SegmentIntersection(Point{0, 0}, Point{10, 10}, Point{0, 10}, Point{10, 0})
	if !ok {
		t.Fatal("crossing diagonals reported no intersection")
	}
	if p.X != 5 || p.Y != 5 {
		t.Errorf("intersection = %v, want {5 5}", p)
	}

	if _, ok := SegmentIntersection(Point{0, 0}, Point{10, 0}, Point{0, 5}, Point{10, 5}); ok {
		t.Error("parallel segments reported an intersection")
	}
	if _, ok := SegmentIntersection(Point{0, 0}, Point{4, 4}, Point{0, 10}, Point{10, 0}); ok {
		t.Error("segments that stop short reported an intersection")
	}
	if _, ok := SegmentIntersection(Point{0, 0}, Point{5, 5}, Point{0, 10}, Point{10, 0}); !ok {
		t.Error("touching endpoint not reported")
	}
}

func TestIsAnotherInBetween(t *testing.T) {
	a := NewBox(0, 0, 10, 10)
	b := NewBox(40, 0, 50, 10)
	between := NewBox(20, 0, 30, 10)
	above := NewBox(20, -30, 30, -20)

	if !IsAnotherInBetween(a, b, []Box{a, b, between}) {
		t.Error("box between the pair not detected")
	}
	if IsAnotherInBetween(a, b, []Box{a, b, above}) {
		t.Error("box off the center line reported as occluding")
	}
	if IsAnotherInBetween(a, b, nil) {
		t.Error("empty set reported as occluding")
	}
}

func TestOccludesContained(t *testing.T) {
	a := NewBox(0, 0, 4, 4)
	b := NewBox(6, 0, 10, 4)
	big := NewBox(-100, -100, 100, 100)
	if !Occludes(a, b, big) {
		t.Error("box enclosing the whole segment not reported")
	}
}
