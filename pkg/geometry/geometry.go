// Package geometry provides the box and point arithmetic used by the
// spatial-relation parser.
//
// # Coordinates
//
// Boxes use integer pixel coordinates with the origin in the top-left corner
// of the image, so y grows downward. [Angle] flips the y axis so that a point
// above another yields a positive angle, matching how relations such as
// power and up are described.
//
// # Occlusion
//
// Two symbols can only be related when nothing sits between them.
// [IsAnotherInBetween] tests whether any third box crosses the segment that
// joins the centers of the two boxes.
package geometry

import (
	"fmt"
	"math"
)

// Box is an axis-aligned bounding box in pixel coordinates.
// Right and Bottom are exclusive, so a valid box has Right > Left and
// Bottom > Top.
type Box struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Point is a location in pixel space with sub-pixel precision.
type Point struct {
	X, Y float64
}

// NewBox returns the box (left, top, right, bottom).
func NewBox(left, top, right, bottom int) Box {
	return Box{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns the horizontal extent of b.
func (b Box) Width() int { return b.Right - b.Left }

// Height returns the vertical extent of b.
func (b Box) Height() int { return b.Bottom - b.Top }

// Valid reports whether b has a positive area.
func (b Box) Valid() bool { return b.Right > b.Left && b.Bottom > b.Top }

// Center returns the midpoint of b.
func (b Box) Center() Point {
	return Point{
		X: float64(b.Left+b.Right) / 2,
		Y: float64(b.Top+b.Bottom) / 2,
	}
}

// Contains reports whether p lies inside b, edges included.
func (b Box) Contains(p Point) bool {
	return p.X >= float64(b.Left) && p.X <= float64(b.Right) &&
		p.Y >= float64(b.Top) && p.Y <= float64(b.Bottom)
}

// ContainsX reports whether b spans o horizontally.
func (b Box) ContainsX(o Box) bool {
	return b.Left <= o.Left && b.Right >= o.Right
}

// XOverlaps reports whether b and o share any column.
func (b Box) XOverlaps(o Box) bool {
	return b.Left < o.Right && o.Left < b.Right
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Left:   min(b.Left, o.Left),
		Top:    min(b.Top, o.Top),
		Right:  max(b.Right, o.Right),
		Bottom: max(b.Bottom, o.Bottom),
	}
}

// Edges returns the four sides of b as segments, clockwise from the top.
func (b Box) Edges() [4][2]Point {
	l, t, r, d := float64(b.Left), float64(b.Top), float64(b.Right), float64(b.Bottom)
	return [4][2]Point{
		{{l, t}, {r, t}},
		{{r, t}, {r, d}},
		{{r, d}, {l, d}},
		{{l, d}, {l, t}},
	}
}

func (b Box) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", b.Left, b.Top, b.Right, b.Bottom)
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Angle returns the direction from p to q in degrees, in (-180, 180].
// The y axis is flipped, so q above p gives a positive angle.
func Angle(p, q Point) float64 {
	return math.Atan2(p.Y-q.Y, q.X-p.X) * 180 / math.Pi
}

// SegmentIntersection returns the point where segment p1-p2 crosses segment
// p3-p4. Parallel and collinear segments report no intersection.
func SegmentIntersection(p1, p2, p3, p4 Point) (Point, bool) {
	s1x, s1y := p2.X-p1.X, p2.Y-p1.Y
	s2x, s2y := p4.X-p3.X, p4.Y-p3.Y

	denom := -s2x*s1y + s1x*s2y
	if denom == 0 {
		return Point{}, false
	}

	s := (-s1y*(p1.X-p3.X) + s1x*(p1.Y-p3.Y)) / denom
	t := (s2x*(p1.Y-p3.Y) - s2y*(p1.X-p3.X)) / denom

	if s < 0 || s > 1 || t < 0 || t > 1 {
		return Point{}, false
	}
	return Point{X: p1.X + t*s1x, Y: p1.Y + t*s1y}, true
}

// Occludes reports whether c blocks the line of sight between the centers
// of a and b.
func Occludes(a, b, c Box) bool {
	p, q := a.Center(), b.Center()
	if c.Contains(Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}) {
		return true
	}
	for _, e := range c.Edges() {
		if _, ok := SegmentIntersection(p, q, e[0], e[1]); ok {
			return true
		}
	}
	return false
}

// IsAnotherInBetween reports whether any box in others, apart from a and b
// themselves, occludes the pair.
func IsAnotherInBetween(a, b Box, others []Box) bool {
	for _, c := range others {
		if c == a || c == b {
			continue
		}
		if Occludes(a, b, c) {
			return true
		}
	}
	return false
}
