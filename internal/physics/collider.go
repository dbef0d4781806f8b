// Package physics is a small 2D rigid-body solver for the ring arena.
// It integrates bodies, keeps them inside the terrain boundary, resolves
// body contacts and answers shape-intersection queries.
package physics

import (
	"errors"
	"math"
	"slices"

	"github.com/vovakirdan/vetovoima/internal/core"
)

// ShapeKind identifies the geometry of a collider.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapePolygon
)

// ErrDegenerateHull is returned when points do not span a convex polygon
// with a non-zero area.
var ErrDegenerateHull = errors.New("degenerate convex hull")

// Collider is the local-space geometry of a body.
type Collider struct {
	Kind   ShapeKind
	Radius float64     // Circle radius, or bounding radius of a polygon
	Points []core.Vec2 // Polygon vertices in counter-clockwise order
}

// Circle returns a circular collider.
func Circle(r float64) Collider {
	return Collider{Kind: ShapeCircle, Radius: r}
}

// Cuboid returns a rectangular collider with the given half extents.
func Cuboid(hw, hh float64) Collider {
	return polygon([]core.Vec2{
		core.V(-hw, -hh),
		core.V(hw, -hh),
		core.V(hw, hh),
		core.V(-hw, hh),
	})
}

// ConvexHull returns the convex hull of points as a polygon collider.
func ConvexHull(points []core.Vec2) (Collider, error) {
	hull := convexHull(points)
	if len(hull) < 3 || math.Abs(polygonArea(hull)) < core.Epsilon {
		return Collider{}, ErrDegenerateHull
	}
	return polygon(hull), nil
}

// RegularPolygon returns the vertices of a regular polygon with the given
// number of sides and circumradius, starting on the +X axis.
func RegularPolygon(sides int, radius float64) []core.Vec2 {
	points := make([]core.Vec2, sides)
	for i := range points {
		points[i] = core.FromAngle(float64(i) * 2 * math.Pi / float64(sides)).Scale(radius)
	}
	return points
}

func polygon(points []core.Vec2) Collider {
	var bound float64
	for _, p := range points {
		bound = max(bound, p.Len())
	}
	return Collider{Kind: ShapePolygon, Radius: bound, Points: points}
}

// Area returns the area of the collider.
func (c Collider) Area() float64 {
	if c.Kind == ShapeCircle {
		return math.Pi * c.Radius * c.Radius
	}
	return math.Abs(polygonArea(c.Points))
}

// WorldPoints returns the polygon vertices transformed to world space.
// Circles return nil.
func (c Collider) WorldPoints(pos core.Vec2, angle float64) []core.Vec2 {
	if c.Kind == ShapeCircle {
		return nil
	}
	out := make([]core.Vec2, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Rotate(angle).Add(pos)
	}
	return out
}

// Extent returns how far the collider reaches from its center along the
// unit direction dir, given the body angle.
func (c Collider) Extent(dir core.Vec2, angle float64) float64 {
	if c.Kind == ShapeCircle {
		return c.Radius
	}
	var ext float64
	for _, p := range c.Points {
		ext = max(ext, p.Rotate(angle).Dot(dir))
	}
	return ext
}

// polygonArea returns the signed area (positive for counter-clockwise).
func polygonArea(points []core.Vec2) float64 {
	var sum float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += p.Cross(q)
	}
	return sum / 2
}

// convexHull computes the hull with Andrew's monotone chain.
// The result is counter-clockwise without collinear points.
func convexHull(points []core.Vec2) []core.Vec2 {
	if len(points) < 3 {
		return nil
	}
	pts := slices.Clone(points)
	slices.SortFunc(pts, func(a, b core.Vec2) int {
		if a.X != b.X {
			return cmpFloat(a.X, b.X)
		}
		return cmpFloat(a.Y, b.Y)
	})

	cross := func(o, a, b core.Vec2) float64 {
		return a.Sub(o).Cross(b.Sub(o))
	}

	hull := make([]core.Vec2, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= core.Epsilon {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= core.Epsilon {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
