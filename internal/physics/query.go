package physics

import (
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/vetovoima/internal/core"
)

// Filter selects the bodies a query may report.
type Filter func(*Body) bool

// OnlyID returns a filter matching a single body.
func OnlyID(id BodyID) Filter {
	return func(b *Body) bool { return b.ID == id }
}

// Intersects reports the first body accepted by filter whose shape overlaps
// collider c placed at pos with the given angle. Bodies are tested in
// insertion order and the search stops at the first hit.
func (w *World) Intersects(c Collider, pos core.Vec2, angle float64, filter Filter) (BodyID, bool) {
	query := shapeOf(c, pos, angle)
	for _, b := range w.bodies {
		if filter != nil && !filter(b) {
			continue
		}
		// Cheap rejection before the exact test
		if pos.Distance(b.Pos) > c.Radius+b.Collider.Radius {
			continue
		}
		if query.Intersection(0, 0, shapeOf(b.Collider, b.Pos, b.Angle)) != nil {
			return b.ID, true
		}
	}
	return 0, false
}

// shapeOf builds a world-space resolv shape for a collider.
func shapeOf(c Collider, pos core.Vec2, angle float64) resolv.Shape {
	if c.Kind == ShapeCircle {
		return resolv.NewCircle(pos.X, pos.Y, c.Radius)
	}
	points := c.WorldPoints(pos, angle)
	coords := make([]float64, 0, 2*len(points))
	for _, p := range points {
		coords = append(coords, p.X, p.Y)
	}
	return resolv.NewConvexPolygon(coords...)
}
