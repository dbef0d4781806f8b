package simulation

import (
	"github.com/vovakirdan/vetovoima/internal/core"
	"github.com/vovakirdan/vetovoima/internal/physics"
)

// ShapeQuery answers shape-intersection queries against the bodies of a
// level. *physics.World implements it.
type ShapeQuery interface {
	Intersects(c physics.Collider, pos core.Vec2, angle float64, filter physics.Filter) (physics.BodyID, bool)
}

// GoalDetector reports whether the player touches the goal marker.
type GoalDetector struct{}

// Check tests the player's shape against the goal only. A missing player is
// never at the goal.
func (GoalDetector) Check(q ShapeQuery, player *physics.Body, goal physics.BodyID) bool {
	if player == nil || goal == physics.Boundary {
		return false
	}
	_, hit := q.Intersects(player.Collider, player.Pos, player.Angle, physics.OnlyID(goal))
	return hit
}
