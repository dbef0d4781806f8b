package simulation

import (
	"time"

	"github.com/vovakirdan/vetovoima/internal/config"
	"github.com/vovakirdan/vetovoima/internal/core"
	"github.com/vovakirdan/vetovoima/internal/physics"
)

// PlayerController turns steering input into velocity changes.
type PlayerController struct {
	cfg config.PlayerConfig
}

// NewPlayerController creates a controller.
func NewPlayerController(cfg config.PlayerConfig) PlayerController {
	return PlayerController{cfg: cfg}
}

// Tick returns the linear velocity delta to add to the body and the angular
// velocity to set on it. A nil body yields zero values.
//
// Left brakes, and eventually reverses, unless the body already moves
// backward. Right accelerates along the facing direction up to the speed
// cap. The angular velocity keeps the facing direction tangential to the
// gravity field, with a dead zone around perfect alignment.
func (pc PlayerController) Tick(dt time.Duration, left, right bool, b *physics.Body) (core.Vec2, float64) {
	if b == nil {
		return core.Vec2{}, 0
	}
	secs := dt.Seconds()
	forward := core.FromAngle(b.Angle)

	fwdSpeed := b.Vel.Dot(forward)
	var backSpeed float64
	if dir, ok := b.Vel.Normalize(); ok {
		backSpeed = max(dir.Dot(forward.Neg()), 0)
	}

	var accel float64
	switch {
	case left && backSpeed == 0:
		accel = pc.cfg.SlowDownAcceleration
	case right && fwdSpeed < pc.cfg.MaxForwardSpeed:
		accel = pc.cfg.ForwardAcceleration
	}

	var rate float64
	if radial, ok := b.Pos.Normalize(); ok {
		dot := forward.Dot(radial)
		if dot > pc.cfg.AlignmentThreshold {
			rate = pc.cfg.MaxAngularVelocity
		} else if dot < -pc.cfg.AlignmentThreshold {
			rate = -pc.cfg.MaxAngularVelocity
		}
	}

	return forward.Scale(accel * secs), rate * secs
}
