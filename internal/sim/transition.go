package sim

import "github.com/kalepail/asteroids-core/internal/fixedpoint"

// TransitionState is the compact projection of state the transition
// validator compares before/after one Step — not the whole world, just the
// fields a single frame's legality depends on.
type TransitionState struct {
	FrameCount   uint32
	Score        uint32
	Wave         int32
	Asteroids    int
	Bullets      int
	Saucers      int
	ShipX, ShipY int32
	ShipVX, ShipVY int32
	ShipAngle    uint8
	ShipCanControl bool
	ShipFireCooldown int32
	ShipFireLatch  bool
	ShipRespawnTimer int32
}

// transitionState captures the current projection, used both before and
// after a Step call by ReplayStrict and LiveGame.CanStepStrict.
func (g *Game) transitionState() TransitionState {
	return TransitionState{
		FrameCount:       g.frameCount,
		Score:            g.score,
		Wave:             g.wave,
		Asteroids:        g.aliveAsteroidCount(),
		Bullets:          len(g.bullets),
		Saucers:          len(g.saucers),
		ShipX:            g.ship.x,
		ShipY:            g.ship.y,
		ShipVX:           g.ship.vx,
		ShipVY:           g.ship.vy,
		ShipAngle:        g.ship.angle,
		ShipCanControl:   g.ship.canControl,
		ShipFireCooldown: g.ship.fireCooldown,
		ShipFireLatch:    g.ship.fireLatch,
		ShipRespawnTimer: g.ship.respawnTimer,
	}
}

// validateTransition checks that next could honestly have followed from
// prev given input, against every rule the tick engine promises to uphold.
// It returns the first rule violated, or nil if the transition is legal.
func validateTransition(prev, next TransitionState, input FrameInput) error {
	if next.Score < prev.Score {
		return ruleErr(ProgressionScoreDelta)
	}
	if !IsLegalScoreDelta(next.Score - prev.Score) {
		return ruleErr(ProgressionScoreDelta)
	}

	if next.Wave < prev.Wave || next.Wave > prev.Wave+1 {
		return ruleErr(ProgressionWaveAdvance)
	}
	waveAdvanced := next.Wave == prev.Wave+1
	if waveAdvanced {
		if next.Asteroids != waveAsteroidCount(next.Wave) || next.Saucers != 0 {
			return ruleErr(ProgressionWaveAdvance)
		}
	}

	shipSpeedSq := int64(next.ShipVX)*int64(next.ShipVX) + int64(next.ShipVY)*int64(next.ShipVY)
	if shipSpeedSq > int64(ShipMaxSpeedSqQ8_8) {
		return ruleErr(ShipSpeedClamp)
	}

	turnDelta := (int32(next.ShipAngle) - int32(prev.ShipAngle)) & 0xff
	if !waveAdvanced {
		if prev.ShipCanControl {
			if turnDelta != expectedShipTurnDelta(input) {
				return ruleErr(ShipTurnRateStep)
			}
		} else if !next.ShipCanControl && turnDelta != 0 {
			return ruleErr(ShipTurnRateStep)
		}
	}

	shipDied := prev.ShipCanControl && !next.ShipCanControl && next.ShipRespawnTimer >= ShipRespawnFrames
	if !waveAdvanced {
		respawnedThisFrame := !prev.ShipCanControl && next.ShipCanControl

		if prev.ShipCanControl {
			if shipDied {
				dx := fixedpoint.ShortestDelta(prev.ShipX, next.ShipX, WorldWidthQ)
				dy := fixedpoint.ShortestDelta(prev.ShipY, next.ShipY, WorldHeightQ)
				stepSq := int64(dx)*int64(dx) + int64(dy)*int64(dy)
				if stepSq > maxShipStepSqQ12_4() {
					return ruleErr(ShipPositionStep)
				}
			} else {
				expectedX := fixedpoint.Wrap(prev.ShipX+(next.ShipVX>>4), WorldWidthQ)
				expectedY := fixedpoint.Wrap(prev.ShipY+(next.ShipVY>>4), WorldHeightQ)
				if next.ShipX != expectedX || next.ShipY != expectedY {
					return ruleErr(ShipPositionStep)
				}
			}
		} else if !respawnedThisFrame {
			if prev.ShipX != next.ShipX || prev.ShipY != next.ShipY {
				return ruleErr(ShipPositionStep)
			}
		}
	}

	expectedCooldown := expectedShipFireCooldown(prev, next, input, waveAdvanced, shipDied)
	if next.ShipFireCooldown != expectedCooldown {
		return ruleErr(PlayerBulletCooldownBypass)
	}
	expectedLatch := expectedShipFireLatch(input, waveAdvanced, shipDied)
	if next.ShipFireLatch != expectedLatch {
		return ruleErr(PlayerBulletCooldownBypass)
	}

	return nil
}

func expectedShipTurnDelta(input FrameInput) int32 {
	switch {
	case input.Left == input.Right:
		return 0
	case input.Left:
		return (256 - ShipTurnSpeedBAM) & 0xff
	default:
		return ShipTurnSpeedBAM
	}
}

func expectedShipFireCooldown(prev, next TransitionState, input FrameInput, waveAdvanced, shipDied bool) int32 {
	if waveAdvanced || shipDied {
		return 0
	}

	decremented := prev.ShipFireCooldown
	if decremented > 0 {
		decremented--
	}
	firePressedThisFrame := input.Fire && !prev.ShipFireLatch

	switch {
	case !prev.ShipCanControl:
		if next.ShipCanControl {
			return 0
		}
		return decremented
	case firePressedThisFrame && decremented <= 0 && prev.Bullets < ShipBulletLimit:
		return ShipBulletCooldownFrames
	default:
		return decremented
	}
}

func expectedShipFireLatch(input FrameInput, waveAdvanced, shipDied bool) bool {
	if waveAdvanced || shipDied {
		return false
	}
	return input.Fire
}
