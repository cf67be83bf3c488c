package sim

import (
	"fmt"
)

// RuleCode names a specific invariant or transition failure mode. It is a
// closed, additive-only enumeration: adding a new code is backward
// compatible, renaming or removing one is a breaking change to anything
// that gates on these stable names (a downstream proof verifier, say).
type RuleCode int

const (
	// GlobalWaveNonZero: wave must stay >= 1 while Playing.
	GlobalWaveNonZero RuleCode = iota
	// GlobalModeLivesConsistency: lives>0 iff mode==Playing.
	GlobalModeLivesConsistency
	// GlobalNextExtraLifeScore: the extra-life threshold must remain a
	// multiple of ExtraLifeScoreStep and strictly exceed score.
	GlobalNextExtraLifeScore
	// ShipBounds: ship position must lie within the toroidal world.
	ShipBounds
	// ShipAngleRange: ship angle is always in-range by construction (BAM
	// is a uint8), kept as a named code for completeness/documentation.
	ShipAngleRange
	// ShipCooldownRange: fire cooldown must be non-negative.
	ShipCooldownRange
	// ShipRespawnTimerRange: respawn timer must be non-negative.
	ShipRespawnTimerRange
	// ShipInvulnerabilityRange: invulnerability timer must be non-negative.
	ShipInvulnerabilityRange
	// ShipSpeedClamp: ship speed squared must not exceed the clamp.
	ShipSpeedClamp
	// ShipTurnRateStep: the frame's angle delta must match what the input
	// byte and prior controllability could produce.
	ShipTurnRateStep
	// ShipPositionStep: the frame's position delta must match velocity
	// integration (or the bounded death-frame exception).
	ShipPositionStep
	// PlayerBulletLimit: live ship bullets must not exceed the cap.
	PlayerBulletLimit
	// PlayerBulletState: every live ship bullet must have positive life
	// and an in-bounds position.
	PlayerBulletState
	// PlayerBulletCooldownBypass: fire cooldown or fire latch took a
	// value the input sequence could not have produced honestly.
	PlayerBulletCooldownBypass
	// SaucerBulletState: every live saucer bullet must have positive life
	// and an in-bounds position.
	SaucerBulletState
	// AsteroidState: every live asteroid must have an in-bounds position.
	AsteroidState
	// SaucerCap: live saucers must not exceed the per-wave maximum.
	SaucerCap
	// SaucerState: every live saucer must have non-negative timers and an
	// x position within the cull bounds.
	SaucerState
	// ProgressionScoreDelta: the frame's score delta must be non-negative
	// and a member of the legal-delta table.
	ProgressionScoreDelta
	// ProgressionWaveAdvance: a wave transition must be by exactly one,
	// land on the correct asteroid count, and leave no saucers alive.
	ProgressionWaveAdvance
)

// String renders the stable textual name of a RuleCode, used in
// ReplayViolation's Error() and in logging.
func (r RuleCode) String() string {
	switch r {
	case GlobalWaveNonZero:
		return "GlobalWaveNonZero"
	case GlobalModeLivesConsistency:
		return "GlobalModeLivesConsistency"
	case GlobalNextExtraLifeScore:
		return "GlobalNextExtraLifeScore"
	case ShipBounds:
		return "ShipBounds"
	case ShipAngleRange:
		return "ShipAngleRange"
	case ShipCooldownRange:
		return "ShipCooldownRange"
	case ShipRespawnTimerRange:
		return "ShipRespawnTimerRange"
	case ShipInvulnerabilityRange:
		return "ShipInvulnerabilityRange"
	case ShipSpeedClamp:
		return "ShipSpeedClamp"
	case ShipTurnRateStep:
		return "ShipTurnRateStep"
	case ShipPositionStep:
		return "ShipPositionStep"
	case PlayerBulletLimit:
		return "PlayerBulletLimit"
	case PlayerBulletState:
		return "PlayerBulletState"
	case PlayerBulletCooldownBypass:
		return "PlayerBulletCooldownBypass"
	case SaucerBulletState:
		return "SaucerBulletState"
	case AsteroidState:
		return "AsteroidState"
	case SaucerCap:
		return "SaucerCap"
	case SaucerState:
		return "SaucerState"
	case ProgressionScoreDelta:
		return "ProgressionScoreDelta"
	case ProgressionWaveAdvance:
		return "ProgressionWaveAdvance"
	default:
		return "RuleCode(unknown)"
	}
}

// ReplayViolation is returned by the strict entry points when a transition
// or invariant check fails. The engine has already applied the offending
// step to its internal state; the caller is expected to discard the whole
// replay attempt rather than resume from here.
type ReplayViolation struct {
	FrameCount uint32
	Rule       RuleCode
}

func (v ReplayViolation) Error() string {
	return fmt.Sprintf("replay violation at frame %d: %s", v.FrameCount, v.Rule)
}
