package sim

// ValidateInvariants is the stateless half of the anti-cheat kernel: it
// checks that the current snapshot satisfies every structural invariant,
// independent of how the world got here. ReplayStrict runs it after every
// Step; LiveGame.Validate exposes it directly to callers.
func (g *Game) ValidateInvariants() error {
	if g.mode == Playing && g.wave < 1 {
		return ruleErr(GlobalWaveNonZero)
	}
	if (g.lives > 0) != (g.mode == Playing) {
		return ruleErr(GlobalModeLivesConsistency)
	}
	if g.nextExtraLifeScore%ExtraLifeScoreStep != 0 || g.nextExtraLifeScore <= g.score {
		return ruleErr(GlobalNextExtraLifeScore)
	}

	s := g.ship
	if s.x < 0 || s.x >= WorldWidthQ || s.y < 0 || s.y >= WorldHeightQ {
		return ruleErr(ShipBounds)
	}
	if s.fireCooldown < 0 {
		return ruleErr(ShipCooldownRange)
	}
	if s.respawnTimer < 0 {
		return ruleErr(ShipRespawnTimerRange)
	}
	if s.invulnerableTimer < 0 {
		return ruleErr(ShipInvulnerabilityRange)
	}
	if speedSq := int64(s.vx)*int64(s.vx) + int64(s.vy)*int64(s.vy); speedSq > int64(ShipMaxSpeedSqQ8_8) {
		return ruleErr(ShipSpeedClamp)
	}

	aliveBullets := 0
	for _, b := range g.bullets {
		if !b.alive {
			continue
		}
		aliveBullets++
		if b.life <= 0 || b.x < 0 || b.x >= WorldWidthQ || b.y < 0 || b.y >= WorldHeightQ {
			return ruleErr(PlayerBulletState)
		}
	}
	if aliveBullets > ShipBulletLimit {
		return ruleErr(PlayerBulletLimit)
	}

	for _, b := range g.saucerBullets {
		if !b.alive {
			continue
		}
		if b.life <= 0 || b.x < 0 || b.x >= WorldWidthQ || b.y < 0 || b.y >= WorldHeightQ {
			return ruleErr(SaucerBulletState)
		}
	}

	aliveAsteroids := 0
	for _, a := range g.asteroids {
		if !a.alive {
			continue
		}
		aliveAsteroids++
		if a.x < 0 || a.x >= WorldWidthQ || a.y < 0 || a.y >= WorldHeightQ {
			return ruleErr(AsteroidState)
		}
	}
	if aliveAsteroids > AsteroidCap {
		return ruleErr(AsteroidState)
	}

	aliveSaucers := 0
	for _, s := range g.saucers {
		if !s.alive {
			continue
		}
		aliveSaucers++
		if s.fireCooldown < 0 || s.driftTimer < 0 {
			return ruleErr(SaucerState)
		}
		if s.x < SaucerCullMinXQ || s.x > SaucerCullMaxXQ || s.y < 0 || s.y >= WorldHeightQ {
			return ruleErr(SaucerState)
		}
	}
	if aliveSaucers > maxSaucersForWave(g.wave) {
		return ruleErr(SaucerCap)
	}

	return nil
}

// ruleErr wraps a RuleCode as the error ValidateInvariants and
// validateTransition return; ReplayStrict unwraps it back into a RuleCode
// to build a ReplayViolation.
type ruleError RuleCode

func (e ruleError) Error() string { return RuleCode(e).String() }

func ruleErr(r RuleCode) error { return ruleError(r) }

// AsRuleCode extracts the RuleCode carried by an error produced by
// ValidateInvariants or the transition validator, for callers (like
// ReplayStrict) that need the closed enum value rather than an error
// string.
func AsRuleCode(err error) (RuleCode, bool) {
	re, ok := err.(ruleError)
	if !ok {
		return 0, false
	}
	return RuleCode(re), true
}
