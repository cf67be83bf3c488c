package sim

import "github.com/kalepail/asteroids-core/internal/fixedpoint"

// spawnWaveAsteroids places wave 1's initial asteroids; spawnNextWave
// reuses it after incrementing the wave counter.
func (g *Game) spawnWaveAsteroids() {
	count := waveAsteroidCount(g.wave)
	for i := 0; i < count; i++ {
		x, y := g.rollWaveSpawnPoint()
		g.createAsteroid(AsteroidLarge, x, y)
	}
}

func (g *Game) rollWaveSpawnPoint() (int32, int32) {
	var x, y int32
	for attempt := 0; attempt < waveSpawnRetries; attempt++ {
		x = g.rng.NextRange(0, WorldWidthQ)
		y = g.rng.NextRange(0, WorldHeightQ)
		if fixedpoint.CollisionDistSq(x, y, g.ship.x, g.ship.y, WorldWidthQ, WorldHeightQ) >= waveSafeDistSq() {
			break
		}
	}
	return x, y
}

func (g *Game) spawnNextWave() {
	g.wave++
	g.ship.fireCooldown = 0
	g.ship.fireLatch = false
	g.spawnWaveAsteroids()
	g.timeSinceLastKill = 0
}

// createAsteroid spawns one asteroid of the given size at (x, y), with a
// heading and speed drawn from the RNG and scaled by the current wave's
// speed pressure.
func (g *Game) createAsteroid(size AsteroidSize, x, y int32) {
	if len(g.asteroids) >= AsteroidCap {
		return
	}
	angle := uint8(g.rng.NextRange(0, 256))
	spin := g.rng.NextRange(-4, 5)
	minSpeed, maxSpeed := asteroidSpeedRange(size, g.wave)
	speed := g.rng.NextRange(minSpeed, maxSpeed+1)
	vx, vy := fixedpoint.VelocityQ8_8(angle, speed)

	g.asteroids = append(g.asteroids, asteroid{
		x: x, y: y,
		vx: vx, vy: vy,
		angle:  angle,
		spin:   spin,
		size:   size,
		radius: size.radiusQ(),
		alive:  true,
	})
}

// spawnSaucer introduces a new saucer from a random screen edge, choosing
// its size with a wave/lurk-pressure-weighted coin flip.
func (g *Game) spawnSaucer() {
	enterFromLeft := g.rng.Next()%2 == 0
	x := SaucerStartXLeftQ
	dir := int32(1)
	if !enterFromLeft {
		x = SaucerStartXRightQ
		dir = -1
	}
	y := g.rng.NextRange(SaucerStartYMinQ, SaucerStartYMaxQ+1)

	small := g.rollSaucerIsSmall()
	radius := SaucerRadiusLargeQ
	speed := SaucerSpeedLargeQ8_8
	if small {
		radius = SaucerRadiusSmallQ
		speed = SaucerSpeedSmallQ8_8
	}

	lo, hi := saucerFireCooldownRange(small, g.wave, g.timeSinceLastKill)
	g.saucers = append(g.saucers, saucer{
		x: x, y: y,
		vx:           dir * speed,
		vy:           g.rng.NextRange(-SaucerDriftSpeedQ8_8, SaucerDriftSpeedQ8_8+1),
		radius:       radius,
		small:        small,
		fireCooldown: g.rng.NextRange(lo, hi+1),
		driftTimer:   g.rng.NextRange(SaucerDriftTimerMinFrm, SaucerDriftTimerMaxFrm+1),
		alive:        true,
	})

	lo2, hi2 := saucerSpawnRangeForWave(g.wave)
	g.saucerSpawnTimer = g.rng.NextRange(lo2, hi2+1)
}

// rollSaucerIsSmall weights toward small saucers as pressure (wave number
// and lurk time) rises, matching the saucer AI's general tightening of
// difficulty under pressure.
func (g *Game) rollSaucerIsSmall() bool {
	pressure := saucerPressurePct(g.wave, g.timeSinceLastKill)
	smallPct := 30 + (pressure*50)/100 // 30%..80% small as pressure rises
	return g.rng.NextRange(0, 100) < smallPct
}

// spawnSaucerBullet fires one bullet from s: small saucers aim at the ship
// with a pressure-scaled noise term, large saucers fire in a uniformly
// random direction.
func (g *Game) spawnSaucerBullet(s saucer) {
	var angle uint8
	if s.small {
		dx := fixedpoint.ShortestDelta(s.x, g.ship.x, WorldWidthQ)
		dy := fixedpoint.ShortestDelta(s.y, g.ship.y, WorldHeightQ)
		aim := fixedpoint.Atan2BAM(dy, dx)
		errBound := smallSaucerAimErrorBAM(g.wave, g.timeSinceLastKill)
		noise := g.rng.NextRange(-errBound, errBound+1)
		angle = uint8((int32(aim) + noise) & 0xff)
	} else {
		angle = uint8(g.rng.NextRange(0, 256))
	}

	vx, vy := fixedpoint.VelocityQ8_8(angle, SaucerBulletSpeedQ8_8)
	g.saucerBullets = append(g.saucerBullets, bullet{
		x: s.x, y: s.y,
		vx: vx, vy: vy,
		life:   SaucerBulletLifetime,
		radius: ShipBulletRadiusQ,
		alive:  true,
	})
}

// respawnShip restores ship control after the respawn countdown elapses,
// placing it at the open grid point with the largest minimum clearance to
// every live hazard (ties broken toward the world center).
func (g *Game) respawnShip() {
	x, y := g.findBestShipSpawnPoint()
	s := &g.ship
	s.x, s.y = x, y
	s.vx, s.vy = 0, 0
	s.canControl = true
	s.invulnerableTimer = ShipSpawnInvulnFrames
	s.respawnTimer = 0
}

// findBestShipSpawnPoint scores a padded coarse grid of candidate points by
// minimum squared clearance to every live asteroid, saucer, and bullet,
// returning the best-scoring candidate (ties broken by distance to world
// center).
func (g *Game) findBestShipSpawnPoint() (int32, int32) {
	bestX, bestY := ShipSpawnXQ, ShipSpawnYQ
	bestScore := int64(-1)
	bestCenterDistSq := int64(-1)

	for y := ShipRespawnEdgePaddingQ; y < WorldHeightQ-ShipRespawnEdgePaddingQ; y += ShipRespawnGridStepQ {
		for x := ShipRespawnEdgePaddingQ; x < WorldWidthQ-ShipRespawnEdgePaddingQ; x += ShipRespawnGridStepQ {
			score := g.spawnSafetyScore(x, y)
			centerDistSq := fixedpoint.CollisionDistSq(x, y, ShipSpawnXQ, ShipSpawnYQ, WorldWidthQ, WorldHeightQ)
			if score > bestScore || (score == bestScore && centerDistSq < bestCenterDistSq) {
				bestScore = score
				bestCenterDistSq = centerDistSq
				bestX, bestY = x, y
			}
		}
	}

	return bestX, bestY
}

// spawnSafetyScore returns the minimum squared clearance from (x, y) to any
// live asteroid, saucer, or bullet — the quantity findBestShipSpawnPoint
// maximizes.
func (g *Game) spawnSafetyScore(x, y int32) int64 {
	best := int64(1) << 60

	for _, a := range g.asteroids {
		if !a.alive {
			continue
		}
		if d := fixedpoint.CollisionDistSq(x, y, a.x, a.y, WorldWidthQ, WorldHeightQ); d < best {
			best = d
		}
	}
	for _, s := range g.saucers {
		if !s.alive {
			continue
		}
		if d := fixedpoint.CollisionDistSq(x, y, s.x, s.y, WorldWidthQ, WorldHeightQ); d < best {
			best = d
		}
	}
	for _, b := range g.bullets {
		if !b.alive {
			continue
		}
		if d := fixedpoint.CollisionDistSq(x, y, b.x, b.y, WorldWidthQ, WorldHeightQ); d < best {
			best = d
		}
	}
	for _, b := range g.saucerBullets {
		if !b.alive {
			continue
		}
		if d := fixedpoint.CollisionDistSq(x, y, b.x, b.y, WorldWidthQ, WorldHeightQ); d < best {
			best = d
		}
	}

	return best
}

// destroyShip queues a respawn delay and applies the lives/game-over
// transition. Velocity and controllability are cleared immediately; the
// position itself is left in place until respawnShip relocates it, so the
// strict transition validator special-cases a destroyed-but-not-yet-
// relocated ship for exactly one frame.
func (g *Game) destroyShip() {
	s := &g.ship
	s.vx, s.vy = 0, 0
	s.canControl = false
	s.fireCooldown = 0
	s.invulnerableTimer = 0
	s.fireLatch = false
	s.respawnTimer = ShipRespawnFrames

	g.lives--
	if g.lives <= 0 {
		g.mode = GameOver
		s.respawnTimer = 99999
	}
}

// addScore applies points to the running score and awards every extra life
// the new score crosses, since a single frame's delta can cross more than
// one ExtraLifeScoreStep boundary at once.
func (g *Game) addScore(points uint32) {
	g.score += points
	for g.score >= g.nextExtraLifeScore {
		g.lives++
		g.nextExtraLifeScore += ExtraLifeScoreStep
	}
}
