package sim

import "github.com/kalepail/asteroids-core/internal/fixedpoint"

// shipAsteroidFudgeNum/Den shrink the effective asteroid radius for
// ship-vs-asteroid collisions to ~0.88 of its true value — a deliberate
// gameplay fudge factor that must be preserved exactly, not "corrected".
const (
	shipAsteroidFudgeNum = 225
	shipAsteroidFudgeDen = 256
)

// handleCollisions runs the seven collision-resolution passes in a fixed
// order: which pair is tested first determines what gets scored versus
// what merely disappears when more than one resolution could apply to the
// same entity in a single frame.
func (g *Game) handleCollisions() {
	// (a) ship bullets x asteroids: scored.
	for bi := range g.bullets {
		b := &g.bullets[bi]
		if !b.alive {
			continue
		}
		for ai := range g.asteroids {
			a := &g.asteroids[ai]
			if !a.alive {
				continue
			}
			if collide(b.x, b.y, b.radius, a.x, a.y, a.radius) {
				b.alive = false
				g.destroyAsteroid(ai, true)
				break
			}
		}
	}

	// (b) saucer bullets x asteroids: no score.
	for bi := range g.saucerBullets {
		b := &g.saucerBullets[bi]
		if !b.alive {
			continue
		}
		for ai := range g.asteroids {
			a := &g.asteroids[ai]
			if !a.alive {
				continue
			}
			if collide(b.x, b.y, b.radius, a.x, a.y, a.radius) {
				b.alive = false
				g.destroyAsteroid(ai, false)
				break
			}
		}
	}

	// (c) ship bullets x saucers: destroy both, score by saucer size.
	for bi := range g.bullets {
		b := &g.bullets[bi]
		if !b.alive {
			continue
		}
		for si := range g.saucers {
			s := &g.saucers[si]
			if !s.alive {
				continue
			}
			if collide(b.x, b.y, b.radius, s.x, s.y, s.radius) {
				b.alive = false
				s.alive = false
				if s.small {
					g.addScore(ScoreSmallSaucer)
				} else {
					g.addScore(ScoreLargeSaucer)
				}
				break
			}
		}
	}

	// (d) saucers x asteroids: saucer dies, no score either way.
	for si := range g.saucers {
		s := &g.saucers[si]
		if !s.alive {
			continue
		}
		for ai := range g.asteroids {
			a := &g.asteroids[ai]
			if !a.alive {
				continue
			}
			if collide(s.x, s.y, s.radius, a.x, a.y, a.radius) {
				s.alive = false
				break
			}
		}
	}

	if !g.ship.canControl || g.ship.invulnerableTimer > 0 {
		return
	}

	// (e) ship x asteroids: fudged radius, destroys the ship.
	for ai := range g.asteroids {
		a := &g.asteroids[ai]
		if !a.alive {
			continue
		}
		fudged := (a.radius * shipAsteroidFudgeNum) / shipAsteroidFudgeDen
		if collide(g.ship.x, g.ship.y, g.ship.radius, a.x, a.y, fudged) {
			g.destroyShip()
			return
		}
	}

	// (f) ship x saucer bullets.
	for bi := range g.saucerBullets {
		b := &g.saucerBullets[bi]
		if !b.alive {
			continue
		}
		if collide(g.ship.x, g.ship.y, g.ship.radius, b.x, b.y, b.radius) {
			b.alive = false
			g.destroyShip()
			return
		}
	}

	// (g) ship x saucers.
	for si := range g.saucers {
		s := &g.saucers[si]
		if !s.alive {
			continue
		}
		if collide(g.ship.x, g.ship.y, g.ship.radius, s.x, s.y, s.radius) {
			s.alive = false
			g.destroyShip()
			return
		}
	}
}

func collide(ax, ay, ar, bx, by, br int32) bool {
	sum := int64(ar) + int64(br)
	return fixedpoint.CollisionDistSq(ax, ay, bx, by, WorldWidthQ, WorldHeightQ) <= sum*sum
}

// destroyAsteroid kills the asteroid at index i, optionally awarding score,
// and splits it into up to two children of the next-smaller size (capped
// by remaining asteroid-vector capacity) inheriting a fraction of the
// parent's velocity plus a fresh random component.
func (g *Game) destroyAsteroid(i int, awardScore bool) {
	a := &g.asteroids[i]
	a.alive = false

	if awardScore {
		g.addScore(a.size.score())
		g.timeSinceLastKill = 0
	}

	childSize, splits := a.size.next()
	if !splits {
		return
	}

	freeSlots := AsteroidCap - g.aliveAsteroidCount()
	splitCount := 2
	if freeSlots < splitCount {
		splitCount = freeSlots
	}

	for k := 0; k < splitCount; k++ {
		inheritedVx := (a.vx * asteroidChildVelocityNum) >> asteroidChildVelocityDen
		inheritedVy := (a.vy * asteroidChildVelocityNum) >> asteroidChildVelocityDen
		angle := uint8(g.rng.NextRange(0, 256))
		minSpeed, maxSpeed := asteroidSpeedRange(childSize, g.wave)
		speed := g.rng.NextRange(minSpeed, maxSpeed+1)
		rvx, rvy := fixedpoint.VelocityQ8_8(angle, speed)

		spin := g.rng.NextRange(-4, 5)
		g.asteroids = append(g.asteroids, asteroid{
			x: a.x, y: a.y,
			vx: inheritedVx + rvx, vy: inheritedVy + rvy,
			angle:  angle,
			spin:   spin,
			size:   childSize,
			radius: childSize.radiusQ(),
			alive:  true,
		})
	}
}

func (g *Game) aliveAsteroidCount() int {
	n := 0
	for _, a := range g.asteroids {
		if a.alive {
			n++
		}
	}
	return n
}

// pruneDestroyed drops dead entries from all four entity vectors,
// implementing tick sub-phase 8. It runs once per frame, after every
// collision has been resolved, so an entity that died this frame still
// participates correctly in every earlier sub-phase of the same tick.
func (g *Game) pruneDestroyed() {
	g.asteroids = compactAlive(g.asteroids, func(a asteroid) bool { return a.alive })
	g.bullets = compactAlive(g.bullets, func(b bullet) bool { return b.alive })
	g.saucers = compactAlive(g.saucers, func(s saucer) bool { return s.alive })
	g.saucerBullets = compactAlive(g.saucerBullets, func(b bullet) bool { return b.alive })
}

func compactAlive[T any](s []T, alive func(T) bool) []T {
	out := s[:0]
	for _, v := range s {
		if alive(v) {
			out = append(out, v)
		}
	}
	return out
}
