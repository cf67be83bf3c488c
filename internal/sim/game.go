// Package sim implements THE CORE: a headless, integer-only Asteroids
// simulator that replays a tape of per-frame input bytes against a 32-bit
// seed and produces bit-exact state on every conforming build. It is built
// around one function, Game.Step, plus a strict transition/invariant
// validator wired around it by ReplayStrict.
package sim

import (
	"github.com/kalepail/asteroids-core/internal/fixedpoint"
	"github.com/kalepail/asteroids-core/internal/rng"
)

// Game is one playthrough: a seed, its RNG stream, and every live entity.
// It has no dependency on wall-clock time, the filesystem, or any other
// Game instance — two Games never share state, so callers may run as many
// of them concurrently as they like.
type Game struct {
	rng *rng.Generator

	mode  Mode
	score uint32
	lives int32
	wave  int32

	nextExtraLifeScore uint32
	saucerSpawnTimer   int32
	timeSinceLastKill  int32
	frameCount         uint32

	ship          ship
	asteroids     []asteroid
	bullets       []bullet
	saucers       []saucer
	saucerBullets []bullet
}

// New constructs a fresh Game from a seed: starting lives, wave 1, a
// freshly spawned ship, and the first wave of asteroids.
func New(seed uint32) *Game {
	g := &Game{
		rng:                rng.New(seed),
		mode:               Playing,
		lives:              StartingLives,
		nextExtraLifeScore: ExtraLifeScoreStep,
		asteroids:          make([]asteroid, 0, AsteroidCap+16),
		bullets:            make([]bullet, 0, ShipBulletLimit),
		saucers:            make([]saucer, 0, SaucerVecCapacity),
		saucerBullets:      make([]bullet, 0, SaucerBulletLimit),
	}
	g.ship = g.createShip()
	g.wave = 1
	g.spawnWaveAsteroids()
	lo, hi := saucerSpawnRangeForWave(g.wave)
	g.saucerSpawnTimer = g.rng.NextRange(lo, hi+1)
	return g
}

func (g *Game) createShip() ship {
	return ship{
		x:                 ShipSpawnXQ,
		y:                 ShipSpawnYQ,
		angle:             192, // facing straight toward negative y, matching the reference spawn heading
		radius:            ShipRadiusQ,
		canControl:        true,
		invulnerableTimer: ShipSpawnInvulnFrames,
	}
}

// FrameCount returns the number of frames stepped so far.
func (g *Game) FrameCount() uint32 { return g.frameCount }

// Result returns the externally verified output triple.
func (g *Game) Result() ReplayResult {
	return ReplayResult{
		FinalScore:    g.score,
		FinalRNGState: g.rng.State(),
		FrameCount:    g.frameCount,
	}
}

// Step advances the world by exactly one frame. The ten sub-phases below
// run in this fixed order; reordering them changes observable outcomes and
// breaks replay compatibility with every other conforming implementation.
func (g *Game) Step(inputByte byte) {
	g.step(DecodeInputByte(inputByte))
}

func (g *Game) step(input FrameInput) {
	g.frameCount++

	g.updateShip(input)
	g.updateAsteroids()
	g.updateBullets()
	g.updateSaucers()
	g.updateSaucerBullets()

	g.handleCollisions()

	g.pruneDestroyed()

	g.timeSinceLastKill++

	if g.mode == Playing && len(g.asteroids) == 0 && len(g.saucers) == 0 {
		g.spawnNextWave()
	}
}

// updateShip implements tick sub-phase 2 in its entirety: cooldown/latch
// bookkeeping, respawn countdown, turning, thrust, drag, speed clamp,
// firing, and position integration.
func (g *Game) updateShip(input FrameInput) {
	s := &g.ship

	if s.fireCooldown > 0 {
		s.fireCooldown--
	}
	if !input.Fire {
		s.fireLatch = false
	}

	if !s.canControl {
		s.fireLatch = input.Fire
		s.respawnTimer--
		if s.respawnTimer <= 0 {
			g.respawnShip()
		}
		return
	}

	if s.invulnerableTimer > 0 {
		s.invulnerableTimer--
	}

	turn := int32(0)
	switch {
	case input.Left && !input.Right:
		turn = -ShipTurnSpeedBAM
	case input.Right && !input.Left:
		turn = ShipTurnSpeedBAM
	}
	s.angle = uint8((int32(s.angle) + turn) & 0xff)

	if input.Thrust {
		ax, ay := fixedpoint.VelocityQ8_8(s.angle, ShipThrustQ8_8)
		s.vx += ax
		s.vy += ay
	}
	s.vx = fixedpoint.ApplyDrag(s.vx)
	s.vy = fixedpoint.ApplyDrag(s.vy)
	s.vx, s.vy = fixedpoint.ClampSpeedQ8_8(s.vx, s.vy, ShipMaxSpeedSqQ8_8)

	firePressed := input.Fire && !s.fireLatch
	if firePressed && s.fireCooldown <= 0 && len(g.bullets) < ShipBulletLimit {
		g.spawnShipBullet()
		s.fireCooldown = ShipBulletCooldownFrames
	}
	s.fireLatch = input.Fire

	s.x = fixedpoint.Wrap(s.x+(s.vx>>4), WorldWidthQ)
	s.y = fixedpoint.Wrap(s.y+(s.vy>>4), WorldHeightQ)
}

// spawnShipBullet places a new ship bullet just ahead of the ship's nose,
// inheriting a speed-proportional boost from the ship's own velocity. The
// boost is an intentional approximation of |v| (|vx|+|vy|, not a true
// vector length), not a bug to be "fixed".
func (g *Game) spawnShipBullet() {
	s := &g.ship
	dx, dy := fixedpoint.DisplaceQ12_4(s.angle, shipBulletNoseOffsetPx)

	approxSpeed := (abs32(s.vx) + abs32(s.vy)) * 3 >> 2
	boost := (approxSpeed * 89) >> 8
	bvx, bvy := fixedpoint.VelocityQ8_8(s.angle, ShipBulletSpeedQ8_8+boost)

	g.bullets = append(g.bullets, bullet{
		x:      fixedpoint.Wrap(s.x+dx, WorldWidthQ),
		y:      fixedpoint.Wrap(s.y+dy, WorldHeightQ),
		vx:     s.vx + bvx,
		vy:     s.vy + bvy,
		life:   ShipBulletLifetimeFrames,
		radius: ShipBulletRadiusQ,
		alive:  true,
	})
}

func (g *Game) updateAsteroids() {
	for i := range g.asteroids {
		a := &g.asteroids[i]
		if !a.alive {
			continue
		}
		a.x = fixedpoint.Wrap(a.x+(a.vx>>4), WorldWidthQ)
		a.y = fixedpoint.Wrap(a.y+(a.vy>>4), WorldHeightQ)
		a.angle = uint8((int32(a.angle) + a.spin) & 0xff)
	}
}

func (g *Game) updateBullets() {
	updateProjectiles(g.bullets)
}

func (g *Game) updateSaucerBullets() {
	updateProjectiles(g.saucerBullets)
}

func updateProjectiles(bullets []bullet) {
	for i := range bullets {
		b := &bullets[i]
		if !b.alive {
			continue
		}
		b.life--
		if b.life <= 0 {
			b.alive = false
			continue
		}
		b.x = fixedpoint.Wrap(b.x+(b.vx>>4), WorldWidthQ)
		b.y = fixedpoint.Wrap(b.y+(b.vy>>4), WorldHeightQ)
	}
}

func (g *Game) updateSaucers() {
	if g.saucerSpawnTimer > 0 {
		g.saucerSpawnTimer--
	}
	lurking := g.timeSinceLastKill > LurkTimeThresholdFrm
	threshold := int32(0)
	if lurking {
		threshold = 1
	}
	if len(g.saucers) < maxSaucersForWave(g.wave) && g.saucerSpawnTimer <= threshold {
		g.spawnSaucer()
	}

	for i := range g.saucers {
		s := &g.saucers[i]
		if !s.alive {
			continue
		}
		s.x += s.vx >> 4
		if s.x < SaucerCullMinXQ || s.x > SaucerCullMaxXQ {
			s.alive = false
			continue
		}
		s.y = fixedpoint.Wrap(s.y+(s.vy>>4), WorldHeightQ)

		s.driftTimer--
		if s.driftTimer <= 0 {
			s.vy = g.rng.NextRange(-SaucerDriftSpeedQ8_8, SaucerDriftSpeedQ8_8+1)
			s.driftTimer = g.rng.NextRange(SaucerDriftTimerMinFrm, SaucerDriftTimerMaxFrm+1)
		}

		s.fireCooldown--
		if s.fireCooldown <= 0 {
			g.spawnSaucerBullet(*s)
			lo, hi := saucerFireCooldownRange(s.small, g.wave, g.timeSinceLastKill)
			s.fireCooldown = g.rng.NextRange(lo, hi+1)
		}
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
