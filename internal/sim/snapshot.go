package sim

// ShipSnapshot is an immutable, copy-semantic view of the ship.
type ShipSnapshot struct {
	X, Y              int32
	VX, VY            int32
	Angle             uint8
	Radius            int32
	CanControl        bool
	FireCooldown      int32
	RespawnTimer      int32
	InvulnerableTimer int32
}

// AsteroidSnapshot is an immutable, copy-semantic view of one live
// asteroid.
type AsteroidSnapshot struct {
	X, Y   int32
	VX, VY int32
	Angle  uint8
	Spin   int32
	Size   AsteroidSize
	Radius int32
}

// BulletSnapshot is an immutable, copy-semantic view of one live bullet
// (ship- or saucer-owned; the caller already knows which pool it came
// from).
type BulletSnapshot struct {
	X, Y   int32
	VX, VY int32
	Radius int32
	Life   int32
}

// SaucerSnapshot is an immutable, copy-semantic view of one live saucer.
type SaucerSnapshot struct {
	X, Y         int32
	VX, VY       int32
	Radius       int32
	Small        bool
	FireCooldown int32
	DriftTimer   int32
}

// WorldSnapshot is the full read-only view of a Game at one instant,
// suitable for handing to an external bot, telemetry collector, or test
// harness without risking mutation of engine-internal state.
type WorldSnapshot struct {
	FrameCount         uint32
	Score              uint32
	Lives              int32
	Wave               int32
	IsGameOver         bool
	RNGState           uint32
	SaucerSpawnTimer   int32
	TimeSinceLastKill  int32
	NextExtraLifeScore uint32

	Ship          ShipSnapshot
	Asteroids     []AsteroidSnapshot
	Bullets       []BulletSnapshot
	Saucers       []SaucerSnapshot
	SaucerBullets []BulletSnapshot
}

// Snapshot returns a deep, independent copy of the current world state.
func (g *Game) Snapshot() WorldSnapshot {
	ws := WorldSnapshot{
		FrameCount:         g.frameCount,
		Score:              g.score,
		Lives:              g.lives,
		Wave:               g.wave,
		IsGameOver:         g.mode == GameOver,
		RNGState:           g.rng.State(),
		SaucerSpawnTimer:   g.saucerSpawnTimer,
		TimeSinceLastKill:  g.timeSinceLastKill,
		NextExtraLifeScore: g.nextExtraLifeScore,
		Ship: ShipSnapshot{
			X: g.ship.x, Y: g.ship.y,
			VX: g.ship.vx, VY: g.ship.vy,
			Angle:             g.ship.angle,
			Radius:            g.ship.radius,
			CanControl:        g.ship.canControl,
			FireCooldown:      g.ship.fireCooldown,
			RespawnTimer:      g.ship.respawnTimer,
			InvulnerableTimer: g.ship.invulnerableTimer,
		},
	}

	for _, a := range g.asteroids {
		if !a.alive {
			continue
		}
		ws.Asteroids = append(ws.Asteroids, AsteroidSnapshot{
			X: a.x, Y: a.y, VX: a.vx, VY: a.vy,
			Angle: a.angle, Spin: a.spin, Size: a.size, Radius: a.radius,
		})
	}
	for _, b := range g.bullets {
		if !b.alive {
			continue
		}
		ws.Bullets = append(ws.Bullets, BulletSnapshot{X: b.x, Y: b.y, VX: b.vx, VY: b.vy, Radius: b.radius, Life: b.life})
	}
	for _, s := range g.saucers {
		if !s.alive {
			continue
		}
		ws.Saucers = append(ws.Saucers, SaucerSnapshot{
			X: s.x, Y: s.y, VX: s.vx, VY: s.vy, Radius: s.radius,
			Small: s.small, FireCooldown: s.fireCooldown, DriftTimer: s.driftTimer,
		})
	}
	for _, b := range g.saucerBullets {
		if !b.alive {
			continue
		}
		ws.SaucerBullets = append(ws.SaucerBullets, BulletSnapshot{X: b.x, Y: b.y, VX: b.vx, VY: b.vy, Radius: b.radius, Life: b.life})
	}

	return ws
}

// Checkpoint is the coarse structural sample replay_with_checkpoints
// returns every stride frames: enough to diff two runs quickly without
// paying for a full WorldSnapshot (and its entity slices) at every stride
// point.
type Checkpoint struct {
	FrameCount    uint32
	RNGState      uint32
	Score         uint32
	Lives         int32
	Wave          int32
	Asteroids     int
	Bullets       int
	Saucers       int
	SaucerBullets int
	Ship          ShipSnapshot
}

func (g *Game) checkpoint() Checkpoint {
	return Checkpoint{
		FrameCount:    g.frameCount,
		RNGState:      g.rng.State(),
		Score:         g.score,
		Lives:         g.lives,
		Wave:          g.wave,
		Asteroids:     g.aliveAsteroidCount(),
		Bullets:       len(g.bullets),
		Saucers:       len(g.saucers),
		SaucerBullets: len(g.saucerBullets),
		Ship: ShipSnapshot{
			X: g.ship.x, Y: g.ship.y, VX: g.ship.vx, VY: g.ship.vy,
			Angle: g.ship.angle, Radius: g.ship.radius, CanControl: g.ship.canControl,
			FireCooldown: g.ship.fireCooldown, RespawnTimer: g.ship.respawnTimer,
			InvulnerableTimer: g.ship.invulnerableTimer,
		},
	}
}
