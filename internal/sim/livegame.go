package sim

import "github.com/google/uuid"

// LiveGame wraps a Game for interactive stepping by an external bot,
// debugger, or telemetry harness. SessionID lets a caller juggling many
// concurrent LiveGame instances correlate logs and checkpoints; the core
// itself never reads it.
type LiveGame struct {
	SessionID uuid.UUID
	game      *Game
}

// NewLiveGame constructs a LiveGame from a seed, stamping a fresh session
// identifier.
func NewLiveGame(seed uint32) *LiveGame {
	return &LiveGame{
		SessionID: uuid.New(),
		game:      New(seed),
	}
}

// Step advances the game by one frame without validation.
func (lg *LiveGame) Step(inputByte byte) {
	lg.game.Step(inputByte)
}

// CanStepStrict reports whether applying inputByte to a clone of the
// current state would pass transition and invariant validation, without
// mutating the live game. Useful for a caller that wants to reject an input
// before committing to it.
func (lg *LiveGame) CanStepStrict(inputByte byte) error {
	before := lg.game.transitionState()
	probe := lg.game.clone()
	frameInput := DecodeInputByte(inputByte)
	probe.step(frameInput)
	after := probe.transitionState()

	if err := validateTransition(before, after, frameInput); err != nil {
		return err
	}
	return probe.ValidateInvariants()
}

// StepChecked validates inputByte via CanStepStrict before committing it;
// on a rule violation the live game is left unchanged.
func (lg *LiveGame) StepChecked(inputByte byte) error {
	if err := lg.CanStepStrict(inputByte); err != nil {
		return err
	}
	lg.game.Step(inputByte)
	return nil
}

// StepInput is a convenience wrapper over Step for callers that already
// hold a decoded FrameInput rather than a raw byte.
func (lg *LiveGame) StepInput(input FrameInput) {
	lg.game.Step(EncodeInputByte(input))
}

// Snapshot returns the current world state.
func (lg *LiveGame) Snapshot() WorldSnapshot { return lg.game.Snapshot() }

// Result returns the current externally verified output triple.
func (lg *LiveGame) Result() ReplayResult { return lg.game.Result() }

// Validate runs the stateless invariant check against the current state.
func (lg *LiveGame) Validate() error { return lg.game.ValidateInvariants() }

// clone returns an independent deep copy of g, used by CanStepStrict to
// probe a hypothetical step without disturbing the live instance.
func (g *Game) clone() *Game {
	c := *g
	c.rng = g.rng.Clone()
	c.asteroids = append([]asteroid(nil), g.asteroids...)
	c.bullets = append([]bullet(nil), g.bullets...)
	c.saucers = append([]saucer(nil), g.saucers...)
	c.saucerBullets = append([]bullet(nil), g.saucerBullets...)
	return &c
}
