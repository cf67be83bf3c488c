// Package rng implements the single deterministic pseudo-random stream the
// simulator draws from for every gameplay random choice: spawn positions,
// wave velocities, saucer drift timers, and aim error. There is exactly one
// generator per game instance and no other source of randomness touches
// simulation state.
package rng

// Generator is a 32-bit linear congruential generator. Its entire state is
// the current u32 value, which is itself a verified output of a replay: two
// conforming implementations that agree on every input must agree on every
// intermediate and final Generator state.
type Generator struct {
	state uint32
}

// New returns a Generator seeded with the given 32-bit value.
func New(seed uint32) *Generator {
	return &Generator{state: seed}
}

// lcgMultiplier and lcgIncrement are the fixed constants of the stream;
// changing either changes every tape's outcome and is a breaking change.
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
)

// Next advances the stream and returns the new state. The multiply and add
// wrap modulo 2^32 via Go's unsigned overflow semantics, which is exactly
// the "mod 2^32" the stream is defined over.
func (g *Generator) Next() uint32 {
	g.state = g.state*lcgMultiplier + lcgIncrement
	return g.state
}

// NextRange returns lo + (Next() mod (hi-lo)). The modulo-reduction bias
// this introduces for non-power-of-two ranges is intentional and part of
// the contract: every conforming implementation must reproduce it exactly,
// not "fix" it with a rejection-sampling loop.
func (g *Generator) NextRange(lo, hi int32) int32 {
	span := uint32(hi - lo)
	return lo + int32(g.Next()%span)
}

// State returns the current stream value without advancing it.
func (g *Generator) State() uint32 {
	return g.state
}

// Clone returns an independent copy of the generator's state, used by the
// strict-replay path to probe a hypothetical next step without disturbing
// the live stream.
func (g *Generator) Clone() *Generator {
	c := *g
	return &c
}
