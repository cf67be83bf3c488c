package sim

// ReplayResult is the externally verified output of a replay: the final
// score, final RNG state, and frame count. Any two conforming
// implementations given the same (seed, inputs) must produce an identical
// ReplayResult.
type ReplayResult struct {
	FinalScore    uint32
	FinalRNGState uint32
	FrameCount    uint32
}

// Replay runs the engine to completion over inputs with no validation: it
// trusts the tape. This is the "loose" entry point, for callers that have
// already established a tape's legitimacy some other way.
func Replay(seed uint32, inputs []byte) ReplayResult {
	g := New(seed)
	for _, in := range inputs {
		g.Step(in)
	}
	return g.Result()
}

// ReplayStrict runs the engine over inputs, validating every transition and
// every post-step invariant. It halts at the first violation, returning the
// frame and rule code; the caller should discard the whole attempt rather
// than resume from a rejected tape.
func ReplayStrict(seed uint32, inputs []byte) (ReplayResult, error) {
	g := New(seed)
	if err := g.ValidateInvariants(); err != nil {
		rule, _ := AsRuleCode(err)
		return ReplayResult{}, ReplayViolation{FrameCount: g.frameCount, Rule: rule}
	}

	for _, in := range inputs {
		frameInput := DecodeInputByte(in)
		before := g.transitionState()
		g.step(frameInput)
		after := g.transitionState()

		if err := validateTransition(before, after, frameInput); err != nil {
			rule, _ := AsRuleCode(err)
			return ReplayResult{}, ReplayViolation{FrameCount: g.frameCount, Rule: rule}
		}
		if err := g.ValidateInvariants(); err != nil {
			rule, _ := AsRuleCode(err)
			return ReplayResult{}, ReplayViolation{FrameCount: g.frameCount, Rule: rule}
		}
	}

	return g.Result(), nil
}

// ReplayWithCheckpoints runs the engine over inputs, sampling a coarse
// structural Checkpoint every stride frames (plus always the initial state
// and the final frame), for fast random-access diffing and telemetry.
func ReplayWithCheckpoints(seed uint32, inputs []byte, stride uint32) []Checkpoint {
	g := New(seed)
	if stride == 0 {
		stride = 1
	}
	total := uint32(len(inputs))

	checkpoints := []Checkpoint{g.checkpoint()}
	for i, in := range inputs {
		g.Step(in)
		frame := uint32(i + 1)
		if frame%stride == 0 || frame == total {
			checkpoints = append(checkpoints, g.checkpoint())
		}
	}
	return checkpoints
}
