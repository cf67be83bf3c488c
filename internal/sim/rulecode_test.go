package sim

import "testing"

func TestRuleCodeStringIsStableForEveryNamedCode(t *testing.T) {
	codes := []RuleCode{
		GlobalWaveNonZero, GlobalModeLivesConsistency, GlobalNextExtraLifeScore,
		ShipBounds, ShipAngleRange, ShipCooldownRange, ShipRespawnTimerRange,
		ShipInvulnerabilityRange, ShipSpeedClamp, ShipTurnRateStep, ShipPositionStep,
		PlayerBulletLimit, PlayerBulletState, PlayerBulletCooldownBypass,
		SaucerBulletState, AsteroidState, SaucerCap, SaucerState,
		ProgressionScoreDelta, ProgressionWaveAdvance,
	}
	seen := map[string]bool{}
	for _, c := range codes {
		name := c.String()
		if name == "" || name == "RuleCode(unknown)" {
			t.Errorf("RuleCode %d has no stable name", int(c))
		}
		if seen[name] {
			t.Errorf("RuleCode name %q reused by more than one code", name)
		}
		seen[name] = true
	}
}

func TestReplayViolationErrorIncludesFrameAndRule(t *testing.T) {
	v := ReplayViolation{FrameCount: 42, Rule: ShipBounds}
	msg := v.Error()
	if msg == "" {
		t.Fatal("ReplayViolation.Error() returned empty string")
	}
	if got := v.Rule.String(); got != "ShipBounds" {
		t.Fatalf("Rule.String() = %q, want ShipBounds", got)
	}
	if want := "replay violation at frame 42: ShipBounds"; msg != want {
		t.Errorf("Error() = %q, want %q", msg, want)
	}
}
