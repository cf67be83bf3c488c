package sim

// scoreEventValues enumerates every distinct amount a single collision
// resolution can add to the score: the three asteroid sizes and the two
// saucer sizes.
var scoreEventValues = [5]uint32{
	ScoreLargeAsteroid,
	ScoreMediumAsteroid,
	ScoreSmallAsteroid,
	ScoreLargeSaucer,
	ScoreSmallSaucer,
}

// maxScoreDeltaPerFrame is the largest score delta a single frame can
// legitimately produce: at most ShipBulletLimit simultaneous scoring
// collisions, each worth at most the highest event value.
var maxScoreDeltaPerFrame = uint32(ShipBulletLimit) * ScoreSmallSaucer

// legalScoreDeltas is a frozen lookup built once at init from every sum of
// up to four score events (mirroring the collision step's cap of at most
// ShipBulletLimit simultaneous bullet-hit resolutions per frame).
var legalScoreDeltas = buildLegalScoreDeltaTable()

func buildLegalScoreDeltaTable() []bool {
	table := make([]bool, maxScoreDeltaPerFrame+1)
	table[0] = true

	for _, a := range scoreEventValues {
		setIfInRange(table, a)
		for _, b := range scoreEventValues {
			two := a + b
			setIfInRange(table, two)
			for _, c := range scoreEventValues {
				three := two + c
				setIfInRange(table, three)
				for _, d := range scoreEventValues {
					four := three + d
					setIfInRange(table, four)
				}
			}
		}
	}

	return table
}

func setIfInRange(table []bool, delta uint32) {
	if delta < uint32(len(table)) {
		table[delta] = true
	}
}

// IsLegalScoreDelta reports whether delta is achievable by some combination
// of up to four simultaneous scoring collisions in a single frame.
func IsLegalScoreDelta(delta uint32) bool {
	if delta >= uint32(len(legalScoreDeltas)) {
		return false
	}
	return legalScoreDeltas[delta]
}
