package fixedpoint

import "math"

// This file is the one place in the package that imports "math". It runs
// only at init time to freeze the cos/sin/atan lookup tables used by every
// later, purely-integer call; see the comment on roundQ0_14Cos in
// fixedpoint.go for why this does not reintroduce floating point into any
// gameplay-affecting path.

func cosRadians(bam int) float64 {
	return math.Cos(2 * math.Pi * float64(bam) / float64(bamTableSize))
}

func atanBAMRef(i int) float64 {
	return 32 * math.Atan(float64(i)/32) / (math.Pi / 4)
}

func roundFloat(f float64) float64 {
	return math.Round(f)
}
