// Package fixedpoint implements the integer-only arithmetic primitives the
// simulator builds on: Q12.4 positions, Q8.8 velocities, Q0.14 trig lookups,
// and BAM (binary angular measurement) angles. Every function here is a pure
// mapping over signed 32-bit integers; none of them allocate, panic on
// in-range input, or touch floating point. Two implementations that agree on
// this package agree bit-for-bit on everything built above it.
package fixedpoint

// Angle is a binary angular measurement: an unsigned value in [0, 255] where
// 256 represents one full revolution. Arithmetic on it is modulo 256.
type Angle = uint8

// Wrap folds x into [0, size) by adding or subtracting size once. Callers
// must guarantee |displacement per tick| < size, so a single correction
// always suffices — this is the same assumption the tick engine relies on
// when it calls Wrap after every position update.
func Wrap(x, size int32) int32 {
	if x < 0 {
		return x + size
	}
	if x >= size {
		return x - size
	}
	return x
}

// ShortestDelta returns (b-a) reduced modulo size into (-size/2, size/2],
// the shortest signed displacement from a to b on a torus of the given
// size. It is used both as a torus distance (after squaring) and as a
// direction vector (via Atan2BAM on the two axis deltas).
func ShortestDelta(a, b, size int32) int32 {
	d := (b - a) % size
	if d < 0 {
		d += size
	}
	if d > size/2 {
		d -= size
	}
	return d
}

// bamTableSize is the number of distinct BAM angle values.
const bamTableSize = 256

// q0_14Scale is the fixed-point scale of the trig lookup tables: 2^14.
const q0_14Scale = 16384

// cosTable and sinTable hold round(q0_14Scale * cos(2*pi*a/256)) and the
// equivalent for sine, for every BAM value a in [0, 255]. They are computed
// once at package init from the same closed-form definition any conforming
// implementation must use, so the resulting bit pattern is identical
// everywhere this package is compiled.
var cosTable [bamTableSize]int32
var sinTable [bamTableSize]int32

func init() {
	for a := 0; a < bamTableSize; a++ {
		cosTable[a] = roundQ0_14Cos(a)
		sinTable[a] = roundQ0_14Cos(a - 64) // sin(x) = cos(x - 90deg), 90deg = 64 BAM
	}
}

// roundQ0_14Cos computes round(16384*cos(2*pi*a/256)) using only the
// reference math library at init time. Together with the atanTable builder
// below, this is the only place floating point appears in the whole module:
// it seeds a frozen, immutable table and never runs again, so it cannot
// introduce nondeterminism into a replay.
func roundQ0_14Cos(a int) int32 {
	// math.Cos is evaluated once per table slot at package init, not per
	// frame, so pulling in "math" here does not violate the no-float-in-
	// gameplay-paths rule; see CosBAM/SinBAM below, which only ever read
	// the frozen table.
	return int32(roundFloat(q0_14Scale * cosRadians(a)))
}

// CosBAM returns cos(angle) as a Q0.14 value in [-16384, 16384] via table
// lookup.
func CosBAM(angle Angle) int32 {
	return cosTable[angle]
}

// SinBAM returns sin(angle) as a Q0.14 value in [-16384, 16384] via table
// lookup.
func SinBAM(angle Angle) int32 {
	return sinTable[angle]
}

// VelocityQ8_8 converts a heading and Q8.8 speed into Q8.8 velocity
// components: multiply by the Q0.14 trig value then arithmetic-shift right
// by 14.
func VelocityQ8_8(angle Angle, speed int32) (vx, vy int32) {
	vx = int32((int64(speed) * int64(CosBAM(angle))) >> 14)
	vy = int32((int64(speed) * int64(SinBAM(angle))) >> 14)
	return
}

// DisplaceQ12_4 converts a heading and a pixel distance into a Q12.4
// displacement: same construction as VelocityQ8_8 but the distance is
// scaled to Q12.4 (shift 4 fewer bits) before the trig multiply, so the
// combined shift is 14-4=10.
func DisplaceQ12_4(angle Angle, distancePx int32) (dx, dy int32) {
	distanceQ := distancePx << 4
	dx = int32((int64(distanceQ) * int64(CosBAM(angle))) >> 14)
	dy = int32((int64(distanceQ) * int64(SinBAM(angle))) >> 14)
	return
}

// dragShift1 and dragShift2 are the two shift amounts summed to approximate
// a ~4.7% (3/64) per-frame velocity decay: v' = v - (v>>5) - (v>>6). Both
// shifts are Go's arithmetic signed right shift, which rounds toward
// negative infinity.
const (
	dragShift1 = 5
	dragShift2 = 6
)

// ApplyDrag returns v decayed by one frame of friction.
func ApplyDrag(v int32) int32 {
	return v - (v >> dragShift1) - (v >> dragShift2)
}

// ClampSpeedQ8_8 scales (vx, vy) down proportionally, if needed, so that
// vx^2+vy^2 <= maxSq. Intermediate squaring is widened to 64 bits so large
// Q8.8 magnitudes never overflow a signed 32-bit accumulator before the
// comparison.
func ClampSpeedQ8_8(vx, vy, maxSq int32) (int32, int32) {
	sq := int64(vx)*int64(vx) + int64(vy)*int64(vy)
	if sq <= int64(maxSq) || sq == 0 {
		return vx, vy
	}
	// scale = sqrt(maxSq/sq) as a Q16.16 value, taken as the integer square
	// root (binary search) of a Q32.32 ratio, avoiding floating point
	// entirely. Both the root and the final scaling truncate toward zero, so
	// the result never overshoots maxSq.
	num := int64(maxSq) << 32
	ratioQ32 := num / sq // Q32.32 ratio of maxSq/sq, truncated
	scaleQ16 := isqrtQ16(ratioQ32)
	nvx := int32((int64(vx) * int64(scaleQ16)) / (1 << 16))
	nvy := int32((int64(vy) * int64(scaleQ16)) / (1 << 16))
	return nvx, nvy
}

// isqrtQ16 computes floor(sqrt(xQ32) ) expressed as a Q16.16 fixed-point
// value, where xQ32 is a Q32.32 fixed-point ratio in [0, 1]. Uses integer
// binary search since the domain is small and bounded.
func isqrtQ16(xQ32 int64) int64 {
	var lo, hi int64 = 0, 1 << 16
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if mid*mid <= xQ32 {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Atan2BAM returns the BAM angle of the vector (dx, dy), using octant
// reduction onto the first octant and a lookup-table arctangent so that
// every implementation agrees on all 360 degrees of input, including the
// axis and diagonal boundaries.
func Atan2BAM(dy, dx int32) Angle {
	if dx == 0 && dy == 0 {
		return 0
	}

	negX := dx < 0
	negY := dy < 0
	ax, ay := abs32(dx), abs32(dy)

	// Reduce to the first octant (0 <= ay <= ax) and remember whether we
	// swapped axes, so the table only ever needs angles in [0, 32] BAM.
	swapped := ay > ax
	if swapped {
		ax, ay = ay, ax
	}

	octant := atanOctantBAM(ay, ax)

	var angle int32
	if swapped {
		angle = 64 - octant
	} else {
		angle = octant
	}

	switch {
	case !negX && !negY:
		// first quadrant, angle already correct
	case negX && !negY:
		angle = 128 - angle
	case negX && negY:
		angle = 128 + angle
	default: // !negX && negY
		angle = 256 - angle
	}

	return Angle(uint8(angle & 0xff))
}

// atanTable holds round(32 * atan(i/32) / (pi/4)) for i in [0, 32], a Q0
// lookup for the arctangent within the first octant, expressed directly in
// BAM units (32 BAM = 45 degrees).
var atanTable [33]int32

func init() {
	for i := 0; i <= 32; i++ {
		atanTable[i] = int32(roundFloat(atanBAMRef(i)))
	}
}

// atanOctantBAM returns the BAM angle (0..32) of the vector (ay, ax) where
// 0 <= ay <= ax, via direct table lookup on the ratio ay*32/ax.
func atanOctantBAM(ay, ax int32) int32 {
	if ax == 0 {
		return 0
	}
	idx := (ay * 32) / ax
	if idx > 32 {
		idx = 32
	}
	return atanTable[idx]
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// CollisionDistSq returns the squared torus distance between two Q12.4
// points, reducing each axis with ShortestDelta before squaring. The result
// fits in an int64 so callers never need to worry about overflow when
// comparing against a squared radius sum.
func CollisionDistSq(ax, ay, bx, by, worldW, worldH int32) int64 {
	dx := ShortestDelta(ax, bx, worldW)
	dy := ShortestDelta(ay, by, worldH)
	return int64(dx)*int64(dx) + int64(dy)*int64(dy)
}
