package fixedpoint

import "testing"

func TestWrapBoundaries(t *testing.T) {
	if got := Wrap(0, 15360); got != 0 {
		t.Errorf("Wrap(0, size) = %d, want 0", got)
	}
	if got := Wrap(-1, 15360); got != 15359 {
		t.Errorf("Wrap(-1, size) = %d, want size-1", got)
	}
	if got := Wrap(15360, 15360); got != 0 {
		t.Errorf("Wrap(size, size) = %d, want 0", got)
	}
	if got := Wrap(100, 15360); got != 100 {
		t.Errorf("Wrap(100, size) = %d, want 100 (no-op in range)", got)
	}
}

func TestShortestDeltaSign(t *testing.T) {
	const size = 15360
	if d := ShortestDelta(0, size/2+1, size); d >= 0 {
		t.Errorf("ShortestDelta(0, size/2+1) = %d, want negative", d)
	}
	if d := ShortestDelta(100, 100, size); d != 0 {
		t.Errorf("ShortestDelta(a, a) = %d, want 0", d)
	}
	if d := ShortestDelta(size-10, 10, size); d != 20 {
		t.Errorf("ShortestDelta wrap-around = %d, want 20", d)
	}
}

func TestCosSinTableSymmetry(t *testing.T) {
	if CosBAM(0) != q0_14Scale {
		t.Errorf("CosBAM(0) = %d, want %d", CosBAM(0), q0_14Scale)
	}
	if SinBAM(0) != 0 {
		t.Errorf("SinBAM(0) = %d, want 0", SinBAM(0))
	}
	if CosBAM(128) != -q0_14Scale {
		t.Errorf("CosBAM(128) = %d, want %d", CosBAM(128), -q0_14Scale)
	}
	if SinBAM(64) != q0_14Scale {
		t.Errorf("SinBAM(64) = %d, want %d", SinBAM(64), q0_14Scale)
	}
}

func TestClampSpeedNoOpWhenUnderLimit(t *testing.T) {
	vx, vy := ClampSpeedQ8_8(10, 20, 10000)
	if vx != 10 || vy != 20 {
		t.Errorf("ClampSpeedQ8_8 modified an in-range velocity: got (%d,%d)", vx, vy)
	}
}

func TestClampSpeedScalesDownOverLimit(t *testing.T) {
	vx, vy := ClampSpeedQ8_8(1000, 0, 500*500)
	sq := int64(vx)*int64(vx) + int64(vy)*int64(vy)
	if sq > 500*500 {
		t.Errorf("ClampSpeedQ8_8 left magnitude^2=%d over limit %d", sq, 500*500)
	}
	if vx <= 0 {
		t.Errorf("ClampSpeedQ8_8 should preserve direction, got vx=%d", vx)
	}
}

func TestAtan2BAMCardinalDirections(t *testing.T) {
	cases := []struct {
		dy, dx int32
		want   Angle
	}{
		{0, 100, 0},
		{100, 0, 64},
		{0, -100, 128},
		{-100, 0, 192},
	}
	for _, c := range cases {
		got := Atan2BAM(c.dy, c.dx)
		if diff := int(got) - int(c.want); diff < -1 || diff > 1 {
			t.Errorf("Atan2BAM(%d,%d) = %d, want ~%d", c.dy, c.dx, got, c.want)
		}
	}
}

func TestAtan2BAMDiagonalsAgreeWithOctantSymmetry(t *testing.T) {
	a := Atan2BAM(50, 50)
	if a < 31 || a > 33 {
		t.Errorf("Atan2BAM(50,50) = %d, want ~32 (45 degrees)", a)
	}
}

func TestCollisionDistSqSelfIsZero(t *testing.T) {
	if got := CollisionDistSq(100, 200, 100, 200, 15360, 11520); got != 0 {
		t.Errorf("CollisionDistSq(p, p) = %d, want 0", got)
	}
}

func TestCollisionDistSqWrapsAcrossTorus(t *testing.T) {
	const worldW, worldH = 15360, 11520
	near := CollisionDistSq(0, 0, worldW-1, 0, worldW, worldH)
	if near > 1 {
		t.Errorf("CollisionDistSq across the wrap seam = %d, want ~0", near)
	}
}

func TestVelocityQ8_8MatchesTrigTable(t *testing.T) {
	vx, vy := VelocityQ8_8(0, 256)
	if vx != 256 || vy != 0 {
		t.Errorf("VelocityQ8_8(0, 256) = (%d,%d), want (256,0)", vx, vy)
	}
}

func TestApplyDragMonotonicDecay(t *testing.T) {
	v := int32(1000)
	for i := 0; i < 50; i++ {
		next := ApplyDrag(v)
		if next > v {
			t.Fatalf("ApplyDrag increased magnitude: %d -> %d", v, next)
		}
		v = next
	}
	if v >= 1000 {
		t.Errorf("ApplyDrag did not decay velocity over 50 frames: %d", v)
	}
}
