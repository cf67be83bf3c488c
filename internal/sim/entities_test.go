package sim

import "testing"

func TestAsteroidSizeNextSplitsLargeAndMediumOnly(t *testing.T) {
	cases := []struct {
		size       AsteroidSize
		wantNext   AsteroidSize
		wantSplits bool
	}{
		{AsteroidLarge, AsteroidMedium, true},
		{AsteroidMedium, AsteroidSmall, true},
		{AsteroidSmall, AsteroidSmall, false},
	}
	for _, c := range cases {
		next, splits := c.size.next()
		if next != c.wantNext || splits != c.wantSplits {
			t.Errorf("%v.next() = (%v,%v), want (%v,%v)", c.size, next, splits, c.wantNext, c.wantSplits)
		}
	}
}

func TestAsteroidSizeRadiusDecreasesWithSize(t *testing.T) {
	if AsteroidLarge.radiusQ() <= AsteroidMedium.radiusQ() {
		t.Errorf("large radius %d should exceed medium radius %d", AsteroidLarge.radiusQ(), AsteroidMedium.radiusQ())
	}
	if AsteroidMedium.radiusQ() <= AsteroidSmall.radiusQ() {
		t.Errorf("medium radius %d should exceed small radius %d", AsteroidMedium.radiusQ(), AsteroidSmall.radiusQ())
	}
}

func TestAsteroidSizeScoreIncreasesAsSizeShrinks(t *testing.T) {
	if AsteroidLarge.score() >= AsteroidMedium.score() {
		t.Errorf("large score %d should be less than medium score %d", AsteroidLarge.score(), AsteroidMedium.score())
	}
	if AsteroidMedium.score() >= AsteroidSmall.score() {
		t.Errorf("medium score %d should be less than small score %d", AsteroidMedium.score(), AsteroidSmall.score())
	}
}

func TestWaveAsteroidCountScheduleIsLocked(t *testing.T) {
	want := []int{4, 6, 8, 10, 11, 12, 13, 14, 15, 16, 16, 16}
	for i, w := range want {
		wave := int32(i + 1)
		if got := waveAsteroidCount(wave); got != w {
			t.Errorf("waveAsteroidCount(%d) = %d, want %d", wave, got, w)
		}
	}
}

func TestMaxSaucersForWaveSchedule(t *testing.T) {
	cases := []struct {
		wave int32
		want int
	}{
		{1, 1}, {3, 1}, {4, 2}, {6, 2}, {7, 3}, {20, 3},
	}
	for _, c := range cases {
		if got := maxSaucersForWave(c.wave); got != c.want {
			t.Errorf("maxSaucersForWave(%d) = %d, want %d", c.wave, got, c.want)
		}
	}
}
