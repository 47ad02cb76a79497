package core

import (
	"math"
	"testing"
)

func TestDBToGainTablePoints(t *testing.T) {
	for _, db := range []float64{-128, -60, -6, 0, 6, 20, 127} {
		want := math.Pow(10, db/20)
		got := DBToGain(db)
		if !NearlyEqual(got, want, 1e-12) {
			t.Fatalf("DBToGain(%v) = %v, want %v", db, got, want)
		}
	}
}

func TestDBToGainClampsRange(t *testing.T) {
	if got, want := DBToGain(-500), DBToGain(-128); got != want {
		t.Fatalf("DBToGain(-500) = %v, want %v", got, want)
	}
	if got, want := DBToGain(500), DBToGain(128); got != want {
		t.Fatalf("DBToGain(500) = %v, want %v", got, want)
	}
	if got, want := DBToGain(math.NaN()), DBToGain(-128); got != want {
		t.Fatalf("DBToGain(NaN) = %v, want %v", got, want)
	}
}

func TestGainToDBMatchesLog10(t *testing.T) {
	for x := 1e-5; x <= 1; x *= 1.37 {
		want := 20 * math.Log10(x)
		if got := GainToDB(x); math.Abs(got-want) > 1e-3 {
			t.Fatalf("GainToDB(%g) = %v, want %v", x, got, want)
		}
	}
}

func TestGainRoundTrip(t *testing.T) {
	for x := 1e-5; x <= 1; x *= 1.05 {
		got := DBToGain(GainToDB(x))
		errDB := math.Abs(20 * math.Log10(got/x))
		if errDB > 0.02 {
			t.Fatalf("round trip of %g = %g (%.4f dB off)", x, got, errDB)
		}
	}
	if got := DBToGain(GainToDB(1)); math.Abs(got-1) > 1e-9 {
		t.Fatalf("round trip of 1 = %v", got)
	}
}

func TestLogPot(t *testing.T) {
	if got := LogPot(0, -20, 20); !NearlyEqual(got, 0.1, 1e-9) {
		t.Fatalf("LogPot(0) = %v, want 0.1", got)
	}
	if got := LogPot(100, -20, 20); !NearlyEqual(got, 10, 1e-9) {
		t.Fatalf("LogPot(100) = %v, want 10", got)
	}
	if got := LogPot(50, -20, 20); !NearlyEqual(got, 1, 1e-9) {
		t.Fatalf("LogPot(50) = %v, want 1", got)
	}
}

func TestMixPotEndpoints(t *testing.T) {
	for _, dbMin := range []float64{-60, -40, -20, -6, 0} {
		if got := MixPot(0, dbMin); got != 0 {
			t.Fatalf("MixPot(0, %v) = %v, want 0", dbMin, got)
		}
		if got := MixPot(100, dbMin); got != 1 {
			t.Fatalf("MixPot(100, %v) = %v, want 1", dbMin, got)
		}
		if got := MixPot(150, dbMin); got != 1 {
			t.Fatalf("MixPot(150, %v) = %v, want 1", dbMin, got)
		}
	}
	if got := MixPot(50, -40); math.Abs(20*math.Log10(got)+6) > 0.02 {
		t.Fatalf("MixPot(50) = %v, want -6 dB", got)
	}
}

func TestMixPotMonotone(t *testing.T) {
	for _, dbMin := range []float64{-60, -30, -6, 3} {
		prev := MixPot(0, dbMin)
		for pot := 0.0; pot <= 100; pot += 0.25 {
			got := MixPot(pot, dbMin)
			if got < prev {
				t.Fatalf("MixPot(%v, %v) = %v decreased from %v", pot, dbMin, got, prev)
			}
			prev = got
		}
	}
}

func BenchmarkDBToGain(b *testing.B) {
	x := 0.0
	for i := 0; i < b.N; i++ {
		x += DBToGain(float64(i%200) - 100.5)
	}
	_ = x
}

func TestLogScale(t *testing.T) {
	tests := []struct {
		pot, lo, hi, want float64
	}{
		{0, 20, 20000, 20},
		{100, 20, 20000, 20000},
		{50, 20, 20000, 632.4555320336759},
		{100, 400, 40, 40},
		{150, 800, 8000, 8000},
	}
	for _, tc := range tests {
		if got := LogScale(tc.pot, tc.lo, tc.hi); math.Abs(got-tc.want) > 1e-9*tc.want {
			t.Fatalf("LogScale(%v, %v, %v) = %v, want %v", tc.pot, tc.lo, tc.hi, got, tc.want)
		}
	}
}
