package effector

import "testing"

func TestSwitchReachesWetAndDry(t *testing.T) {
	var s Switch
	var out float64
	for i := 0; i < SwitchMax; i++ {
		out = s.Process(0.3, 0.9, true)
	}
	if out != 0.9 || s.Count() != SwitchMax {
		t.Fatalf("after %d active calls out=%v count=%d", SwitchMax, out, s.Count())
	}
	for i := 0; i < SwitchMax; i++ {
		out = s.Process(0.3, 0.9, false)
	}
	if out != 0.3 || s.Count() != 0 {
		t.Fatalf("after %d inactive calls out=%v count=%d", SwitchMax, out, s.Count())
	}
}

func TestSwitchRampIsLinear(t *testing.T) {
	var s Switch
	for i := 1; i <= SwitchRamp; i++ {
		got := s.Process(0, 1, true)
		want := float64(i) / SwitchRamp
		if got != want {
			t.Fatalf("step %d: %v, want %v", i, got, want)
		}
	}
}

func TestSwitchSaturates(t *testing.T) {
	s := NewSwitch(true)
	s.Next(true)
	if s.Count() != SwitchMax {
		t.Fatalf("count overshot to %d", s.Count())
	}
	s.Reset(false)
	s.Next(false)
	if s.Count() != 0 {
		t.Fatalf("count undershot to %d", s.Count())
	}
}

func TestSwitchHysteresis(t *testing.T) {
	s := NewSwitch(true)
	for i := 0; i < 50; i++ {
		if got := s.Process(0, 1, false); got != 1 {
			t.Fatalf("short off pulse dipped output to %v at %d", got, i)
		}
	}
	if s.Count() != SwitchMax-50 {
		t.Fatalf("count = %d", s.Count())
	}
}

func TestSwitchOffHoldsWetThenRamps(t *testing.T) {
	s := NewSwitch(true)
	for i := 0; i < SwitchRamp; i++ {
		if got := s.Process(0, 1, false); got != 1 {
			t.Fatalf("sample %d = %v, want wet during the hold", i, got)
		}
	}
	prev := 1.0
	for i := 0; i < SwitchRamp; i++ {
		got := s.Process(0, 1, false)
		if got >= prev {
			t.Fatalf("ramp sample %d = %v, not below %v", i, got, prev)
		}
		prev = got
	}
	if prev != 0 || !s.Settled(false) {
		t.Fatalf("after hold and ramp: %v, count %d", prev, s.Count())
	}
}

func TestBlendEndpoints(t *testing.T) {
	if Blend(0.1, 0.7, 0) != 0.1 || Blend(0.1, 0.7, 1) != 0.7 {
		t.Fatal("Blend endpoints not exact")
	}
	if got := Blend(0, 1, 0.25); got != 0.25 {
		t.Fatalf("Blend mid = %v", got)
	}
}
