package effector

import (
	"math"
	"testing"
)

type gainFx struct {
	*Base
	gain    float64
	updates []int
}

func newGainFx() *gainFx {
	e := &gainFx{Base: NewBase(IDBooster, "Gain", Color{R: 255}, 8,
		NewParam("GAIN", 0, 2, 1, 0.5),
		NewParam("SPARE", 0, 100, 50, 1),
	)}
	e.OnUpdate(e.recompute)
	return e
}

func (e *gainFx) recompute(n int) {
	e.updates = append(e.updates, n)
	if n == 0 {
		e.gain = e.Value(0)
	}
}

func (e *gainFx) Process(left, right []float64) {
	if !e.Begin(left, right) {
		return
	}
	for i := range left {
		left[i] *= e.gain
	}
	copy(right, left)
	e.End(left, right)
}

var _ Effector = (*gainFx)(nil)

func TestBaseRunsUpdateHook(t *testing.T) {
	e := newGainFx()
	if len(e.updates) != 2 {
		t.Fatalf("initial updates = %v, want one per param", e.updates)
	}
	e.IncrementParam(0)
	if e.gain != 1.5 {
		t.Fatalf("gain = %v after increment, want 1.5", e.gain)
	}
	e.SetParamRatio(0, 0)
	if e.gain != 0 {
		t.Fatalf("gain = %v after SetParamRatio(0)", e.gain)
	}
	e.SetParamValue(0, 7)
	if e.gain != 2 {
		t.Fatalf("gain = %v, want saturated 2", e.gain)
	}
	e.DecrementParam(0)
	if e.gain != 1.5 {
		t.Fatalf("gain = %v after decrement", e.gain)
	}
	if e.ParamCount() != 2 || e.ParamName(1) != "SPARE" || e.ValueText(0) != "1.5" {
		t.Fatalf("metadata: %d %q %q", e.ParamCount(), e.ParamName(1), e.ValueText(0))
	}
	if e.ID() != IDBooster || e.ID().Category() != CategoryDrive || !e.OK() {
		t.Fatal("identity mismatch")
	}
}

func TestBaseGyroOverridesLinkedParams(t *testing.T) {
	e := newGainFx()
	e.SetGyroEnable(0, true)
	e.SetGyro(Vector{X: 1, Z: 0})
	if e.gain != 2 || e.Value(1) != 50 {
		t.Fatalf("tilted: gain=%v spare=%v", e.gain, e.Value(1))
	}
	e.SetGyro(Vector{X: 0, Z: 1})
	if e.gain != 1 {
		t.Fatalf("level: gain=%v, want 1", e.gain)
	}
	e.SetGyroEnable(0, false)
	e.SetGyro(Vector{X: -1})
	if e.gain != 1 || e.GyroEnabled(0) {
		t.Fatal("unlinked param followed the gyro")
	}
}

func TestBaseLinkedParamsIgnoreManualSteps(t *testing.T) {
	e := newGainFx()
	e.SetGyroEnable(0, true)
	e.SetGyro(Vector{X: 1, Z: 1})
	tilted := e.Value(0)
	e.IncrementParam(0)
	e.DecrementParam(0)
	e.DecrementParam(0)
	if e.Value(0) != tilted || e.gain != tilted {
		t.Fatalf("linked GAIN moved to %v (gain %v), want %v", e.Value(0), e.gain, tilted)
	}
	e.IncrementParam(1)
	if e.Value(1) != 51 {
		t.Fatalf("unlinked SPARE = %v after increment, want 51", e.Value(1))
	}
	e.SetGyroEnable(0, false)
	e.DecrementParam(0)
	if e.Value(0) != tilted-0.5 {
		t.Fatalf("unlinked GAIN = %v after decrement, want %v", e.Value(0), tilted-0.5)
	}
}

func TestTiltRatio(t *testing.T) {
	tests := []struct {
		v    Vector
		want float64
	}{
		{Vector{Z: 1}, 0.5},
		{Vector{X: 1}, 1},
		{Vector{X: -1}, 0},
		{Vector{X: 1, Z: 1}, 0.75},
		{Vector{}, 0.5},
		{Vector{X: 1, Z: -1}, 1},
	}
	for _, tc := range tests {
		if got := tc.v.TiltRatio(); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("TiltRatio(%+v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestBaseSwitchCrossfade(t *testing.T) {
	e := newGainFx()
	e.SetParamValue(0, 2)

	left := []float64{1, 1, 1, 1}
	right := []float64{1, 1, 1, 1}
	e.Process(left, right)
	if left[0] != 2 || right[3] != 2 {
		t.Fatalf("active output = %v %v", left, right)
	}

	e.SetActive(false)
	for i := 0; i < SwitchMax/4; i++ {
		left = []float64{1, 1, 1, 1}
		right = []float64{1, 1, 1, 1}
		e.Process(left, right)
	}
	if left[3] != 1 || right[3] != 1 {
		t.Fatalf("switched-off output = %v, want dry", left)
	}
	left = []float64{0.5, 0.5}
	right = []float64{0.25, 0.25}
	e.Process(left, right)
	if left[0] != 0.5 || right[1] != 0.25 {
		t.Fatal("settled-off effect touched the block")
	}
}

func TestIDStrings(t *testing.T) {
	if IDTuner.String() != "Tuner" || ID(99).String() != "ID(99)" {
		t.Fatalf("names: %q %q", IDTuner, ID(99))
	}
	if IDReverb.Category().String() != "reverb" || IDBypass.Category() != CategoryUtility {
		t.Fatal("categories")
	}
}
