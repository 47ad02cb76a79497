package echo

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/dsp/sram"
	"github.com/cwbudde/algo-pedal/internal/testutil"
)

var cfg = core.DefaultProcessorConfig()

var (
	_ effector.Effector = (*DelayRam)(nil)
	_ effector.Effector = (*DelaySpi)(nil)
)

func render(e effector.Effector, in []float64) (left, right []float64) {
	return testutil.RenderBlocks(in, cfg.BlockSize, e.Process)
}

func argmax(x []float64, from, to int) int {
	best := from
	for i := from; i < to; i++ {
		if x[i] > x[best] {
			best = i
		}
	}
	return best
}

func setEcho(e effector.Effector, ms, level, feedback float64) {
	e.SetParamValue(DelayTime, ms)
	e.SetParamValue(DelayLevel, level)
	e.SetParamValue(DelayFeedback, feedback)
	e.SetParamValue(DelayTone, 100)
}

func checkEchoes(t *testing.T, left, right []float64) {
	t.Helper()
	d := int(math.Round(0.1 * cfg.SampleRate))
	if left[0] != 1 {
		t.Fatalf("dry impulse = %v, want 1", left[0])
	}
	if got := argmax(left, 1, d+d/2); got != d {
		t.Fatalf("first echo at %d, want %d", got, d)
	}
	second := argmax(left, d+d/2, len(left))
	if second < 2*d-2 || second > 2*d+2 {
		t.Fatalf("second echo at %d, want about %d", second, 2*d)
	}
	if left[second] >= left[d] {
		t.Fatalf("echo grew: %v then %v", left[d], left[second])
	}
	testutil.RequireSliceNearlyEqual(t, right, left, 0)
}

func TestDelayRamEchoes(t *testing.T) {
	d, err := NewDelayRam(cfg)
	if err != nil {
		t.Fatal(err)
	}
	setEcho(d, 100, 100, 50)
	left, right := render(d, testutil.Impulse(10000, 0))
	checkEchoes(t, left, right)
}

func TestDelayRamFeedbackDecays(t *testing.T) {
	d, err := NewDelayRam(cfg)
	if err != nil {
		t.Fatal(err)
	}
	setEcho(d, 10, 100, 99)
	left, _ := render(d, testutil.DeterministicNoise(1, 0.5, 2*44433))
	testutil.RequireFinite(t, left)
	testutil.RequireBounded(t, left, 2)
}

func TestDelayTimeText(t *testing.T) {
	d, err := NewDelayRam(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.ValueText(DelayTime); got != "300ms" {
		t.Fatalf("TIME text = %q", got)
	}
	d.SetParamValue(DelayTime, 5000)
	if got := d.Value(DelayTime); got != DelayRamMaxMs {
		t.Fatalf("TIME clamps to %v", got)
	}
}

func newSpi(t *testing.T) (*DelaySpi, *sram.Memory) {
	t.Helper()
	mem := sram.NewMemory(1 << 17)
	d, err := NewDelaySpi(cfg, mem, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !d.OK() {
		t.Fatal("probe failed on healthy memory")
	}
	return d, mem
}

func TestDelaySpiEchoes(t *testing.T) {
	d, _ := newSpi(t)
	setEcho(d, 100, 100, 50)
	left, right := render(d, testutil.Impulse(10000, 0))
	checkEchoes(t, left, right)
	if d.Failures() != 0 {
		t.Fatalf("failures = %d", d.Failures())
	}
}

func TestDelaySpiShortBlocks(t *testing.T) {
	for _, n := range []int{64, 17, 1} {
		d, _ := newSpi(t)
		setEcho(d, 100, 100, 50)
		left, right := testutil.RenderBlocks(testutil.Impulse(10000, 0), n, d.Process)
		checkEchoes(t, left, right)
		if d.Failures() != 0 || !d.OK() {
			t.Fatalf("block %d: failures = %d, ok = %v, err = %v", n, d.Failures(), d.OK(), d.Err())
		}
	}
}

func TestDelaySpiMatchesRam(t *testing.T) {
	spi, _ := newSpi(t)
	ram, err := NewDelayRam(cfg)
	if err != nil {
		t.Fatal(err)
	}
	setEcho(spi, 50, 70, 30)
	setEcho(ram, 50, 70, 30)
	in := testutil.DeterministicSine(220, cfg.SampleRate, 0.5, 20000)
	a, _ := render(spi, in)
	b, _ := render(ram, in)
	testutil.RequireSliceNearlyEqual(t, a, b, 1e-12)
}

func TestDelaySpiFailures(t *testing.T) {
	d, mem := newSpi(t)
	mem.Fail(true)

	in := testutil.DeterministicSine(220, cfg.SampleRate, 0.5, cfg.BlockSize)
	left := make([]float64, cfg.BlockSize)
	right := make([]float64, cfg.BlockSize)
	for i := 0; i < maxSpiFailures; i++ {
		if !d.OK() {
			t.Fatalf("unusable after %d failures", i)
		}
		copy(left, in)
		d.Process(left, right)
		testutil.RequireSliceNearlyEqual(t, left, in, 0)
	}
	if d.OK() {
		t.Fatal("still usable after repeated failures")
	}
	if d.Failures() != maxSpiFailures || d.Err() == nil {
		t.Fatalf("failures = %d, err = %v", d.Failures(), d.Err())
	}

	mem.Fail(false)
	copy(left, in)
	d.Process(left, right)
	if !d.OK() {
		t.Fatal("not usable after a good block")
	}
}

func TestDelaySpiProbeFailure(t *testing.T) {
	d, err := NewDelaySpi(cfg, sram.NewMemory(1024), 0)
	if err != nil {
		t.Fatal(err)
	}
	if d.OK() {
		t.Fatal("undersized memory passed the probe")
	}
}

func TestDelaySpiBadConfig(t *testing.T) {
	if _, err := NewDelaySpi(core.ProcessorConfig{}, sram.NewMemory(1<<17), 0); err == nil {
		t.Fatal("expected config error")
	}
}
