package modulation

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/internal/testutil"
)

var cfg = core.DefaultProcessorConfig()

const fs = core.DefaultSampleRate

var (
	_ effector.Effector = (*AutoWah)(nil)
	_ effector.Effector = (*Chorus)(nil)
	_ effector.Effector = (*Tremolo)(nil)
	_ effector.Effector = (*Phaser)(nil)
)

func render(e effector.Effector, in []float64) (left, right []float64) {
	return testutil.RenderBlocks(in, cfg.BlockSize, e.Process)
}

func minMax(x []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range x {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func TestTremoloDepth(t *testing.T) {
	tr, err := NewTremolo(cfg)
	if err != nil {
		t.Fatal(err)
	}
	tr.SetParamValue(TremoloDepth, 80)
	left, right := render(tr, testutil.DC(1, 44433))
	lo, hi := minMax(left)
	if math.Abs(lo-0.2) > 0.01 || math.Abs(hi-1) > 0.01 {
		t.Fatalf("DC through tremolo spans [%v, %v], want [0.2, 1]", lo, hi)
	}
	testutil.RequireSliceNearlyEqual(t, right, left, 0)
}

func TestTremoloWaveSquares(t *testing.T) {
	tr, err := NewTremolo(cfg)
	if err != nil {
		t.Fatal(err)
	}
	tr.SetParamValue(TremoloDepth, 100)
	if got := tr.gain(0.2); math.Abs(got-0.4) > 1e-12 {
		t.Fatalf("triangle gain(0.2) = %v, want 0.4", got)
	}
	tr.SetParamValue(TremoloWave, 100)
	if got := tr.gain(0.2); got != 0 {
		t.Fatalf("square gain(0.2) = %v, want 0", got)
	}
	if got := tr.gain(-0.2); got != 1 {
		t.Fatalf("square gain(-0.2) = %v, want 1", got)
	}
}

func TestChorusStereo(t *testing.T) {
	c, err := NewChorus(cfg)
	if err != nil {
		t.Fatal(err)
	}
	in := testutil.DeterministicSine(330, fs, 0.5, 44433)
	left, right := render(c, in)
	testutil.RequireBounded(t, left, 1)
	testutil.RequireBounded(t, right, 1)
	diff, err := testutil.MaxAbsDiff(tail(left), tail(right))
	if err != nil {
		t.Fatal(err)
	}
	if diff < 1e-3 {
		t.Fatal("chorus left and right are identical")
	}

	c2, _ := NewChorus(cfg)
	c2.SetParamValue(ChorusDepth, 0)
	left, right = render(c2, in)
	testutil.RequireSliceNearlyEqual(t, left, right, 0)
}

func TestChorusFullWetIsDelayed(t *testing.T) {
	c, err := NewChorus(cfg)
	if err != nil {
		t.Fatal(err)
	}
	c.SetParamValue(ChorusMix, 100)
	c.SetParamValue(ChorusDepth, 0)
	left, _ := render(c, testutil.Impulse(2000, 0))
	peak := 0
	for i, v := range left {
		if v > left[peak] {
			peak = i
		}
	}
	want := int(math.Round(chorusCenterMs * cfg.SampleRate / 1000))
	if peak < want-2 || peak > want+2 {
		t.Fatalf("impulse peak at %d, want about %d", peak, want)
	}
}

func TestPhaserStagesAndAllPass(t *testing.T) {
	p, err := NewPhaser(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for stage := 1; stage <= 6; stage++ {
		p.SetParamValue(PhaserStage, float64(stage))
		if p.Stages() != 2*stage {
			t.Fatalf("STAGE %d gives %d stages", stage, p.Stages())
		}
	}
	p.SetParamValue(PhaserStage, 9)
	if p.Stages() != maxPhaserStages || p.ValueText(PhaserStage) != "12" {
		t.Fatalf("stages = %d text %q", p.Stages(), p.ValueText(PhaserStage))
	}

	p.SetParamValue(PhaserMix, 100)
	p.SetParamValue(PhaserFeedback, 0)
	in := testutil.DeterministicSine(1000, fs, 0.5, 44433)
	left, _ := render(p, in)
	if g := testutil.RMS(tail(left)) / testutil.RMS(tail(in)); math.Abs(g-1) > 0.02 {
		t.Fatalf("wet all-pass gain = %v, want 1", g)
	}
}

func TestPhaserNotches(t *testing.T) {
	p, err := NewPhaser(cfg)
	if err != nil {
		t.Fatal(err)
	}
	p.SetParamValue(PhaserFeedback, 60)
	in := testutil.DeterministicNoise(5, 0.5, 2*44433)
	left, _ := render(p, in)
	testutil.RequireBounded(t, left, 4)
	diff, _ := testutil.MaxAbsDiff(left, in)
	if diff < 0.05 {
		t.Fatal("phaser did not change the signal")
	}
}

func TestAutoWahFollowsLevel(t *testing.T) {
	a, err := NewAutoWah(cfg)
	if err != nil {
		t.Fatal(err)
	}
	render(a, testutil.DeterministicSine(200, fs, 0.001, 9600))
	quiet := a.Frequency()
	render(a, testutil.DeterministicSine(200, fs, 0.5, 9600))
	loud := a.Frequency()
	if quiet > 350 {
		t.Fatalf("quiet input swept to %v Hz", quiet)
	}
	if loud <= 2*quiet {
		t.Fatalf("loud input only swept to %v Hz (quiet %v)", loud, quiet)
	}
	if loud > autoWahFreqMax {
		t.Fatalf("sweep %v above max", loud)
	}
}

func tail(x []float64) []float64 { return x[len(x)/2:] }
