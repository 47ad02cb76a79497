package reverb

import (
	"testing"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/internal/testutil"
)

var cfg = core.DefaultProcessorConfig()

var _ effector.Effector = (*Reverb)(nil)

func newReverb(t *testing.T) *Reverb {
	t.Helper()
	r, err := NewReverb(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func render(r *Reverb, in []float64) (left, right []float64) {
	return testutil.RenderBlocks(in, cfg.BlockSize, r.Process)
}

func ms(v float64) int { return int(v * cfg.SampleRate / 1000) }

func TestReverbDisjointTaps(t *testing.T) {
	r := newReverb(t)
	r.SetParamValue(ReverbMix, 100)
	left, right := render(r, testutil.Impulse(ms(200), 0))

	firstL, firstR := samples(erTapMs[0], cfg.SampleRate), samples(erTapMs[1], cfg.SampleRate)
	for i := 0; i < firstL; i++ {
		if left[i] != 0 {
			t.Fatalf("left[%d] = %v before the first left tap", i, left[i])
		}
	}
	for i := 0; i < firstR; i++ {
		if right[i] != 0 {
			t.Fatalf("right[%d] = %v before the first right tap", i, right[i])
		}
	}
	if left[firstL] == 0 || right[firstR] == 0 {
		t.Fatal("first taps are silent")
	}
	if diff, _ := testutil.MaxAbsDiff(left, right); diff < 1e-3 {
		t.Fatalf("channels nearly identical, max diff %v", diff)
	}
}

func TestReverbTailDecays(t *testing.T) {
	r := newReverb(t)
	r.SetParamValue(ReverbMix, 100)
	r.SetParamValue(ReverbFeedback, 100)
	left, right := render(r, testutil.Impulse(5*44433, 0))
	testutil.RequireFinite(t, left)
	testutil.RequireFinite(t, right)
	testutil.RequireBounded(t, left, 1)

	early := testutil.RMS(left[ms(200):ms(700)])
	late := testutil.RMS(left[ms(4500):])
	if early == 0 {
		t.Fatal("no tail")
	}
	if late >= early/4 {
		t.Fatalf("tail does not decay: early %v, late %v", early, late)
	}
}

func TestReverbFeedbackLengthensTail(t *testing.T) {
	tail := func(fb float64) float64 {
		r := newReverb(t)
		r.SetParamValue(ReverbMix, 100)
		r.SetParamValue(ReverbFeedback, fb)
		left, _ := render(r, testutil.Impulse(ms(1000), 0))
		return testutil.RMS(left[ms(500):])
	}
	short, long := tail(20), tail(90)
	if long <= short {
		t.Fatalf("FEEDBACK 90 tail %v not longer than FEEDBACK 20 tail %v", long, short)
	}
}

func TestReverbDryOnly(t *testing.T) {
	r := newReverb(t)
	r.SetParamValue(ReverbMix, 0)
	in := testutil.DeterministicNoise(3, 0.5, 4096)
	left, right := render(r, in)
	testutil.RequireSliceNearlyEqual(t, left, in, 0)
	testutil.RequireSliceNearlyEqual(t, right, in, 0)
}

func TestReverbReset(t *testing.T) {
	r := newReverb(t)
	r.SetParamValue(ReverbMix, 100)
	render(r, testutil.DeterministicNoise(4, 0.5, 8192))
	r.Reset()
	left, right := render(r, make([]float64, 8192))
	if testutil.Peak(left) != 0 || testutil.Peak(right) != 0 {
		t.Fatal("tail survives Reset")
	}
}

func BenchmarkReverb(b *testing.B) {
	r, err := NewReverb(cfg)
	if err != nil {
		b.Fatal(err)
	}
	left := testutil.DeterministicNoise(5, 0.5, cfg.BlockSize)
	right := make([]float64, cfg.BlockSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Process(left, right)
	}
}
