package reverb

import (
	"math"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/delay"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/dsp/filter/onepole"
)

// Reverb parameter indices.
const (
	ReverbLevel = iota
	ReverbMix
	ReverbFeedback
	ReverbHiCut
	ReverbLoCut
	ReverbHiDamp
)

const (
	erTaps    = 4
	fdnLines  = 4
	crossTaps = 2

	mixFloorDB = -20.0

	// maxLoopGain keeps the network strictly decaying at FEEDBACK 100.
	maxLoopGain = 0.97
	// crossShare is the part of each FDN input taken from the cross lines.
	crossShare = 0.3
	wetScale   = 0.25

	hiCutMin  = 1000.0
	hiCutMax  = 16000.0
	loCutMin  = 20.0
	loCutMax  = 1000.0
	hiDampMin = 1000.0
	hiDampMax = 16000.0
)

var (
	erTapMs    = [erTaps]float64{4.3, 7.9, 11.3, 17.9}
	fdnDelayMs = [fdnLines]float64{29.7, 37.1, 41.1, 43.7}
	crossMs    = [crossTaps]float64{61.3, 86.9}
)

// Reverb is a stereo algorithmic reverb with ten output taps.
type Reverb struct {
	*effector.Base

	locut *onepole.HighPass
	hicut *onepole.LowPass

	er       *delay.Buf[float32]
	erDelay  [erTaps]int
	fdn      [fdnLines]*delay.Buf[float32]
	fdnDelay [fdnLines]int
	cross    [crossTaps]*delay.Buf[float32]
	crossLen [crossTaps]int
	damp     [crossTaps]*onepole.LowPass

	level    float64
	dry      float64
	wet      float64
	feedback float64
}

// NewReverb returns a reverb at 30 % mix.
func NewReverb(cfg core.ProcessorConfig) (*Reverb, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fs := cfg.SampleRate
	r := &Reverb{
		Base: effector.NewBase(effector.IDReverb, "REVERB", effector.Color{R: 255, G: 255, B: 255}, cfg.BlockSize,
			effector.NewParam("LEVEL", -20, 20, 0, 1).WithUnit("dB"),
			effector.NewParam("MIX", 0, 100, 30, 1),
			effector.NewParam("FEEDBACK", 0, 100, 70, 1),
			effector.NewParam("HICUT", 0, 100, 70, 1),
			effector.NewParam("LOCUT", 0, 100, 20, 1),
			effector.NewParam("HIDAMP", 0, 100, 50, 1),
		),
		locut: onepole.NewHighPass(fs, loCutMin),
		hicut: onepole.NewLowPass(fs, hiCutMax),
	}

	var err error
	if r.er, err = delay.NewBuf[float32](erTapMs[erTaps-1], fs); err != nil {
		return nil, err
	}
	for i, ms := range erTapMs {
		r.erDelay[i] = samples(ms, fs)
	}
	for i, ms := range fdnDelayMs {
		if r.fdn[i], err = delay.NewBuf[float32](ms, fs); err != nil {
			return nil, err
		}
		r.fdnDelay[i] = samples(ms, fs)
	}
	for i, ms := range crossMs {
		if r.cross[i], err = delay.NewBuf[float32](ms, fs); err != nil {
			return nil, err
		}
		r.crossLen[i] = samples(ms, fs)
		r.damp[i] = onepole.NewLowPass(fs, hiDampMax)
	}

	r.OnUpdate(r.update)
	return r, nil
}

func samples(ms, fs float64) int {
	return int(math.Round(ms * fs / 1000))
}

func (r *Reverb) update(n int) {
	switch n {
	case ReverbLevel:
		r.level = core.DBToGain(r.Value(ReverbLevel))
	case ReverbMix:
		r.wet = wetScale * core.MixPot(r.Value(ReverbMix), mixFloorDB)
		r.dry = core.MixPot(100-r.Value(ReverbMix), mixFloorDB)
	case ReverbFeedback:
		r.feedback = maxLoopGain * r.Value(ReverbFeedback) / 100
	case ReverbHiCut:
		r.hicut.Set(core.LogScale(r.Value(ReverbHiCut), hiCutMin, hiCutMax))
	case ReverbLoCut:
		r.locut.Set(core.LogScale(r.Value(ReverbLoCut), loCutMin, loCutMax))
	case ReverbHiDamp:
		f := core.LogScale(r.Value(ReverbHiDamp), hiDampMax, hiDampMin)
		for _, d := range r.damp {
			d.Set(f)
		}
	}
}

// Reset clears the tail.
func (r *Reverb) Reset() {
	r.er.Reset()
	for i := range r.fdn {
		r.fdn[i].Reset()
	}
	for i := range r.cross {
		r.cross[i].Reset()
		r.damp[i].Reset()
	}
	r.locut.Reset()
	r.hicut.Reset()
}

// Process reads the mono input from left and writes a stereo result.
func (r *Reverb) Process(left, right []float64) {
	if !r.Begin(left, right) {
		return
	}
	for i, x := range left {
		wl, wr := r.tick(x)
		d := r.dry * x
		left[i] = r.level * (d + r.wet*wl)
		right[i] = r.level * (d + r.wet*wr)
	}
	r.End(left, right)
}

// tick runs the network for one input sample and returns the left and
// right tap sums.
func (r *Reverb) tick(x float64) (wl, wr float64) {
	in := r.hicut.Process(r.locut.Process(x))

	var e [erTaps]float64
	for k, d := range r.erDelay {
		e[k] = r.er.ReadSamples(d)
	}
	r.er.Write(in)

	var o [fdnLines]float64
	var sum float64
	for k, d := range r.fdnDelay {
		o[k] = r.fdn[k].ReadSamples(d)
		sum += o[k]
	}
	var c [crossTaps]float64
	for k, d := range r.crossLen {
		c[k] = r.damp[k].Process(r.cross[k].ReadSamples(d))
	}

	half := 0.5 * sum
	for k := range r.fdn {
		h := o[k] - half
		fb := (1-crossShare)*h + crossShare*c[k%crossTaps]
		r.fdn[k].Write(0.5*in + r.feedback*fb)
	}
	r.cross[0].Write(0.5 * (o[0] + o[1]))
	r.cross[1].Write(0.5 * (o[2] + o[3]))

	wl = e[0] + e[2] + o[0] + o[2] + c[0]
	wr = e[1] + e[3] + o[1] + o[3] + c[1]
	return wl, wr
}
