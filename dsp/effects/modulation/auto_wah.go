package modulation

import (
	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/dsp/filter/biquad"
)

// AutoWah parameter indices.
const (
	AutoWahLevel = iota
	AutoWahMix
	AutoWahSens
	AutoWahReso
	AutoWahDecay
)

const (
	autoWahFreqMin  = 300.0
	autoWahFreqMax  = 3000.0
	autoWahQMin     = 1.0
	autoWahQMax     = 10.0
	autoWahAttackMs = 2.0
	// autoWahSensRangeDB is the envelope boost at SENS 100.
	autoWahSensRangeDB = 40.0
	// autoWahUpdateInterval is the number of samples between band-pass
	// redesigns while the envelope moves.
	autoWahUpdateInterval = 8
)

// AutoWah sweeps a resonant band-pass with the playing dynamics: an
// envelope follower maps the input level onto the center frequency.
type AutoWah struct {
	*effector.Base

	filter *biquad.Filter

	sampleRate   float64
	level        float64
	dry          float64
	wet          float64
	sens         float64
	q            float64
	attackCoeff  float64
	releaseCoeff float64

	envelope float64
	freq     float64
	counter  int
}

// NewAutoWah returns a fully wet auto-wah.
func NewAutoWah(cfg core.ProcessorConfig) (*AutoWah, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &AutoWah{
		Base: effector.NewBase(effector.IDAutoWah, "AUTO WAH", effector.Color{R: 255, G: 255}, cfg.BlockSize,
			levelParam(),
			mixParam(100),
			effector.NewParam("SENS", 0, 100, 50, 1),
			effector.NewParam("RESO", 0, 100, 50, 1),
			effector.NewParam("DECAY", 10, 500, 100, 10).WithUnit("ms"),
		),
		filter:      biquad.NewFilter(cfg.SampleRate),
		sampleRate:  cfg.SampleRate,
		attackCoeff: followCoeff(autoWahAttackMs, cfg.SampleRate),
		freq:        autoWahFreqMin,
	}
	a.OnUpdate(a.update)
	return a, nil
}

func (a *AutoWah) update(n int) {
	switch n {
	case AutoWahLevel:
		a.level = core.DBToGain(a.Value(AutoWahLevel))
	case AutoWahMix:
		a.wet = core.MixPot(a.Value(AutoWahMix), mixFloorDB)
		a.dry = core.MixPot(100-a.Value(AutoWahMix), mixFloorDB)
	case AutoWahSens:
		a.sens = core.DBToGain(autoWahSensRangeDB * a.Value(AutoWahSens) / 100)
	case AutoWahReso:
		a.q = core.LogScale(a.Value(AutoWahReso), autoWahQMin, autoWahQMax)
		a.redesign()
	case AutoWahDecay:
		a.releaseCoeff = followCoeff(a.Value(AutoWahDecay), a.sampleRate)
	}
}

// Frequency returns the current band-pass center in Hz.
func (a *AutoWah) Frequency() float64 { return a.freq }

func (a *AutoWah) redesign() {
	pos := core.Clamp(a.envelope*a.sens, 0, 1)
	a.freq = core.LogScale(100*pos, autoWahFreqMin, autoWahFreqMax)
	a.filter.SetCoef(biquad.TypeBandPass, a.freq, a.q, 0)
}

// Process filters left and mirrors it to right.
func (a *AutoWah) Process(left, right []float64) {
	if !a.Begin(left, right) {
		return
	}
	for i, x := range left {
		r := x
		if r < 0 {
			r = -r
		}
		coeff := a.releaseCoeff
		if r > a.envelope {
			coeff = a.attackCoeff
		}
		a.envelope = core.FlushDenormals(a.envelope + (r-a.envelope)*coeff)

		a.counter++
		if a.counter >= autoWahUpdateInterval {
			a.counter = 0
			a.redesign()
		}
		left[i] = a.level * (a.dry*x + a.wet*a.filter.Process(x))
	}
	core.Mirror(left, right)
	a.End(left, right)
}
