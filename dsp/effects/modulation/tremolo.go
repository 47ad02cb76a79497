package modulation

import (
	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/dsp/osc"
)

// Tremolo parameter indices.
const (
	TremoloLevel = iota
	TremoloRate
	TremoloDepth
	TremoloWave
)

const (
	tremoloRateMin = 1.0
	tremoloRateMax = 15.0
	// tremoloMaxSquareness is the triangle overdrive at WAVE 100, which
	// leaves only a short slope between the flat tops.
	tremoloMaxSquareness = 10.0
)

// Tremolo modulates the amplitude with a triangle LFO that WAVE clips
// progressively toward a square.
type Tremolo struct {
	*effector.Base

	lfo    *osc.Triangle
	level  float64
	depth  float64
	square float64
}

// NewTremolo returns a tremolo at mid rate and depth.
func NewTremolo(cfg core.ProcessorConfig) (*Tremolo, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Tremolo{
		Base: effector.NewBase(effector.IDTremolo, "TREMOLO", effector.Color{R: 64, G: 255}, cfg.BlockSize,
			levelParam(),
			effector.NewParam("RATE", 0, 100, 50, 1),
			effector.NewParam("DEPTH", 0, 100, 50, 1),
			effector.NewParam("WAVE", 0, 100, 0, 1),
		),
		lfo: osc.NewTriangle(cfg.SampleRate, tremoloRateMin),
	}
	t.OnUpdate(t.update)
	return t, nil
}

func (t *Tremolo) update(n int) {
	switch n {
	case TremoloLevel:
		t.level = core.DBToGain(t.Value(TremoloLevel))
	case TremoloRate:
		t.lfo.Set(core.LogScale(t.Value(TremoloRate), tremoloRateMin, tremoloRateMax))
	case TremoloDepth:
		t.depth = t.Value(TremoloDepth) / 100
	case TremoloWave:
		t.square = 1 + (tremoloMaxSquareness-1)*t.Value(TremoloWave)/100
	}
}

// gain returns the amplitude factor for an LFO value in [-1, 1].
func (t *Tremolo) gain(lfo float64) float64 {
	s := core.Clamp(lfo*t.square, -1, 1)
	return t.level * (1 - t.depth*(1+s)/2)
}

// Process modulates left and mirrors it to right.
func (t *Tremolo) Process(left, right []float64) {
	if !t.Begin(left, right) {
		return
	}
	for i, x := range left {
		left[i] = x * t.gain(t.lfo.Next())
	}
	core.Mirror(left, right)
	t.End(left, right)
}
