package effects

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/dsp/filter/biquad"
	"github.com/cwbudde/algo-pedal/dsp/filter/onepole"
)

// Booster parameter indices.
const (
	BoosterLevel = iota
	BoosterBass
	BoosterTreble
)

const (
	boosterBassFreq   = 200.0
	boosterTrebleFreq = 2500.0
	boosterDCCutFreq  = 20.0
	shelfQ            = 0.7071067811865476
)

// Booster is a clean boost with a two-band tone stack.
type Booster struct {
	*effector.Base

	dcCut  *onepole.HighPass
	bass   *biquad.Filter
	treble *biquad.Filter
	gain   float64
}

// NewBooster returns a Booster at unity gain with a flat tone stack.
func NewBooster(cfg core.ProcessorConfig) (*Booster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Booster{
		Base: effector.NewBase(effector.IDBooster, "BOOSTER", effector.Color{R: 255, G: 64}, cfg.BlockSize,
			effector.NewParam("LEVEL", -20, 20, 0, 1).WithUnit("dB"),
			effector.NewParam("BASS", -15, 15, 0, 1).WithUnit("dB"),
			effector.NewParam("TREBLE", -15, 15, 0, 1).WithUnit("dB"),
		),
		dcCut:  onepole.NewHighPass(cfg.SampleRate, boosterDCCutFreq),
		bass:   biquad.NewFilter(cfg.SampleRate),
		treble: biquad.NewFilter(cfg.SampleRate),
	}
	b.OnUpdate(b.update)
	return b, nil
}

func (b *Booster) update(n int) {
	switch n {
	case BoosterLevel:
		b.gain = core.DBToGain(b.Value(BoosterLevel))
	case BoosterBass:
		b.bass.SetCoef(biquad.TypeLowShelf, boosterBassFreq, shelfQ, b.Value(BoosterBass))
	case BoosterTreble:
		b.treble.SetCoef(biquad.TypeHighShelf, boosterTrebleFreq, shelfQ, b.Value(BoosterTreble))
	}
}

// Process boosts left and mirrors it to right.
func (b *Booster) Process(left, right []float64) {
	if !b.Begin(left, right) {
		return
	}
	for i, x := range left {
		x = b.dcCut.Process(x)
		left[i] = b.treble.Process(b.bass.Process(x))
	}
	vecmath.ScaleBlockInPlace(left, b.gain)
	core.Mirror(left, right)
	b.End(left, right)
}
