package modulation

import (
	"math"
	"strconv"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/dsp/filter/onepole"
	"github.com/cwbudde/algo-pedal/dsp/osc"
)

// Phaser parameter indices.
const (
	PhaserLevel = iota
	PhaserRate
	PhaserStage
	PhaserDepth
	PhaserFeedback
	PhaserMix
)

const (
	maxPhaserStages = 12
	phaserRateMin   = 0.05
	phaserRateMax   = 5.0
	phaserFreqMin   = 200.0
	// phaserSweepOctaves is the sweep width at DEPTH 100.
	phaserSweepOctaves = 5.0
)

// Phaser sweeps the corner of a cascade of first-order all-passes and
// mixes the result with the input, moving notches through the spectrum.
type Phaser struct {
	*effector.Base

	stages [maxPhaserStages]onepole.AllPass
	active int
	lfo    *osc.Triangle

	sampleRate float64
	level      float64
	dry        float64
	wet        float64
	feedback   float64
	sweep      float64
	last       float64
}

// NewPhaser returns a four-stage phaser.
func NewPhaser(cfg core.ProcessorConfig) (*Phaser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Phaser{
		Base: effector.NewBase(effector.IDPhaser, "PHASER", effector.Color{R: 255, B: 255}, cfg.BlockSize,
			levelParam(),
			effector.NewParam("RATE", 0, 100, 40, 1),
			effector.NewParam("STAGE", 1, maxPhaserStages/2, 2, 1),
			effector.NewParam("DEPTH", 0, 100, 70, 1),
			effector.NewParam("FEEDBACK", 0, 90, 30, 1).WithUnit("%"),
			mixParam(50),
		),
		lfo:        osc.NewTriangle(cfg.SampleRate, phaserRateMin),
		sampleRate: cfg.SampleRate,
	}
	for i := range p.stages {
		p.stages[i] = *onepole.NewAllPass(cfg.SampleRate, phaserFreqMin)
	}
	p.OnUpdate(p.update)
	return p, nil
}

func (p *Phaser) update(n int) {
	switch n {
	case PhaserLevel:
		p.level = core.DBToGain(p.Value(PhaserLevel))
	case PhaserRate:
		p.lfo.Set(core.LogScale(p.Value(PhaserRate), phaserRateMin, phaserRateMax))
	case PhaserStage:
		p.active = min(2*p.Param(PhaserStage).Int(), maxPhaserStages)
	case PhaserDepth:
		p.sweep = phaserSweepOctaves * p.Value(PhaserDepth) / 100
	case PhaserFeedback:
		p.feedback = p.Value(PhaserFeedback) / 100
	case PhaserMix:
		p.wet = core.MixPot(p.Value(PhaserMix), mixFloorDB)
		p.dry = core.MixPot(100-p.Value(PhaserMix), mixFloorDB)
	}
}

// Stages returns the number of all-pass stages in use.
func (p *Phaser) Stages() int { return p.active }

// ValueText shows STAGE as the number of all-pass stages it selects.
func (p *Phaser) ValueText(n int) string {
	if n == PhaserStage {
		return strconv.Itoa(p.active)
	}
	return p.Base.ValueText(n)
}

// Process phases left and mirrors it to right.
func (p *Phaser) Process(left, right []float64) {
	if !p.Begin(left, right) {
		return
	}
	for i, x := range left {
		pos := 0.5 * (p.lfo.Next() + 1)
		freq := phaserFreqMin * math.Exp2(p.sweep*pos)
		a := onepole.AllPassCoef(freq, p.sampleRate)

		y := x + p.feedback*p.last
		for k := 0; k < p.active; k++ {
			p.stages[k].SetCoef(a)
			y = p.stages[k].Process(y)
		}
		p.last = core.FlushDenormals(y)
		left[i] = p.level * (p.dry*x + p.wet*y)
	}
	core.Mirror(left, right)
	p.End(left, right)
}
