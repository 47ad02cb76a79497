package modulation

import (
	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/delay"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/dsp/filter/onepole"
	"github.com/cwbudde/algo-pedal/dsp/osc"
)

// Chorus parameter indices.
const (
	ChorusLevel = iota
	ChorusMix
	ChorusRate
	ChorusDepth
	ChorusTone
)

const (
	chorusBufferMs = 30.0
	chorusCenterMs = 12.0
	chorusDepthMs  = 5.0
	chorusRateMin  = 0.1
	chorusRateMax  = 10.0
	chorusToneMin  = 1000.0
	chorusToneMax  = 10000.0
)

// Chorus mixes the input with a delayed copy whose delay time follows a
// triangle LFO. The right channel uses the inverted LFO.
type Chorus struct {
	*effector.Base

	line  *delay.Buf[float32]
	lfo   *osc.Triangle
	toneL *onepole.LowPass
	toneR *onepole.LowPass

	sampleRate float64
	level      float64
	dry        float64
	wet        float64
	center     float64
	depth      float64
}

// NewChorus returns a chorus at half mix.
func NewChorus(cfg core.ProcessorConfig) (*Chorus, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	line, err := delay.NewBuf[float32](chorusBufferMs, cfg.SampleRate)
	if err != nil {
		return nil, err
	}
	c := &Chorus{
		Base: effector.NewBase(effector.IDChorus, "CHORUS", effector.Color{B: 255, R: 128}, cfg.BlockSize,
			levelParam(),
			mixParam(50),
			effector.NewParam("RATE", 0, 100, 30, 1),
			effector.NewParam("DEPTH", 0, 100, 50, 1),
			effector.NewParam("TONE", 0, 100, 70, 1),
		),
		line:       line,
		lfo:        osc.NewTriangle(cfg.SampleRate, chorusRateMin),
		toneL:      onepole.NewLowPass(cfg.SampleRate, chorusToneMax),
		toneR:      onepole.NewLowPass(cfg.SampleRate, chorusToneMax),
		sampleRate: cfg.SampleRate,
		center:     chorusCenterMs * cfg.SampleRate / 1000,
	}
	c.OnUpdate(c.update)
	return c, nil
}

func (c *Chorus) update(n int) {
	switch n {
	case ChorusLevel:
		c.level = core.DBToGain(c.Value(ChorusLevel))
	case ChorusMix:
		c.wet = core.MixPot(c.Value(ChorusMix), mixFloorDB)
		c.dry = core.MixPot(100-c.Value(ChorusMix), mixFloorDB)
	case ChorusRate:
		c.lfo.Set(core.LogScale(c.Value(ChorusRate), chorusRateMin, chorusRateMax))
	case ChorusDepth:
		c.depth = chorusDepthMs * c.Value(ChorusDepth) / 100 * c.sampleRate / 1000
	case ChorusTone:
		f := core.LogScale(c.Value(ChorusTone), chorusToneMin, chorusToneMax)
		c.toneL.Set(f)
		c.toneR.Set(f)
	}
}

// Process reads the mono input from left and writes a stereo result.
func (c *Chorus) Process(left, right []float64) {
	if !c.Begin(left, right) {
		return
	}
	for i, x := range left {
		c.line.Write(x)
		mod := c.depth * c.lfo.Next()
		wl := c.toneL.Process(c.line.ReadLerpSamples(c.center + mod))
		wr := c.toneR.Process(c.line.ReadLerpSamples(c.center - mod))
		d := c.dry * x
		left[i] = c.level * (d + c.wet*wl)
		right[i] = c.level * (d + c.wet*wr)
	}
	c.End(left, right)
}
