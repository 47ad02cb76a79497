package effects

import (
	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/dsp/osc"
)

// Oscillator parameter indices.
const (
	OscillatorWave = iota
	OscillatorFreq
	OscillatorLevel
)

// Oscillator waveforms.
const (
	WaveSaw = iota
	WaveTriangle
	WaveSine
)

var waveNames = [...]string{"SAW", "TRI", "SINE"}

// Oscillator replaces the input with a test tone.
type Oscillator struct {
	*effector.Base

	saw   *osc.Sawtooth
	tri   *osc.Triangle
	sine  *osc.Sine
	next  func() float64
	level float64
}

// NewOscillator returns a 440 Hz sine at -20 dB.
func NewOscillator(cfg core.ProcessorConfig) (*Oscillator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := &Oscillator{
		Base: effector.NewBase(effector.IDOscillator, "OSCILLATOR", effector.Color{R: 128, G: 128, B: 128}, cfg.BlockSize,
			effector.NewParam("WAVE", WaveSaw, WaveSine, WaveSine, 1),
			effector.NewParam("FREQ", 20, 2000, 440, 1).WithUnit("Hz"),
			effector.NewParam("LEVEL", -60, 0, -20, 1).WithUnit("dB"),
		),
		saw:  osc.NewSawtooth(cfg.SampleRate, 440),
		tri:  osc.NewTriangle(cfg.SampleRate, 440),
		sine: osc.NewSine(cfg.SampleRate, 440),
	}
	o.OnUpdate(o.update)
	return o, nil
}

func (o *Oscillator) update(n int) {
	switch n {
	case OscillatorWave:
		switch o.Param(OscillatorWave).Int() {
		case WaveSaw:
			o.next = o.nextSaw
		case WaveTriangle:
			o.next = o.tri.Next
		default:
			o.next = o.sine.Next
		}
	case OscillatorFreq:
		f := o.Value(OscillatorFreq)
		o.saw.Set(f)
		o.tri.Set(f)
		o.sine.Set(f)
	case OscillatorLevel:
		o.level = core.DBToGain(o.Value(OscillatorLevel))
	}
}

// nextSaw centres the sawtooth ramp on zero.
func (o *Oscillator) nextSaw() float64 {
	return 2*o.saw.Next() - 1
}

// ValueText names the waveform.
func (o *Oscillator) ValueText(n int) string {
	if n == OscillatorWave {
		return waveNames[o.Param(OscillatorWave).Int()]
	}
	return o.Base.ValueText(n)
}

// Process writes the tone to both channels.
func (o *Oscillator) Process(left, right []float64) {
	if !o.Begin(left, right) {
		return
	}
	for i := range left {
		left[i] = o.level * o.next()
	}
	core.Mirror(left, right)
	o.End(left, right)
}
