package effects

import (
	"strconv"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/dsp/filter/biquad"
)

// BqFilter parameter indices.
const (
	BqFilterType = iota
	BqFilterFreq
	BqFilterQ
	BqFilterGain
	BqFilterLevel
)

const (
	bqFreqMin = 20.0
	bqFreqMax = 20000.0
)

// BqFilter exposes one biquad of any type as an effect.
type BqFilter struct {
	*effector.Base

	filter *biquad.Filter
	level  float64
}

// NewBqFilter returns a peaking filter at 632 Hz with flat gain.
func NewBqFilter(cfg core.ProcessorConfig) (*BqFilter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f := &BqFilter{
		Base: effector.NewBase(effector.IDBqFilter, "BQ FILTER", effector.Color{G: 160, B: 255}, cfg.BlockSize,
			effector.NewParam("TYPE", 0, float64(biquad.TypeCount-1), float64(biquad.TypePeaking), 1),
			effector.NewParam("FREQ", 0, 100, 50, 1),
			effector.NewParam("Q", 0.1, 10, 0.7, 0.1),
			effector.NewParam("GAIN", -15, 15, 0, 1).WithUnit("dB"),
			effector.NewParam("LEVEL", -20, 20, 0, 1).WithUnit("dB"),
		),
		filter: biquad.NewFilter(cfg.SampleRate),
	}
	f.OnUpdate(f.update)
	return f, nil
}

func (f *BqFilter) update(n int) {
	if n == BqFilterLevel {
		f.level = core.DBToGain(f.Value(BqFilterLevel))
		return
	}
	f.filter.SetCoef(f.FilterType(), f.Frequency(), f.Value(BqFilterQ), f.Value(BqFilterGain))
}

// FilterType returns the selected response.
func (f *BqFilter) FilterType() biquad.Type {
	return biquad.Type(f.Param(BqFilterType).Int())
}

// Frequency returns the corner or center frequency in Hz.
func (f *BqFilter) Frequency() float64 {
	return core.LogScale(f.Value(BqFilterFreq), bqFreqMin, bqFreqMax)
}

// ValueText shows the type name and the frequency in Hz.
func (f *BqFilter) ValueText(n int) string {
	switch n {
	case BqFilterType:
		return f.FilterType().String()
	case BqFilterFreq:
		return strconv.FormatFloat(f.Frequency(), 'f', 0, 64) + "Hz"
	default:
		return f.Base.ValueText(n)
	}
}

// Process filters left and mirrors it to right.
func (f *BqFilter) Process(left, right []float64) {
	if !f.Begin(left, right) {
		return
	}
	f.filter.ProcessBlock(left)
	vecmath.ScaleBlockInPlace(left, f.level)
	core.Mirror(left, right)
	f.End(left, right)
}
