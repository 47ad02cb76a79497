// Package onepole provides the cheap fixed-topology filters used inside the
// effects: one-pole low/high-pass, a second-order low-pass and a first-order
// all-pass. Each has Set to recompute its coefficient and Process to run one
// sample through its persistent state.
package onepole

import (
	"math"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/filter/biquad"
)

// LowPass is a one-pole low-pass: y += k*(x - y).
type LowPass struct {
	sampleRate float64
	cutoff     float64
	k          float64
	y          float64
}

// NewLowPass returns a low-pass at cutoff Hz.
func NewLowPass(sampleRate, cutoff float64) *LowPass {
	f := &LowPass{sampleRate: sampleRate}
	f.Set(cutoff)
	return f
}

// Set recomputes the coefficient for cutoff Hz.
func (f *LowPass) Set(cutoff float64) {
	f.cutoff = cutoff
	f.k = onePoleCoef(cutoff, f.sampleRate)
}

// Cutoff returns the cutoff frequency in Hz.
func (f *LowPass) Cutoff() float64 { return f.cutoff }

// Process filters one sample.
func (f *LowPass) Process(x float64) float64 {
	f.y = core.FlushDenormals(f.y + f.k*(x-f.y))
	return f.y
}

// Reset clears the filter state.
func (f *LowPass) Reset() { f.y = 0 }

// HighPass is the complement of LowPass: y = x - lowpass(x).
type HighPass struct {
	lp LowPass
}

// NewHighPass returns a high-pass at cutoff Hz.
func NewHighPass(sampleRate, cutoff float64) *HighPass {
	f := &HighPass{lp: LowPass{sampleRate: sampleRate}}
	f.Set(cutoff)
	return f
}

// Set recomputes the coefficient for cutoff Hz.
func (f *HighPass) Set(cutoff float64) { f.lp.Set(cutoff) }

// Cutoff returns the cutoff frequency in Hz.
func (f *HighPass) Cutoff() float64 { return f.lp.cutoff }

// Process filters one sample.
func (f *HighPass) Process(x float64) float64 {
	return x - f.lp.Process(x)
}

// Reset clears the filter state.
func (f *HighPass) Reset() { f.lp.Reset() }

// LowPass2 is a second-order Butterworth low-pass.
type LowPass2 struct {
	biquad.Section

	sampleRate float64
	cutoff     float64
}

// NewLowPass2 returns a second-order low-pass at cutoff Hz.
func NewLowPass2(sampleRate, cutoff float64) *LowPass2 {
	f := &LowPass2{sampleRate: sampleRate}
	f.Set(cutoff)
	return f
}

// Set redesigns the filter for cutoff Hz.
func (f *LowPass2) Set(cutoff float64) {
	f.cutoff = cutoff
	f.Coefficients = biquad.Lowpass(cutoff, 1/math.Sqrt2, f.sampleRate)
}

// Cutoff returns the cutoff frequency in Hz.
func (f *LowPass2) Cutoff() float64 { return f.cutoff }

// Process filters one sample.
func (f *LowPass2) Process(x float64) float64 {
	return f.ProcessSample(x)
}

// AllPass is a first-order all-pass with unity magnitude and 90 degrees of
// phase shift at its corner frequency.
type AllPass struct {
	sampleRate float64
	a          float64
	x1, y1     float64
}

// NewAllPass returns an all-pass with its corner at freq Hz.
func NewAllPass(sampleRate, freq float64) *AllPass {
	f := &AllPass{sampleRate: sampleRate}
	f.Set(freq)
	return f
}

// Set recomputes the coefficient for freq Hz.
func (f *AllPass) Set(freq float64) {
	f.a = AllPassCoef(freq, f.sampleRate)
}

// SetCoef sets the coefficient directly. Cascades that share one modulated
// corner compute it once with AllPassCoef and hand it to every stage.
func (f *AllPass) SetCoef(a float64) { f.a = a }

// Process filters one sample.
func (f *AllPass) Process(x float64) float64 {
	y := f.a*x + f.x1 - f.a*f.y1
	f.x1 = x
	f.y1 = core.FlushDenormals(y)
	return y
}

// Reset clears the filter state.
func (f *AllPass) Reset() {
	f.x1 = 0
	f.y1 = 0
}

// AllPassCoef returns (t-1)/(t+1) with t = tan(pi*freq/fs).
func AllPassCoef(freq, sampleRate float64) float64 {
	freq = core.Clamp(freq, 1, 0.49*sampleRate)
	t := math.Tan(math.Pi * freq / sampleRate)
	return (t - 1) / (t + 1)
}

func onePoleCoef(cutoff, sampleRate float64) float64 {
	if !(sampleRate > 0) || !(cutoff > 0) {
		return 1
	}
	return 1 - math.Exp(-2*math.Pi*cutoff/sampleRate)
}
