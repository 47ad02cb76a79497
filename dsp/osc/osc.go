// Package osc provides free-running LFO and tone generators.
//
// Sawtooth is the phase accumulator; Triangle and Sine derive their output
// from the same phase so all three stay in lock step when retuned.
package osc

import "math"

// Sawtooth generates a rising ramp in [0, 1).
type Sawtooth struct {
	sampleRate float64
	freq       float64
	inc        float64
	phase      float64
}

// NewSawtooth returns a sawtooth at freq Hz starting at phase 0.
func NewSawtooth(sampleRate, freq float64) *Sawtooth {
	s := &Sawtooth{sampleRate: sampleRate}
	s.Set(freq)
	return s
}

// Set changes the frequency without touching the phase.
func (s *Sawtooth) Set(freq float64) {
	s.freq = freq
	if s.sampleRate > 0 {
		s.inc = freq / s.sampleRate
	}
}

// SetPhase changes the frequency and restarts at phase in [0, 1).
func (s *Sawtooth) SetPhase(freq, phase float64) {
	s.Set(freq)
	phase -= math.Floor(phase)
	s.phase = phase
}

// Freq returns the frequency in Hz.
func (s *Sawtooth) Freq() float64 { return s.freq }

// Phase returns the current phase in [0, 1).
func (s *Sawtooth) Phase() float64 { return s.phase }

// Next advances by one sample and returns the new phase.
func (s *Sawtooth) Next() float64 {
	s.phase += s.inc
	if s.phase >= 1 {
		s.phase -= 1
	}
	return s.phase
}

// Triangle generates a triangle wave in [-1, 1].
type Triangle struct {
	Sawtooth
}

// NewTriangle returns a triangle at freq Hz.
func NewTriangle(sampleRate, freq float64) *Triangle {
	t := &Triangle{Sawtooth: Sawtooth{sampleRate: sampleRate}}
	t.Set(freq)
	return t
}

// Next advances by one sample. Phase 0 maps to -1 and phase 0.5 to +1.
func (t *Triangle) Next() float64 {
	return fold(t.Sawtooth.Next())
}

// Value returns the output at the current phase without advancing.
func (t *Triangle) Value() float64 {
	return fold(t.phase)
}

func fold(p float64) float64 {
	if p < 0.5 {
		return 4*p - 1
	}
	return 3 - 4*p
}

// Sine generates sin(2*pi*phase).
type Sine struct {
	Sawtooth
}

// NewSine returns a sine at freq Hz.
func NewSine(sampleRate, freq float64) *Sine {
	s := &Sine{Sawtooth: Sawtooth{sampleRate: sampleRate}}
	s.Set(freq)
	return s
}

// Next advances by one sample.
func (s *Sine) Next() float64 {
	return math.Sin(2 * math.Pi * s.Sawtooth.Next())
}
