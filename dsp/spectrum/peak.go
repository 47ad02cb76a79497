package spectrum

import (
	"math"

	"github.com/cwbudde/algo-pedal/dsp/core"
)

// Spectrum is a one-sided amplitude spectrum. Amplitude[k] is the
// amplitude of a sine at k*BinWidth Hz.
type Spectrum struct {
	BinWidth  float64
	Amplitude []float64
}

// Peak describes the strongest component of a spectrum.
type Peak struct {
	Frequency float64
	Amplitude float64
	LevelDB   float64
}

// Frequency returns the center frequency of bin k.
func (s Spectrum) Frequency(k int) float64 { return float64(k) * s.BinWidth }

// Bin returns the bin nearest freq, clamped into range.
func (s Spectrum) Bin(freq float64) int {
	k := int(math.Round(freq / s.BinWidth))
	return max(0, min(k, len(s.Amplitude)-1))
}

// Level returns the largest amplitude within one bin of freq.
func (s Spectrum) Level(freq float64) float64 {
	k := s.Bin(freq)
	level := 0.0
	for i := max(k-1, 0); i <= min(k+1, len(s.Amplitude)-1); i++ {
		level = math.Max(level, s.Amplitude[i])
	}
	return level
}

// Peak returns the strongest non-DC component, interpolated between bins.
func (s Spectrum) Peak() Peak {
	if len(s.Amplitude) < 3 {
		return Peak{LevelDB: math.Inf(-1)}
	}
	k := 1
	for i := 2; i < len(s.Amplitude)-1; i++ {
		if s.Amplitude[i] > s.Amplitude[k] {
			k = i
		}
	}
	if s.Amplitude[k] == 0 {
		return Peak{LevelDB: math.Inf(-1)}
	}

	a := db(s.Amplitude[k-1])
	b := db(s.Amplitude[k])
	c := db(s.Amplitude[k+1])
	p := 0.0
	if den := a - 2*b + c; den < 0 {
		p = 0.5 * (a - c) / den
	}
	level := b - 0.25*(a-c)*p

	return Peak{
		Frequency: (float64(k) + p) * s.BinWidth,
		Amplitude: math.Pow(10, level/20),
		LevelDB:   level,
	}
}

// db floors silence at -300 dB so neighbors of an isolated bin stay finite.
func db(x float64) float64 {
	return 20 * math.Log10(math.Max(x, 1e-15))
}

// DBFS converts an amplitude to dBFS with the pedal's gain law.
func DBFS(amplitude float64) float64 {
	return core.GainToDB(core.Clamp(amplitude, 1e-5, 1))
}
