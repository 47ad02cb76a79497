// Package testutil holds deterministic test signals and tolerance helpers
// shared by the pedal packages.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at pos.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Stereo returns two independent copies of x, ready to be handed to an
// in-place stereo processor.
func Stereo(x []float64) (left, right []float64) {
	left = append([]float64(nil), x...)
	right = append([]float64(nil), x...)
	return left, right
}

// RenderBlocks feeds in through process in blocks of blockSize samples and
// returns the processed left and right channels.
func RenderBlocks(in []float64, blockSize int, process func(left, right []float64)) (left, right []float64) {
	left, right = Stereo(in)
	for start := 0; start < len(in); start += blockSize {
		end := min(start+blockSize, len(in))
		process(left[start:end], right[start:end])
	}
	return left, right
}

// RMS returns the root-mean-square level of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

// Peak returns the largest absolute sample of x.
func Peak(x []float64) float64 {
	peak := 0.0
	for _, v := range x {
		peak = math.Max(peak, math.Abs(v))
	}
	return peak
}
