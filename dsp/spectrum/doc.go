// Package spectrum measures rendered pedal output in the frequency domain.
//
// An Analyzer windows a frame with a periodic Hann window, transforms it
// with algo-fft and reports per-bin amplitudes scaled so that a full-scale
// sine reads 1. Peak refines the strongest bin by parabolic interpolation
// of the dB magnitudes.
package spectrum
