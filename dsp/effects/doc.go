// Package effects provides the utility and drive effects of the pedal.
//
// Subpackages hold the larger families:
//   - github.com/cwbudde/algo-pedal/dsp/effects/dynamics
//   - github.com/cwbudde/algo-pedal/dsp/effects/modulation
//   - github.com/cwbudde/algo-pedal/dsp/effects/echo
//   - github.com/cwbudde/algo-pedal/dsp/effects/reverb
//   - github.com/cwbudde/algo-pedal/dsp/effects/pitch
//
// Effects in this package:
//   - Bypass: leaves the signal untouched.
//   - Booster: clean gain with bass and treble shelves.
//   - OverDrive: band-limited arctangent saturation.
//   - Distortion: asymmetric quadratic clipping.
//   - BqFilter: one configurable biquad.
//   - Oscillator: test tone generator that replaces the input.
//
// Every effect implements effector.Effector, processes the left channel and
// mirrors its output to the right one.
package effects
