// Package reverb provides the pedal's stereo room reverb.
//
// Reverb feeds a band-limited copy of the input through an early-reflection
// line, a four-line feedback delay network with Householder mixing and two
// damped cross-feedback lines. The left and right outputs are summed from
// disjoint taps so the tail is decorrelated.
package reverb
