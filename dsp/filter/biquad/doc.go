// Package biquad provides second-order IIR filter sections and the
// configurable Filter used by the pedal's equalizer and wah stages.
//
// A [Section] implements Direct Form II Transposed processing for one set of
// [Coefficients]. [Filter] wraps a Section with a [Type], center frequency,
// Q and gain, and redesigns the coefficients with the RBJ cookbook formulas
// whenever one of them changes.
package biquad
