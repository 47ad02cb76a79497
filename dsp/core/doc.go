// Package core provides the numeric building blocks shared by every pedal
// effect: dB/gain conversion, potentiometer curves and processor settings.
//
// Gain conversions follow the 20*log10 amplitude convention. DBToGain is
// table driven so it can run per sample without calling math.Pow.
package core
