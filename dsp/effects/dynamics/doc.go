// Package dynamics provides the pedal's compressor.
//
// The compressor follows the signal level with a rectifying low-pass
// detector, computes a soft-knee gain reduction in dB and smooths it with
// separate attack and release time constants.
package dynamics
