// Package pitch provides the tuner: a bitstream autocorrelation pitch
// estimator, note naming and the Tuner effect that wraps them.
package pitch
