// Package effector defines the contract every pedal effect implements and
// the pieces they share: the parameter model, motion-sensor linking and the
// click-free on/off crossfade.
//
// A concrete effect embeds *Base, registers an update hook that recomputes
// its DSP coefficients from a parameter, and implements Process. Every
// mutating call on Base runs the hook synchronously, so coefficients always
// match the parameter values and Process never has to check for changes.
package effector
