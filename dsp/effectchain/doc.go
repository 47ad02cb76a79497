// Package effectchain hosts the pedal's effects: a catalog of effect
// factories, a fixed three-slot serial chain and the patch records used to
// save and restore it.
package effectchain
