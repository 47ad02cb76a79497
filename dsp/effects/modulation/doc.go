// Package modulation provides the time-varying effects of the pedal.
//
// Included effects:
//   - AutoWah: envelope follower sweeping a resonant band-pass.
//   - Chorus: stereo modulated delay with opposite LFO phases per side.
//   - Tremolo: LFO amplitude modulation with a triangle-to-square shape.
//   - Phaser: swept all-pass cascade with feedback.
package modulation
