package effector

const (
	// SwitchRamp is the number of samples a full crossfade takes.
	SwitchRamp = 100
	// SwitchMax is the saturation point of the switch counter.
	SwitchMax = 2 * SwitchRamp
)

// Switch crossfades between the dry and wet signal when an effect is
// turned on or off. A counter moves one step per sample toward SwitchMax
// while active and toward 0 while inactive. Up to SwitchRamp the output
// blends linearly; above it the output is the wet signal only, so short
// off pulses do not dip the level. Switching off from rest therefore holds
// the wet signal for SwitchRamp samples (about 2.2 ms at 44.4 kHz) before
// the ramp down starts.
type Switch struct {
	count int
}

// NewSwitch returns a switch resting fully on or fully off.
func NewSwitch(on bool) Switch {
	var s Switch
	s.Reset(on)
	return s
}

// Reset jumps to the resting state without a ramp.
func (s *Switch) Reset(on bool) {
	if on {
		s.count = SwitchMax
	} else {
		s.count = 0
	}
}

// Count returns the counter value in [0, SwitchMax].
func (s *Switch) Count() int { return s.count }

// Settled reports whether the counter rests at the end active points to.
func (s *Switch) Settled(active bool) bool {
	if active {
		return s.count == SwitchMax
	}
	return s.count == 0
}

// Next advances the counter one step and returns the wet weight in [0, 1].
func (s *Switch) Next(active bool) float64 {
	if active {
		if s.count < SwitchMax {
			s.count++
		}
	} else if s.count > 0 {
		s.count--
	}
	if s.count >= SwitchRamp {
		return 1
	}
	return float64(s.count) / SwitchRamp
}

// Process advances the switch and returns the blend of dry and wet.
func (s *Switch) Process(dry, wet float64, active bool) float64 {
	return Blend(dry, wet, s.Next(active))
}

// Blend returns dry*(1-w) + wet*w, exactly dry at w=0 and exactly wet at
// w=1.
func Blend(dry, wet, w float64) float64 {
	switch {
	case w <= 0:
		return dry
	case w >= 1:
		return wet
	default:
		return dry + w*(wet-dry)
	}
}
