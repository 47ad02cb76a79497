package effects

import "github.com/cwbudde/algo-pedal/dsp/effector"

// Bypass passes audio through unchanged. Every chain slot starts with one.
type Bypass struct {
	*effector.Base
}

// NewBypass returns a Bypass.
func NewBypass() *Bypass {
	return &Bypass{Base: effector.NewBase(effector.IDBypass, "BYPASS", effector.Color{}, 0)}
}

// Process leaves left and right untouched.
func (b *Bypass) Process(left, right []float64) {}
