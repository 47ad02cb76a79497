package effector

import (
	"math"
	"strconv"
)

// Param is one user-facing control. Every mutation saturates Value into
// [Min, Max].
type Param struct {
	Name  string
	Unit  string
	Min   float64
	Max   float64
	Value float64
	Step  float64
}

// NewParam returns a parameter with its value saturated into range.
func NewParam(name string, min, max, value, step float64) Param {
	p := Param{Name: name, Min: min, Max: max, Step: step}
	p.Set(value)
	return p
}

// WithUnit returns p with a display unit appended to its value text.
func (p Param) WithUnit(unit string) Param {
	p.Unit = unit
	return p
}

// Set stores v saturated into [Min, Max]. NaN leaves the value unchanged.
func (p *Param) Set(v float64) {
	if math.IsNaN(v) {
		return
	}
	p.Value = math.Min(math.Max(v, p.Min), p.Max)
}

// Increment adds one step.
func (p *Param) Increment() { p.Set(p.Value + p.Step) }

// Decrement subtracts one step.
func (p *Param) Decrement() { p.Set(p.Value - p.Step) }

// SetRatio maps r in [0, 1] linearly onto [Min, Max]. r is clamped first.
func (p *Param) SetRatio(r float64) {
	if math.IsNaN(r) {
		return
	}
	r = math.Min(math.Max(r, 0), 1)
	p.Set(p.Min + r*(p.Max-p.Min))
}

// Ratio returns the position of Value within [Min, Max].
func (p Param) Ratio() float64 {
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

// Int returns Value rounded to the nearest integer, for enumerated controls.
func (p Param) Int() int {
	return int(math.Round(p.Value))
}

// Text formats Value with as many decimals as Step needs, followed by Unit.
func (p Param) Text() string {
	s := strconv.FormatFloat(p.Value, 'f', decimals(p.Step), 64)
	if p.Unit == "" {
		return s
	}
	return s + p.Unit
}

func decimals(step float64) int {
	if !(step > 0) || step >= 1 {
		return 0
	}
	return min(int(math.Ceil(-math.Log10(step)-1e-9)), 6)
}
