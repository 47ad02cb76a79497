package effector

import (
	"fmt"
	"math"
)

// ID identifies an effect type. The numeric values are stored in patches
// and must not change.
type ID uint8

const (
	IDBypass ID = iota
	IDBooster
	IDOverDrive
	IDDistortion
	IDCompressor
	IDAutoWah
	IDChorus
	IDTremolo
	IDPhaser
	IDDelayRam
	IDDelaySpi
	IDReverb
	IDBqFilter
	IDOscillator
	IDTuner

	// IDCount is the number of effect types.
	IDCount
)

var idNames = [IDCount]string{
	IDBypass:     "Bypass",
	IDBooster:    "Booster",
	IDOverDrive:  "OverDrive",
	IDDistortion: "Distortion",
	IDCompressor: "Compressor",
	IDAutoWah:    "AutoWah",
	IDChorus:     "Chorus",
	IDTremolo:    "Tremolo",
	IDPhaser:     "Phaser",
	IDDelayRam:   "DelayRam",
	IDDelaySpi:   "DelaySpi",
	IDReverb:     "Reverb",
	IDBqFilter:   "BqFilter",
	IDOscillator: "Oscillator",
	IDTuner:      "Tuner",
}

func (id ID) String() string {
	if id < IDCount {
		return idNames[id]
	}
	return fmt.Sprintf("ID(%d)", uint8(id))
}

// Category groups effect types for browsing.
type Category uint8

const (
	CategoryUtility Category = iota
	CategoryDrive
	CategoryDynamics
	CategoryFilter
	CategoryModulation
	CategoryDelay
	CategoryReverb
)

func (c Category) String() string {
	switch c {
	case CategoryUtility:
		return "utility"
	case CategoryDrive:
		return "drive"
	case CategoryDynamics:
		return "dynamics"
	case CategoryFilter:
		return "filter"
	case CategoryModulation:
		return "modulation"
	case CategoryDelay:
		return "delay"
	case CategoryReverb:
		return "reverb"
	default:
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
}

// Category returns the group id belongs to.
func (id ID) Category() Category {
	switch id {
	case IDBooster, IDOverDrive, IDDistortion:
		return CategoryDrive
	case IDCompressor:
		return CategoryDynamics
	case IDAutoWah, IDBqFilter:
		return CategoryFilter
	case IDChorus, IDTremolo, IDPhaser:
		return CategoryModulation
	case IDDelayRam, IDDelaySpi:
		return CategoryDelay
	case IDReverb:
		return CategoryReverb
	default:
		return CategoryUtility
	}
}

// Color is the LED color shown while an effect is selected.
type Color struct {
	R, G, B uint8
}

// Vector is one accelerometer reading.
type Vector struct {
	X, Y, Z float64
}

// TiltRatio maps the forward tilt of v to [0, 1]: 0.5 when level, 0 and 1
// when tipped a quarter turn either way.
func (v Vector) TiltRatio() float64 {
	if v.X == 0 && v.Z == 0 {
		return 0.5
	}
	r := 0.5 + math.Atan2(v.X, v.Z)/math.Pi
	return math.Min(math.Max(r, 0), 1)
}
