package modulation

import (
	"math"

	"github.com/cwbudde/algo-pedal/dsp/effector"
)

const mixFloorDB = -20.0

func levelParam() effector.Param {
	return effector.NewParam("LEVEL", -20, 20, 0, 1).WithUnit("dB")
}

func mixParam(value float64) effector.Param {
	return effector.NewParam("MIX", 0, 100, value, 1)
}

// followCoeff returns the per-sample approach rate of a one-pole envelope
// follower with time constant ms.
func followCoeff(ms, sampleRate float64) float64 {
	return 1 - math.Exp(-1000/(ms*sampleRate))
}
