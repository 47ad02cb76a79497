package core

import "math"

const (
	dbTableMin  = -128
	dbTableMax  = 128
	dbTableSize = dbTableMax - dbTableMin + 1

	// mixCrossoverDB is the gain of the mix curve at mid travel.
	mixCrossoverDB = -6.0

	// dbPerNeper converts a natural logarithm of amplitude to dB.
	dbPerNeper = 20 / math.Ln10
)

// dbTable holds DBToGain for every whole dB in [-128, 128].
var dbTable = buildDBTable()

func buildDBTable() [dbTableSize]float64 {
	var t [dbTableSize]float64
	for i := range t {
		t[i] = math.Pow(10, float64(i+dbTableMin)/20)
	}
	return t
}

// DBToGain converts dB to linear amplitude by interpolating a 1 dB table.
//
// Input is clamped to [-128, 128] dB. Between table points the result is
// within 0.015 dB of the exact value.
func DBToGain(db float64) float64 {
	if !(db > dbTableMin) {
		return dbTable[0]
	}
	if db >= dbTableMax {
		return dbTable[dbTableSize-1]
	}
	f := db - dbTableMin
	i := int(f)
	frac := f - float64(i)
	return dbTable[i] + frac*(dbTable[i+1]-dbTable[i])
}

// GainToDB converts a linear amplitude to dB.
//
// The result is accurate for x in [1e-5, 1]. Callers pass values already
// clamped to that range; zero and negative inputs are not defined.
func GainToDB(x float64) float64 {
	return gainToDB(x)
}

// LogPot maps a 0..100 control value linearly in dB between dbMin and dbMax
// and returns the corresponding linear gain.
func LogPot(pot, dbMin, dbMax float64) float64 {
	return DBToGain(dbMin + (dbMax-dbMin)*pot/100)
}

// MixPot maps a 0..100 control value to a 0..1 blend ratio.
//
// The curve runs from dbMin to -6 dB over the first half of travel and from
// -6 dB to 0 dB over the second half. pot <= 0 returns exactly 0 and
// pot >= 100 returns exactly 1. dbMin above -6 dB is treated as -6 dB so the
// curve stays monotone.
func MixPot(pot, dbMin float64) float64 {
	if pot <= 0 {
		return 0
	}
	if pot >= 100 {
		return 1
	}
	if dbMin > mixCrossoverDB {
		dbMin = mixCrossoverDB
	}
	if pot < 50 {
		return DBToGain(dbMin + (mixCrossoverDB-dbMin)*pot/50)
	}
	return DBToGain(mixCrossoverDB - mixCrossoverDB*(pot-50)/50)
}

// LogScale maps a 0..100 control value geometrically onto [lo, hi]. lo may
// exceed hi for controls that sweep downward.
func LogScale(pot, lo, hi float64) float64 {
	pot = Clamp(pot, 0, 100)
	return lo * math.Pow(hi/lo, pot/100)
}
