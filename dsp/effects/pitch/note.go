package pitch

import (
	"math"
	"strconv"
)

// ConcertA is the reference pitch of A4 in Hz.
const ConcertA = 440.0

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteOf returns the equal-tempered note nearest freq, its octave in
// scientific pitch notation and the deviation in cents. It returns an empty
// name for freq <= 0.
func NoteOf(freq float64) (name string, octave int, cents float64) {
	if !(freq > 0) || math.IsInf(freq, 0) {
		return "", 0, 0
	}
	midi := 69 + 12*math.Log2(freq/ConcertA)
	n := int(math.Round(midi))
	cents = (midi - float64(n)) * 100
	idx := ((n % 12) + 12) % 12
	octave = (n-idx)/12 - 1
	return noteNames[idx], octave, cents
}

// NoteText formats freq as a note with octave, such as "A2".
func NoteText(freq float64) string {
	name, octave, _ := NoteOf(freq)
	if name == "" {
		return ""
	}
	return name + strconv.Itoa(octave)
}
