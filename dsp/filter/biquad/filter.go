package biquad

// Type selects the response designed by Filter.SetCoef.
type Type int

// Filter types, in the order the equalizer control steps through them.
const (
	TypeOff Type = iota
	TypePeaking
	TypeLowShelf
	TypeHighShelf
	TypeLowPass
	TypeHighPass
	TypeBandPass
	TypeNotch
	TypeAllPass

	typeCount
)

var typeNames = [typeCount]string{
	TypeOff:       "OFF",
	TypePeaking:   "PEAKING",
	TypeLowShelf:  "LOWSHELF",
	TypeHighShelf: "HIGHSHELF",
	TypeLowPass:   "LPF",
	TypeHighPass:  "HPF",
	TypeBandPass:  "BPF",
	TypeNotch:     "NOTCH",
	TypeAllPass:   "APF",
}

// TypeCount is the number of selectable filter types.
const TypeCount = int(typeCount)

// String returns the short display name of t.
func (t Type) String() string {
	if t < 0 || t >= typeCount {
		return "?"
	}
	return typeNames[t]
}

// Filter is a biquad whose coefficients are designed from a type, center
// frequency, Q and gain.
type Filter struct {
	Section

	sampleRate float64
	typ        Type
	freq       float64
	q          float64
	gainDB     float64
}

// NewFilter returns a pass-through filter for sampleRate.
func NewFilter(sampleRate float64) *Filter {
	return &Filter{
		Section:    Section{Coefficients: Passthrough()},
		sampleRate: sampleRate,
		q:          defaultQ,
	}
}

// SetCoef redesigns the filter. The delay-line state is kept so a control
// sweep does not click.
func (f *Filter) SetCoef(typ Type, freq, q, gainDB float64) {
	f.typ = typ
	f.freq = freq
	f.q = q
	f.gainDB = gainDB
	f.Coefficients = Design(typ, freq, q, gainDB, f.sampleRate)
}

// Process filters one sample.
func (f *Filter) Process(x float64) float64 {
	return f.ProcessSample(x)
}

// Type returns the current filter type.
func (f *Filter) Type() Type { return f.typ }

// Freq returns the current center or cutoff frequency in Hz.
func (f *Filter) Freq() float64 { return f.freq }

// Q returns the current quality factor.
func (f *Filter) Q() float64 { return f.q }

// GainDB returns the current gain in dB used by peaking and shelf types.
func (f *Filter) GainDB() float64 { return f.gainDB }

// Design returns the coefficients for typ. Unknown types and TypeOff give a
// pass-through.
func Design(typ Type, freq, q, gainDB, sampleRate float64) Coefficients {
	switch typ {
	case TypePeaking:
		return Peak(freq, gainDB, q, sampleRate)
	case TypeLowShelf:
		return LowShelf(freq, gainDB, q, sampleRate)
	case TypeHighShelf:
		return HighShelf(freq, gainDB, q, sampleRate)
	case TypeLowPass:
		return Lowpass(freq, q, sampleRate)
	case TypeHighPass:
		return Highpass(freq, q, sampleRate)
	case TypeBandPass:
		return Bandpass(freq, q, sampleRate)
	case TypeNotch:
		return Notch(freq, q, sampleRate)
	case TypeAllPass:
		return Allpass(freq, q, sampleRate)
	default:
		return Passthrough()
	}
}
