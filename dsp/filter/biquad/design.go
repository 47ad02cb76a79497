package biquad

import "math"

const defaultQ = 1 / math.Sqrt2

// Lowpass designs an RBJ low-pass biquad at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) Coefficients {
	cw, alpha, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return Passthrough()
	}

	b1 := 1 - cw
	return normalizeBiquad(b1/2, b1, b1/2, 1+alpha, -2*cw, 1-alpha)
}

// Highpass designs an RBJ high-pass biquad at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) Coefficients {
	cw, alpha, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return Passthrough()
	}

	b1 := 1 + cw
	return normalizeBiquad(b1/2, -b1, b1/2, 1+alpha, -2*cw, 1-alpha)
}

// Bandpass designs a constant 0 dB peak gain band-pass biquad.
func Bandpass(freq, q, sampleRate float64) Coefficients {
	cw, alpha, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return Passthrough()
	}

	return normalizeBiquad(alpha, 0, -alpha, 1+alpha, -2*cw, 1-alpha)
}

// Notch designs a notch biquad centered at freq (Hz).
func Notch(freq, q, sampleRate float64) Coefficients {
	cw, alpha, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return Passthrough()
	}

	return normalizeBiquad(1, -2*cw, 1, 1+alpha, -2*cw, 1-alpha)
}

// Allpass designs an allpass biquad centered at freq (Hz).
func Allpass(freq, q, sampleRate float64) Coefficients {
	cw, alpha, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return Passthrough()
	}

	return normalizeBiquad(1-alpha, -2*cw, 1+alpha, 1+alpha, -2*cw, 1-alpha)
}

// Peak designs a peaking-EQ biquad with gain in dB.
func Peak(freq, gainDB, q, sampleRate float64) Coefficients {
	cw, alpha, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return Passthrough()
	}

	a := math.Pow(10, gainDB/40)
	return normalizeBiquad(1+alpha*a, -2*cw, 1-alpha*a, 1+alpha/a, -2*cw, 1-alpha/a)
}

// LowShelf designs a low-shelf biquad with gain in dB.
func LowShelf(freq, gainDB, q, sampleRate float64) Coefficients {
	cw, alpha, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return Passthrough()
	}

	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) - (a-1)*cw + beta)
	b1 := 2 * a * ((a - 1) - (a+1)*cw)
	b2 := a * ((a + 1) - (a-1)*cw - beta)
	a0 := (a + 1) + (a-1)*cw + beta
	a1 := -2 * ((a - 1) + (a+1)*cw)
	a2 := (a + 1) + (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// HighShelf designs a high-shelf biquad with gain in dB.
func HighShelf(freq, gainDB, q, sampleRate float64) Coefficients {
	cw, alpha, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return Passthrough()
	}

	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) + (a-1)*cw + beta)
	b1 := -2 * a * ((a - 1) + (a+1)*cw)
	b2 := a * ((a + 1) + (a-1)*cw - beta)
	a0 := (a + 1) - (a-1)*cw + beta
	a1 := 2 * ((a - 1) - (a+1)*cw)
	a2 := (a + 1) - (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// prewarp returns cos(w0) and alpha = sin(w0)/(2q). Frequencies at or above
// Nyquist are pulled just below it so a swept control never disables the
// filter abruptly.
func prewarp(freq, q, sampleRate float64) (cw, alpha float64, ok bool) {
	if !(sampleRate > 0) || !(freq > 0) || math.IsInf(freq, 0) {
		return 0, 0, false
	}

	nyquist := sampleRate / 2
	if freq > 0.99*nyquist {
		freq = 0.99 * nyquist
	}
	if !(q > 0) || math.IsInf(q, 0) {
		q = defaultQ
	}

	w0 := 2 * math.Pi * freq / sampleRate
	return math.Cos(w0), math.Sin(w0) / (2 * q), true
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return Passthrough()
	}

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
