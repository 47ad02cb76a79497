package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrSize is returned for a frame size that is not a power of two >= 16.
var ErrSize = errors.New("spectrum: frame size must be a power of two >= 16")

// Analyzer computes amplitude spectra of fixed-size frames.
type Analyzer struct {
	size       int
	sampleRate float64

	plan   *algofft.Plan[complex128]
	window []float64
	scale  float64

	frame []float64
	in    []complex128
	out   []complex128
	re    []float64
	im    []float64
	mag   []float64
}

// NewAnalyzer returns an analyzer for frames of size samples.
func NewAnalyzer(size int, sampleRate float64) (*Analyzer, error) {
	if size < 16 || bits.OnesCount(uint(size)) != 1 {
		return nil, fmt.Errorf("%w: %d", ErrSize, size)
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("spectrum: sample rate must be > 0: %f", sampleRate)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	a := &Analyzer{
		size:       size,
		sampleRate: sampleRate,
		plan:       plan,
		window:     hann(size),
		frame:      make([]float64, size),
		in:         make([]complex128, size),
		out:        make([]complex128, size),
		re:         make([]float64, size/2+1),
		im:         make([]float64, size/2+1),
		mag:        make([]float64, size/2+1),
	}

	sum := 0.0
	for _, w := range a.window {
		sum += w
	}
	a.scale = 2 / sum

	return a, nil
}

// hann returns the periodic Hann window, the FFT framing form.
func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

// Size returns the frame size.
func (a *Analyzer) Size() int { return a.size }

// BinWidth returns the frequency spacing of the bins in Hz.
func (a *Analyzer) BinWidth() float64 { return a.sampleRate / float64(a.size) }

// Analyze returns the amplitude spectrum of the first Size samples of x.
// Shorter input is zero-padded.
func (a *Analyzer) Analyze(x []float64) (Spectrum, error) {
	s := Spectrum{BinWidth: a.BinWidth(), Amplitude: make([]float64, a.size/2+1)}
	if err := a.accumulate(s.Amplitude, x); err != nil {
		return Spectrum{}, err
	}
	return s, nil
}

// Average returns the mean amplitude spectrum of x over frames with 50 %
// overlap. A signal shorter than one frame is analyzed as a single
// zero-padded frame.
func (a *Analyzer) Average(x []float64) (Spectrum, error) {
	s := Spectrum{BinWidth: a.BinWidth(), Amplitude: make([]float64, a.size/2+1)}
	hop := a.size / 2
	frames := 0
	for start := 0; frames == 0 || start+a.size <= len(x); start += hop {
		if err := a.accumulate(s.Amplitude, x[start:]); err != nil {
			return Spectrum{}, err
		}
		frames++
	}
	vecmath.ScaleBlockInPlace(s.Amplitude, 1/float64(frames))
	return s, nil
}

// accumulate adds the amplitude spectrum of x's first frame to dst.
func (a *Analyzer) accumulate(dst, x []float64) error {
	n := copy(a.frame, x)
	clear(a.frame[n:])
	vecmath.MulBlockInPlace(a.frame, a.window)
	for i, v := range a.frame {
		a.in[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return fmt.Errorf("spectrum: forward transform: %w", err)
	}

	for k := range a.re {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}
	vecmath.Magnitude(a.mag, a.re, a.im)
	vecmath.ScaleBlockInPlace(a.mag, a.scale)
	// DC and Nyquist have no mirrored bin.
	a.mag[0] /= 2
	a.mag[len(a.mag)-1] /= 2
	vecmath.AddBlockInPlace(dst, a.mag)
	return nil
}
