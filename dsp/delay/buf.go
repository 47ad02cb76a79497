// Package delay provides the circular buffers behind the echo, chorus and
// reverb effects. Buf keeps its samples in local memory and is read one
// sample at a time. SPIBuf keeps them in external serial RAM and moves whole
// blocks.
package delay

import (
	"fmt"
	"math"
)

// Buf is a circular delay line in local memory.
type Buf[T Sample] struct {
	data       []T
	pos        int
	sampleRate float64
}

// NewBuf returns a line able to delay by up to maxTimeMs.
func NewBuf[T Sample](maxTimeMs, sampleRate float64) (*Buf[T], error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("delay: sample rate must be > 0 and finite: %v", sampleRate)
	}
	if !(maxTimeMs >= 0) || math.IsInf(maxTimeMs, 0) {
		return nil, fmt.Errorf("delay: max time must be >= 0 and finite: %v", maxTimeMs)
	}
	return &Buf[T]{
		data:       make([]T, Capacity(maxTimeMs, sampleRate)),
		sampleRate: sampleRate,
	}, nil
}

// Len returns the capacity in samples.
func (b *Buf[T]) Len() int { return len(b.data) }

// Write stores one sample and advances the cursor.
func (b *Buf[T]) Write(v float64) {
	b.data[b.pos] = Encode[T](v)
	b.pos++
	if b.pos == len(b.data) {
		b.pos = 0
	}
}

// Read returns the sample ms milliseconds behind the cursor, rounded to the
// nearest sample. Delays shorter than one sample return the sample written
// last; delays beyond the capacity return the oldest one.
func (b *Buf[T]) Read(ms float64) float64 {
	return b.ReadSamples(int(math.Round(ms * b.sampleRate / 1000)))
}

// ReadLerp is Read with linear interpolation between neighbouring samples.
func (b *Buf[T]) ReadLerp(ms float64) float64 {
	return b.ReadLerpSamples(ms * b.sampleRate / 1000)
}

// ReadSamples returns the sample d positions behind the cursor, with d
// clamped to [1, Len()].
func (b *Buf[T]) ReadSamples(d int) float64 {
	n := len(b.data)
	d = min(max(d, 1), n)
	i := b.pos - d
	if i < 0 {
		i += n
	}
	return Decode(b.data[i])
}

// ReadLerpSamples reads a fractional delay in samples, clamped to
// [1, Len()].
func (b *Buf[T]) ReadLerpSamples(d float64) float64 {
	n := float64(len(b.data))
	if !(d > 1) {
		return b.ReadSamples(1)
	}
	if d >= n {
		return b.ReadSamples(len(b.data))
	}
	i := math.Floor(d)
	frac := d - i
	a := b.ReadSamples(int(i))
	c := b.ReadSamples(int(i) + 1)
	return a + frac*(c-a)
}

// Reset clears the line.
func (b *Buf[T]) Reset() {
	clear(b.data)
	b.pos = 0
}
