package delay

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedal/dsp/sram"
)

var probePattern = []byte{0xA5, 0x5A, 0xC3, 0x3C}

// ErrBlockSize reports a block longer than the configured block size.
var ErrBlockSize = errors.New("delay: block too long")

// SPIBuf is a circular delay line stored in external RAM. It moves blocks
// of up to BlockSize samples: Read fetches the samples lying Interval
// behind the write cursor, Write stores a block at the cursor and advances
// it by the block length. Call Read before Write within one audio block,
// with the same length.
type SPIBuf[T Sample] struct {
	ram        sram.Transport
	base       uint32
	capacity   int
	blockSize  int
	sampleRate float64
	pos        int
	interval   int
	ok         bool
	scratch    []byte
}

// NewSPIBuf lays out a line of Capacity(maxTimeMs, sampleRate) samples at
// byte offset base of ram, then probes the device and clears the region.
// A device that fails the probe yields a buffer whose OK reports false;
// only invalid arguments return an error.
func NewSPIBuf[T Sample](ram sram.Transport, base uint32, maxTimeMs, sampleRate float64, blockSize int) (*SPIBuf[T], error) {
	if ram == nil {
		return nil, errors.New("delay: nil transport")
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("delay: sample rate must be > 0 and finite: %v", sampleRate)
	}
	if !(maxTimeMs >= 0) || math.IsInf(maxTimeMs, 0) {
		return nil, fmt.Errorf("delay: max time must be >= 0 and finite: %v", maxTimeMs)
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("delay: block size must be > 0: %d", blockSize)
	}
	capacity := Capacity(maxTimeMs, sampleRate)
	size := SampleSize[T]()
	if int(base)+capacity*size > sram.AddressSpace {
		return nil, fmt.Errorf("delay: %d samples at %#06x exceed the address space", capacity, base)
	}

	b := &SPIBuf[T]{
		ram:        ram,
		base:       base,
		capacity:   capacity,
		blockSize:  blockSize,
		sampleRate: sampleRate,
		interval:   capacity,
		scratch:    make([]byte, blockSize*size),
	}
	b.ok = b.probe() == nil
	return b, nil
}

// probe checks that a pattern survives a round trip, then zeroes the ring.
func (b *SPIBuf[T]) probe() error {
	n := min(len(probePattern), b.capacity*SampleSize[T]())
	if err := b.ram.Transfer(sram.CmdWrite, b.base, probePattern[:n]); err != nil {
		return err
	}
	got := b.scratch[:n]
	if err := b.ram.Transfer(sram.CmdRead, b.base, got); err != nil {
		return err
	}
	if !bytes.Equal(got, probePattern[:n]) {
		return fmt.Errorf("delay: probe read back % x", got)
	}

	clear(b.scratch)
	total := b.capacity * SampleSize[T]()
	for off := 0; off < total; off += len(b.scratch) {
		chunk := b.scratch[:min(len(b.scratch), total-off)]
		if err := b.ram.Transfer(sram.CmdWrite, b.base+uint32(off), chunk); err != nil {
			return err
		}
	}
	return nil
}

// OK reports whether the device passed the construction probe.
func (b *SPIBuf[T]) OK() bool { return b.ok }

// Len returns the capacity in samples.
func (b *SPIBuf[T]) Len() int { return b.capacity }

// BlockSize returns the largest number of samples moved per call.
func (b *SPIBuf[T]) BlockSize() int { return b.blockSize }

// Interval returns the read-behind-write distance in samples.
func (b *SPIBuf[T]) Interval() int { return b.interval }

// SetInterval sets the read-behind-write distance, rounded to whole
// samples and clamped to [1, Len()].
func (b *SPIBuf[T]) SetInterval(ms float64) {
	d := math.Round(ms * b.sampleRate / 1000)
	if !(d >= 1) {
		d = 1
	}
	b.interval = int(math.Min(d, float64(b.capacity)))
}

// Write stores block at the cursor and advances it by len(block).
func (b *SPIBuf[T]) Write(block []float64) error {
	if len(block) > b.blockSize {
		return fmt.Errorf("%w: got %d, max %d", ErrBlockSize, len(block), b.blockSize)
	}
	size := SampleSize[T]()
	payload := b.scratch[:len(block)*size]
	for i, v := range block {
		putSample(payload[i*size:], Encode[T](v))
	}
	if err := b.transfer(sram.CmdWrite, b.pos, payload); err != nil {
		return fmt.Errorf("delay: write block at %d: %w", b.pos, err)
	}
	b.pos = (b.pos + len(block)) % b.capacity
	return nil
}

// Read fills block with the samples Interval behind the cursor. On any
// error the block is zeroed.
func (b *SPIBuf[T]) Read(block []float64) error {
	if len(block) > b.blockSize {
		clear(block)
		return fmt.Errorf("%w: got %d, max %d", ErrBlockSize, len(block), b.blockSize)
	}
	start := b.pos - b.interval
	if start < 0 {
		start += b.capacity
	}
	size := SampleSize[T]()
	payload := b.scratch[:len(block)*size]
	if err := b.transfer(sram.CmdRead, start, payload); err != nil {
		clear(block)
		return fmt.Errorf("delay: read block at %d: %w", start, err)
	}
	for i := range block {
		block[i] = Decode(getSample[T](payload[i*size:]))
	}
	return nil
}

// transfer moves payload to or from the ring starting at sample index
// start, wrapping at the ring end as many times as needed.
func (b *SPIBuf[T]) transfer(cmd sram.Command, start int, payload []byte) error {
	size := SampleSize[T]()
	for len(payload) > 0 {
		n := min(len(payload), (b.capacity-start)*size)
		addr := b.base + uint32(start*size)
		if err := b.ram.Transfer(cmd, addr, payload[:n]); err != nil {
			return err
		}
		payload = payload[n:]
		start = 0
	}
	return nil
}
