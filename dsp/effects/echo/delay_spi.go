package echo

import (
	"fmt"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/delay"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/dsp/sram"
)

const (
	// DelaySpiMaxMs is the longest echo DelaySpi can hold.
	DelaySpiMaxMs = 1400.0

	// maxSpiFailures is the number of consecutive failed blocks after which
	// DelaySpi reports itself unusable.
	maxSpiFailures = 8
)

// DelaySpiBytes returns the external RAM a DelaySpi occupies at sampleRate.
func DelaySpiBytes(sampleRate float64) int {
	return delay.Capacity(DelaySpiMaxMs, sampleRate) * delay.SampleSize[int16]()
}

// spiStore adapts an external RAM ring to Store.
type spiStore struct {
	*delay.SPIBuf[int16]
}

func (s spiStore) SetTime(ms float64) { s.SetInterval(ms) }

// DelaySpi is an echo with its ring in external serial RAM. Transfer
// failures silence the echo for the failing block; after maxSpiFailures
// consecutive failures OK reports false so the host can swap it out.
type DelaySpi struct {
	*effector.Base

	ring  *delay.SPIBuf[int16]
	voice *Voice

	failures    int
	consecutive int
	lastErr     error
}

// NewDelaySpi returns a 300 ms echo stored at byte offset base of ram. The
// device is probed here; check OK before using the effect.
func NewDelaySpi(cfg core.ProcessorConfig, ram sram.Transport, base uint32) (*DelaySpi, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ring, err := delay.NewSPIBuf[int16](ram, base, DelaySpiMaxMs, cfg.SampleRate, cfg.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("echo: %w", err)
	}
	d := &DelaySpi{
		Base: effector.NewBase(effector.IDDelaySpi, "DELAY SPI", effector.Color{G: 255, B: 255}, cfg.BlockSize,
			voiceParams(DelaySpiMaxMs)...),
		ring:  ring,
		voice: newVoice(spiStore{ring}, cfg.SampleRate, cfg.BlockSize),
	}
	d.OnUpdate(d.update)
	return d, nil
}

func (d *DelaySpi) update(n int) { d.voice.update(d.Base, n) }

// OK reports whether the RAM passed its probe and the recent transfers
// have not all failed.
func (d *DelaySpi) OK() bool {
	return d.ring.OK() && d.consecutive < maxSpiFailures
}

// Failures returns the total number of blocks with a failed transfer.
func (d *DelaySpi) Failures() int { return d.failures }

// Err returns the most recent transfer error, or nil.
func (d *DelaySpi) Err() error { return d.lastErr }

// Process adds the echo to left and mirrors it to right. Blocks may be
// shorter than the configured block size.
func (d *DelaySpi) Process(left, right []float64) {
	if !d.Begin(left, right) {
		return
	}
	if err := d.voice.process(left); err != nil {
		d.failures++
		d.consecutive++
		d.lastErr = err
	} else {
		d.consecutive = 0
	}
	core.Mirror(left, right)
	d.End(left, right)
}
