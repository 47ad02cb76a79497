package effectchain

import (
	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/sram"
)

// Context provides what effect factories need from the host.
type Context struct {
	SampleRate float64
	BlockSize  int

	// RAM is the external delay memory. Effects that need it are
	// unavailable when it is nil.
	RAM sram.Transport
	// RAMBase is the first byte address effects may use.
	RAMBase uint32

	// Slot is the chain slot the effect is built for. RAM-backed effects
	// use it to pick a region no other slot touches.
	Slot int
}

// DefaultContext returns the reference sample rate and block size with no
// external RAM.
func DefaultContext() Context {
	cfg := core.DefaultProcessorConfig()
	return Context{SampleRate: cfg.SampleRate, BlockSize: cfg.BlockSize}
}

// forSlot returns c for building the effect of slot.
func (c Context) forSlot(slot int) Context {
	c.Slot = slot
	return c
}

// Config returns the processor configuration handed to effect constructors.
func (c Context) Config() core.ProcessorConfig {
	return core.ProcessorConfig{SampleRate: c.SampleRate, BlockSize: c.BlockSize}
}
