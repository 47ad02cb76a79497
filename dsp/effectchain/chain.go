package effectchain

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/dsp/effects"
)

// MaxSlots is the number of effect slots in a chain.
const MaxSlots = 3

// ErrSlot is returned for a slot index outside [0, MaxSlots).
var ErrSlot = errors.New("slot out of range")

// Chain runs up to three effects in series. Every slot always holds an
// effect; empty slots hold Bypass.
//
// Chain is not safe for concurrent use. The host serializes Process and
// the control calls.
type Chain struct {
	ctx      Context
	registry *Registry
	log      logrus.FieldLogger

	slots  [MaxSlots]effector.Effector
	bypass [MaxSlots]*effects.Bypass
}

// Option configures a Chain.
type Option func(*Chain)

// WithLogger sets the logger used for slot changes and fallbacks.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Chain) {
		if log != nil {
			c.log = log
		}
	}
}

// WithRegistry replaces the default effect catalog.
func WithRegistry(r *Registry) Option {
	return func(c *Chain) {
		if r != nil {
			c.registry = r
		}
	}
}

// New creates a chain with every slot bypassed.
func New(ctx Context, opts ...Option) (*Chain, error) {
	if err := ctx.Config().Validate(); err != nil {
		return nil, fmt.Errorf("effectchain: %w", err)
	}
	c := &Chain{
		ctx: ctx,
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = DefaultRegistry()
	}
	for i := range c.slots {
		c.bypass[i] = effects.NewBypass()
		c.slots[i] = c.bypass[i]
	}
	return c, nil
}

// Context returns the chain context.
func (c *Chain) Context() Context { return c.ctx }

// Registry returns the effect catalog.
func (c *Chain) Registry() *Registry { return c.registry }

// Effector returns the effect in slot.
func (c *Chain) Effector(slot int) effector.Effector {
	return c.slots[slot]
}

// SetEffect replaces the effect in slot with a new instance of id at its
// default settings. When the effect's hardware is unavailable the slot is
// bypassed and the returned error wraps ErrUnavailable. Other errors leave
// the slot unchanged.
func (c *Chain) SetEffect(slot int, id effector.ID) error {
	if slot < 0 || slot >= MaxSlots {
		return fmt.Errorf("effectchain: %w: %d", ErrSlot, slot)
	}
	fields := logrus.Fields{"slot": slot, "effect": id.String()}

	fx, err := c.registry.New(c.ctx.forSlot(slot), id)
	if err == nil && !fx.OK() {
		err = fmt.Errorf("%w: %s failed its self-test", ErrUnavailable, id)
	}
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			return fmt.Errorf("effectchain: slot %d: %w", slot, err)
		}
		c.log.WithFields(fields).WithError(err).Warn("effect unavailable, slot bypassed")
		c.slots[slot] = c.bypass[slot]
		return fmt.Errorf("effectchain: slot %d: %w", slot, err)
	}

	c.slots[slot] = fx
	c.log.WithFields(fields).Info("effect changed")
	return nil
}

// SetActive switches the effect in slot on or off with a crossfade.
func (c *Chain) SetActive(slot int, on bool) {
	c.slots[slot].SetActive(on)
	c.log.WithFields(logrus.Fields{"slot": slot, "active": on}).Debug("footswitch")
}

// IncrementParam steps parameter n of slot up.
func (c *Chain) IncrementParam(slot, n int) { c.slots[slot].IncrementParam(n) }

// DecrementParam steps parameter n of slot down.
func (c *Chain) DecrementParam(slot, n int) { c.slots[slot].DecrementParam(n) }

// SetParamRatio sets parameter n of slot to a 0..1 position.
func (c *Chain) SetParamRatio(slot, n int, ratio float64) { c.slots[slot].SetParamRatio(n, ratio) }

// SetParamValue sets parameter n of slot directly.
func (c *Chain) SetParamValue(slot, n int, v float64) { c.slots[slot].SetParamValue(n, v) }

// SetGyroEnable links or unlinks parameter n of slot to the motion sensor.
func (c *Chain) SetGyroEnable(slot, n int, on bool) { c.slots[slot].SetGyroEnable(n, on) }

// ApplyGyro hands a motion sensor reading to every slot.
func (c *Chain) ApplyGyro(v effector.Vector) {
	for _, fx := range c.slots {
		fx.SetGyro(v)
	}
}

// Process runs left and right through every slot in order, in place.
// Blocks longer than the configured block size are processed in chunks.
// A slot whose effect reports !OK is bypassed before the next chunk.
func (c *Chain) Process(left, right []float64) {
	n := min(len(left), len(right))
	for start := 0; start < n; start += c.ctx.BlockSize {
		end := min(start+c.ctx.BlockSize, n)
		l, r := left[start:end], right[start:end]
		for i, fx := range c.slots {
			if !fx.OK() {
				fx = c.fallback(i)
			}
			fx.Process(l, r)
		}
	}
}

func (c *Chain) fallback(slot int) effector.Effector {
	failed := c.slots[slot]
	entry := c.log.WithFields(logrus.Fields{"slot": slot, "effect": failed.ID().String()})
	if e, ok := failed.(interface{ Err() error }); ok && e.Err() != nil {
		entry = entry.WithError(e.Err())
	}
	entry.Warn("effect failed, slot bypassed")
	c.slots[slot] = c.bypass[slot]
	return c.slots[slot]
}
