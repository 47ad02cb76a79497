package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/effects/dynamics"
	"github.com/cwbudde/algo-pedal/dsp/effects/echo"
	"github.com/cwbudde/algo-pedal/dsp/effects/modulation"
	"github.com/cwbudde/algo-pedal/dsp/effects/pitch"
	"github.com/cwbudde/algo-pedal/dsp/effects/reverb"
	"github.com/cwbudde/algo-pedal/dsp/sram"
)

// wrap adapts a typed constructor to a Factory.
func wrap[T effector.Effector](fn func(core.ProcessorConfig) (T, error)) Factory {
	return func(ctx Context) (effector.Effector, error) {
		fx, err := fn(ctx.Config())
		if err != nil {
			return nil, err
		}
		return fx, nil
	}
}

// DefaultRegistry returns a Registry holding every built-in effect.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(effector.IDBypass, func(_ Context) (effector.Effector, error) {
		return effects.NewBypass(), nil
	})
	r.MustRegister(effector.IDBooster, wrap(effects.NewBooster))
	r.MustRegister(effector.IDOverDrive, wrap(effects.NewOverDrive))
	r.MustRegister(effector.IDDistortion, wrap(effects.NewDistortion))
	r.MustRegister(effector.IDCompressor, wrap(dynamics.NewCompressor))
	r.MustRegister(effector.IDAutoWah, wrap(modulation.NewAutoWah))
	r.MustRegister(effector.IDChorus, wrap(modulation.NewChorus))
	r.MustRegister(effector.IDTremolo, wrap(modulation.NewTremolo))
	r.MustRegister(effector.IDPhaser, wrap(modulation.NewPhaser))
	r.MustRegister(effector.IDDelayRam, wrap(echo.NewDelayRam))
	r.MustRegister(effector.IDDelaySpi, func(ctx Context) (effector.Effector, error) {
		if ctx.RAM == nil {
			return nil, fmt.Errorf("%w: no external RAM", ErrUnavailable)
		}
		region := echo.DelaySpiBytes(ctx.SampleRate)
		base := int(ctx.RAMBase) + ctx.Slot*region
		if s, ok := ctx.RAM.(sram.Sizer); ok && base+region > s.Size() {
			return nil, fmt.Errorf("%w: slot %d needs RAM up to %#x, device has %#x",
				ErrUnavailable, ctx.Slot, base+region, s.Size())
		}
		fx, err := echo.NewDelaySpi(ctx.Config(), ctx.RAM, uint32(base))
		if err != nil {
			return nil, err
		}
		return fx, nil
	})
	r.MustRegister(effector.IDReverb, wrap(reverb.NewReverb))
	r.MustRegister(effector.IDBqFilter, wrap(effects.NewBqFilter))
	r.MustRegister(effector.IDOscillator, wrap(effects.NewOscillator))
	r.MustRegister(effector.IDTuner, wrap(pitch.NewTuner))

	return r
}
