package effectchain

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-pedal/dsp/effector"
)

// Factory builds one effect instance.
type Factory func(ctx Context) (effector.Effector, error)

// Registry maps effect IDs to their factories.
type Registry struct {
	factories [effector.IDCount]Factory
}

var (
	// ErrUnknownEffect is returned for an effect ID with no factory.
	ErrUnknownEffect = errors.New("unknown effect")

	// ErrUnavailable is returned when an effect's hardware is missing or
	// failed its self-test.
	ErrUnavailable = errors.New("effect unavailable")

	errDuplicateEffect = errors.New("duplicate effect")
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a factory for id.
func (r *Registry) Register(id effector.ID, factory Factory) error {
	if id >= effector.IDCount {
		return fmt.Errorf("%w: id %d", ErrUnknownEffect, id)
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if r.factories[id] != nil {
		return fmt.Errorf("%w: %s", errDuplicateEffect, id)
	}

	r.factories[id] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(id effector.ID, factory Factory) {
	err := r.Register(id, factory)
	if err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// Lookup returns the factory for id, or nil.
func (r *Registry) Lookup(id effector.ID) Factory {
	if id >= effector.IDCount {
		return nil
	}
	return r.factories[id]
}

// IDs returns the registered effect IDs in ascending order.
func (r *Registry) IDs() []effector.ID {
	var ids []effector.ID
	for id, f := range r.factories {
		if f != nil {
			ids = append(ids, effector.ID(id))
		}
	}
	return ids
}

// New builds the effect for id.
func (r *Registry) New(ctx Context, id effector.ID) (effector.Effector, error) {
	factory := r.Lookup(id)
	if factory == nil {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownEffect, id)
	}
	return factory(ctx)
}
