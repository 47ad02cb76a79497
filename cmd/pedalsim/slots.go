package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-pedal/dsp/effectchain"
	"github.com/cwbudde/algo-pedal/dsp/effector"
)

// slotSpec is one effect on the command line:
//
//	name[:PARAM=value...][:~PARAM...]
//
// A leading ~ links the parameter to the motion sensor.
type slotSpec struct {
	id     effector.ID
	values []paramValue
	gyro   []string
}

type paramValue struct {
	name  string
	value float64
}

var errSpec = errors.New("bad effect spec")

func effectByName(name string) (effector.ID, bool) {
	for id := effector.ID(0); id < effector.IDCount; id++ {
		if strings.EqualFold(id.String(), name) {
			return id, true
		}
	}
	return 0, false
}

func parseSlot(spec string) (slotSpec, error) {
	parts := strings.Split(spec, ":")
	id, ok := effectByName(strings.TrimSpace(parts[0]))
	if !ok {
		return slotSpec{}, fmt.Errorf("%w: unknown effect %q (use -list to see available)", errSpec, parts[0])
	}

	s := slotSpec{id: id}
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if rest, ok := strings.CutPrefix(p, "~"); ok {
			s.gyro = append(s.gyro, strings.ToUpper(rest))
			continue
		}
		name, raw, ok := strings.Cut(p, "=")
		if !ok {
			return slotSpec{}, fmt.Errorf("%w: %q is not PARAM=value", errSpec, p)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return slotSpec{}, fmt.Errorf("%w: %s: %w", errSpec, name, err)
		}
		s.values = append(s.values, paramValue{name: strings.ToUpper(name), value: v})
	}
	return s, nil
}

func paramIndex(fx effector.Effector, name string) (int, error) {
	for n := 0; n < fx.ParamCount(); n++ {
		if fx.ParamName(n) == name {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %s has no parameter %s", errSpec, fx.Name(), name)
}

// apply installs s in slot. Unavailable effects leave the slot bypassed and
// are reported without failing.
func (s slotSpec) apply(c *effectchain.Chain, slot int) error {
	if err := c.SetEffect(slot, s.id); err != nil {
		if errors.Is(err, effectchain.ErrUnavailable) {
			return nil
		}
		return err
	}
	fx := c.Effector(slot)
	for _, pv := range s.values {
		n, err := paramIndex(fx, pv.name)
		if err != nil {
			return err
		}
		c.SetParamValue(slot, n, pv.value)
	}
	for _, name := range s.gyro {
		n, err := paramIndex(fx, name)
		if err != nil {
			return err
		}
		c.SetGyroEnable(slot, n, true)
	}
	return nil
}

func parseVector(s string) (effector.Vector, error) {
	f := strings.Split(s, ",")
	if len(f) != 3 {
		return effector.Vector{}, fmt.Errorf("tilt %q: want x,y,z", s)
	}
	var xyz [3]float64
	for i, v := range f {
		x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return effector.Vector{}, fmt.Errorf("tilt %q: %w", s, err)
		}
		xyz[i] = x
	}
	return effector.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}
