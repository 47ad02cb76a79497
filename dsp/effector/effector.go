package effector

// Effector is one pedal effect. Process works in place on a stereo block.
// It must not allocate, block or vary its cost with parameter values.
type Effector interface {
	Process(left, right []float64)

	ID() ID
	Name() string
	Color() Color

	ParamCount() int
	Param(n int) Param
	ParamName(n int) string
	ValueText(n int) string
	SetParamRatio(n int, ratio float64)
	SetParamValue(n int, v float64)
	IncrementParam(n int)
	DecrementParam(n int)

	GyroEnabled(n int) bool
	SetGyroEnable(n int, on bool)
	SetGyro(v Vector)

	Active() bool
	SetActive(on bool)

	// OK reports whether the effect can run. Effects backed by external
	// hardware report false when the hardware is missing or has failed.
	OK() bool
}

// Base implements the parameter, gyro and switch parts of Effector.
type Base struct {
	id     ID
	name   string
	color  Color
	params []Param
	gyro   []bool
	hook   func(n int)

	active bool
	sw     Switch
	dryL   []float64
	dryR   []float64
}

// NewBase returns an active Base holding params. blockSize sizes the dry
// buffers used for crossfading.
func NewBase(id ID, name string, color Color, blockSize int, params ...Param) *Base {
	return &Base{
		id:     id,
		name:   name,
		color:  color,
		params: params,
		gyro:   make([]bool, len(params)),
		active: true,
		sw:     NewSwitch(true),
		dryL:   make([]float64, blockSize),
		dryR:   make([]float64, blockSize),
	}
}

// OnUpdate installs the hook that recomputes derived state after parameter
// n changes, then runs it once for every parameter.
func (b *Base) OnUpdate(fn func(n int)) {
	b.hook = fn
	b.UpdateAll()
}

// UpdateAll runs the update hook for every parameter.
func (b *Base) UpdateAll() {
	if b.hook == nil {
		return
	}
	for n := range b.params {
		b.hook(n)
	}
}

func (b *Base) changed(n int) {
	if b.hook != nil {
		b.hook(n)
	}
}

func (b *Base) ID() ID { return b.id }
func (b *Base) Name() string { return b.name }
func (b *Base) Color() Color { return b.color }
func (b *Base) ParamCount() int { return len(b.params) }

// Param returns a copy of parameter n.
func (b *Base) Param(n int) Param { return b.params[n] }

// Value returns the current value of parameter n.
func (b *Base) Value(n int) float64 { return b.params[n].Value }

func (b *Base) ParamName(n int) string { return b.params[n].Name }

// ValueText formats parameter n with its unit. Effects with enumerated or
// derived readouts override it.
func (b *Base) ValueText(n int) string { return b.params[n].Text() }

func (b *Base) SetParamRatio(n int, ratio float64) {
	b.params[n].SetRatio(ratio)
	b.changed(n)
}

func (b *Base) SetParamValue(n int, v float64) {
	b.params[n].Set(v)
	b.changed(n)
}

// IncrementParam steps parameter n up. Gyro-linked parameters follow the
// sensor and ignore manual steps.
func (b *Base) IncrementParam(n int) {
	if b.gyro[n] {
		return
	}
	b.params[n].Increment()
	b.changed(n)
}

// DecrementParam steps parameter n down unless it is gyro-linked.
func (b *Base) DecrementParam(n int) {
	if b.gyro[n] {
		return
	}
	b.params[n].Decrement()
	b.changed(n)
}

func (b *Base) GyroEnabled(n int) bool { return b.gyro[n] }

func (b *Base) SetGyroEnable(n int, on bool) { b.gyro[n] = on }

// SetGyro moves every gyro-linked parameter to the tilt of v.
func (b *Base) SetGyro(v Vector) {
	r := v.TiltRatio()
	for n, on := range b.gyro {
		if on {
			b.SetParamRatio(n, r)
		}
	}
}

func (b *Base) Active() bool { return b.active }

// SetActive turns the effect on or off. The audible change ramps in over
// the next SwitchRamp samples.
func (b *Base) SetActive(on bool) { b.active = on }

// OK reports true. Hardware-backed effects override it.
func (b *Base) OK() bool { return true }

// Begin prepares a block for processing. It copies the dry input for the
// crossfade and reports whether the effect needs to run at all: a switched
// off effect that has finished ramping out leaves the block untouched.
func (b *Base) Begin(left, right []float64) bool {
	if b.sw.Settled(false) && !b.active {
		return false
	}
	if len(left) > len(b.dryL) {
		b.dryL = make([]float64, len(left))
		b.dryR = make([]float64, len(left))
	}
	if !b.sw.Settled(true) || !b.active {
		copy(b.dryL, left)
		copy(b.dryR, right)
	}
	return true
}

// End crossfades the processed block in left and right against the dry
// copy taken by Begin.
func (b *Base) End(left, right []float64) {
	if b.sw.Settled(true) && b.active {
		return
	}
	for i := range left {
		w := b.sw.Next(b.active)
		left[i] = Blend(b.dryL[i], left[i], w)
		right[i] = Blend(b.dryR[i], right[i], w)
	}
}
