package pitch

import (
	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effector"
)

// TunerMute is the Tuner's only parameter index.
const TunerMute = 0

// Tuner estimates the pitch of the left input. It passes the signal
// through unchanged, or silences both channels while MUTE is on.
type Tuner struct {
	*effector.Base

	est  *Estimator
	mute bool
}

// NewTuner returns an unmuted tuner covering 25 to 1400 Hz.
func NewTuner(cfg core.ProcessorConfig) (*Tuner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	est, err := NewEstimator(cfg.SampleRate, DefaultMinFreq, DefaultMaxFreq)
	if err != nil {
		return nil, err
	}
	t := &Tuner{
		Base: effector.NewBase(effector.IDTuner, "TUNER", effector.Color{R: 255, G: 64}, cfg.BlockSize,
			effector.NewParam("MUTE", 0, 1, 0, 1),
		),
		est: est,
	}
	t.OnUpdate(t.update)
	return t, nil
}

func (t *Tuner) update(n int) {
	if n == TunerMute {
		t.mute = t.Value(TunerMute) >= 0.5
	}
}

// ValueText shows MUTE as ON or OFF.
func (t *Tuner) ValueText(n int) string {
	if n == TunerMute {
		if t.mute {
			return "ON"
		}
		return "OFF"
	}
	return t.Base.ValueText(n)
}

// Process feeds left to the estimator.
func (t *Tuner) Process(left, right []float64) {
	if !t.Begin(left, right) {
		return
	}
	t.est.Process(left)
	if t.mute {
		core.Zero(left)
		core.Zero(right)
	}
	t.End(left, right)
}

// Frequency returns the published frequency in Hz, or 0 when the estimate
// is stale.
func (t *Tuner) Frequency() float64 {
	if t.est.Stale() {
		return 0
	}
	return t.est.Frequency()
}

// Note returns the note name and octave of the current estimate, such as
// "A2", or "" when stale.
func (t *Tuner) Note() string { return NoteText(t.Frequency()) }

// Cents returns the deviation from the nearest note.
func (t *Tuner) Cents() float64 {
	_, _, c := NoteOf(t.Frequency())
	return c
}

// Updated returns the sample tick of the last published estimate.
func (t *Tuner) Updated() uint64 { return t.est.Updated() }

// Estimator returns the underlying estimator.
func (t *Tuner) Estimator() *Estimator { return t.est }
