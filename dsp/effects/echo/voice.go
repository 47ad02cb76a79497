package echo

import (
	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/dsp/filter/onepole"
)

// Delay parameter indices, shared by DelayRam and DelaySpi.
const (
	DelayTime = iota
	DelayLevel
	DelayFeedback
	DelayTone
)

const (
	delayTimeMin   = 10.0
	delayDefaultMs = 300.0
	delayToneMin   = 1000.0
	delayToneMax   = 10000.0
	delayLevelDB   = -20.0
)

// Store holds the delayed signal. Read fills a block with the samples one
// delay time behind the next Write; Write appends a block.
type Store interface {
	Read(block []float64) error
	Write(block []float64) error
	SetTime(ms float64)
}

// Voice is the echo path shared by the delay effects: the delayed signal
// runs through a tone low-pass, is mixed into the output at LEVEL and fed
// back into the store at FEEDBACK.
type Voice struct {
	store    Store
	tone     *onepole.LowPass
	level    float64
	feedback float64

	delayed []float64
	feed    []float64
}

// voiceParams returns the TIME, LEVEL, FEEDBACK and TONE controls.
func voiceParams(maxTimeMs float64) []effector.Param {
	return []effector.Param{
		effector.NewParam("TIME", delayTimeMin, maxTimeMs, delayDefaultMs, 10).WithUnit("ms"),
		effector.NewParam("LEVEL", 0, 100, 50, 1),
		effector.NewParam("FEEDBACK", 0, 99, 40, 1).WithUnit("%"),
		effector.NewParam("TONE", 0, 100, 50, 1),
	}
}

func newVoice(store Store, sampleRate float64, blockSize int) *Voice {
	return &Voice{
		store:   store,
		tone:    onepole.NewLowPass(sampleRate, delayToneMax),
		delayed: make([]float64, blockSize),
		feed:    make([]float64, blockSize),
	}
}

// update applies parameter n of b.
func (v *Voice) update(b *effector.Base, n int) {
	switch n {
	case DelayTime:
		v.store.SetTime(b.Value(DelayTime))
	case DelayLevel:
		v.level = core.MixPot(b.Value(DelayLevel), delayLevelDB)
	case DelayFeedback:
		v.feedback = b.Value(DelayFeedback) / 100
	case DelayTone:
		v.tone.Set(core.LogScale(b.Value(DelayTone), delayToneMin, delayToneMax))
	}
}

// process adds the echo to block in place. A failed read leaves the echo
// silent for this block; the first error is returned after the write.
func (v *Voice) process(block []float64) error {
	if len(block) > len(v.delayed) {
		v.delayed = make([]float64, len(block))
		v.feed = make([]float64, len(block))
	}
	delayed := v.delayed[:len(block)]
	feed := v.feed[:len(block)]

	err := v.store.Read(delayed)
	for i, x := range block {
		y := v.tone.Process(delayed[i])
		feed[i] = x + v.feedback*y
		block[i] = x + v.level*y
	}
	if werr := v.store.Write(feed); err == nil {
		err = werr
	}
	return err
}
