package echo

import (
	"math"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/delay"
	"github.com/cwbudde/algo-pedal/dsp/effector"
)

// DelayRamMaxMs is the longest echo DelayRam can hold.
const DelayRamMaxMs = 1000.0

// ramStore adapts a local 16-bit line to Store.
type ramStore struct {
	line       *delay.Buf[int16]
	sampleRate float64
	d          int
}

func (s *ramStore) SetTime(ms float64) {
	s.d = int(math.Round(ms * s.sampleRate / 1000))
}

// Read fetches, for every sample of the next block, the value written d
// samples before it.
func (s *ramStore) Read(block []float64) error {
	for i := range block {
		block[i] = s.line.ReadSamples(s.d - i)
	}
	return nil
}

func (s *ramStore) Write(block []float64) error {
	for _, v := range block {
		s.line.Write(v)
	}
	return nil
}

// DelayRam is an echo with its line in local memory.
type DelayRam struct {
	*effector.Base
	voice *Voice
}

// NewDelayRam returns a 300 ms echo.
func NewDelayRam(cfg core.ProcessorConfig) (*DelayRam, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	line, err := delay.NewBuf[int16](DelayRamMaxMs, cfg.SampleRate)
	if err != nil {
		return nil, err
	}
	d := &DelayRam{
		Base: effector.NewBase(effector.IDDelayRam, "DELAY", effector.Color{G: 128, B: 255}, cfg.BlockSize,
			voiceParams(DelayRamMaxMs)...),
		voice: newVoice(&ramStore{line: line, sampleRate: cfg.SampleRate}, cfg.SampleRate, cfg.BlockSize),
	}
	d.OnUpdate(d.update)
	return d, nil
}

func (d *DelayRam) update(n int) { d.voice.update(d.Base, n) }

// Process adds the echo to left and mirrors it to right.
func (d *DelayRam) Process(left, right []float64) {
	if !d.Begin(left, right) {
		return
	}
	_ = d.voice.process(left)
	core.Mirror(left, right)
	d.End(left, right)
}
