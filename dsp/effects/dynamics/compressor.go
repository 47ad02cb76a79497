package dynamics

import (
	"math"
	"strconv"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/dsp/filter/onepole"
)

// Compressor parameter indices.
const (
	CompressorThreshold = iota
	CompressorRatio
	CompressorAttack
	CompressorRelease
	CompressorKnee
	CompressorLevel
)

const (
	defaultCompressorThresholdDB = -20.0
	defaultCompressorRatio       = 4.0
	defaultCompressorAttackMs    = 10.0
	defaultCompressorReleaseMs   = 100.0
	defaultCompressorKneeDB      = 6.0

	// detectorCutoff smooths the rectified input into a level, slow enough
	// to ignore individual cycles of low guitar notes.
	detectorCutoff = 30.0

	minDetectorLevel = 1e-5
)

// Compressor is a feed-forward soft-knee compressor.
type Compressor struct {
	*effector.Base

	sampleRate float64
	detector   *onepole.LowPass

	thresholdDB  float64
	slope        float64
	kneeDB       float64
	attackCoeff  float64
	releaseCoeff float64
	level        float64

	envelopeDB float64
	grDB       float64
}

// NewCompressor returns a 4:1 compressor at -20 dB with a 6 dB knee.
func NewCompressor(cfg core.ProcessorConfig) (*Compressor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Compressor{
		Base: effector.NewBase(effector.IDCompressor, "COMPRESSOR", effector.Color{G: 255, B: 64}, cfg.BlockSize,
			effector.NewParam("THRESHOLD", -60, 0, defaultCompressorThresholdDB, 1).WithUnit("dB"),
			effector.NewParam("RATIO", 1, 20, defaultCompressorRatio, 1),
			effector.NewParam("ATTACK", 1, 100, defaultCompressorAttackMs, 1).WithUnit("ms"),
			effector.NewParam("RELEASE", 10, 1000, defaultCompressorReleaseMs, 10).WithUnit("ms"),
			effector.NewParam("KNEE", 0, 20, defaultCompressorKneeDB, 1).WithUnit("dB"),
			effector.NewParam("LEVEL", -20, 20, 0, 1).WithUnit("dB"),
		),
		sampleRate: cfg.SampleRate,
		detector:   onepole.NewLowPass(cfg.SampleRate, detectorCutoff),
		envelopeDB: core.GainToDB(minDetectorLevel),
	}
	c.OnUpdate(c.update)
	return c, nil
}

func (c *Compressor) update(n int) {
	switch n {
	case CompressorThreshold:
		c.thresholdDB = c.Value(CompressorThreshold)
	case CompressorRatio:
		c.slope = 1 / c.Value(CompressorRatio)
	case CompressorAttack:
		c.attackCoeff = timeCoeff(c.Value(CompressorAttack), c.sampleRate)
	case CompressorRelease:
		c.releaseCoeff = timeCoeff(c.Value(CompressorRelease), c.sampleRate)
	case CompressorKnee:
		c.kneeDB = c.Value(CompressorKnee)
	case CompressorLevel:
		c.level = core.DBToGain(c.Value(CompressorLevel))
	}
}

// timeCoeff returns the one-pole smoothing coefficient for a time constant.
func timeCoeff(ms, sampleRate float64) float64 {
	return math.Exp(-1000 / (ms * sampleRate))
}

// ValueText shows the ratio as 1:R.
func (c *Compressor) ValueText(n int) string {
	if n == CompressorRatio {
		return "1:" + strconv.FormatFloat(c.Value(CompressorRatio), 'f', 0, 64)
	}
	return c.Base.ValueText(n)
}

// GainReduction returns the current gain change in dB (zero or negative).
func (c *Compressor) GainReduction() float64 { return c.grDB }

// Envelope returns the detector level in dB.
func (c *Compressor) Envelope() float64 { return c.envelopeDB }

// targetGR returns the static gain change for a detector level.
func (c *Compressor) targetGR(envDB float64) (float64, bool) {
	halfKnee := c.kneeDB / 2
	over := envDB - c.thresholdDB
	switch {
	case over < -halfKnee:
		return 0, false
	case over <= halfKnee && c.kneeDB > 0:
		d := over + halfKnee
		return (c.slope - 1) * d * d / (2 * c.kneeDB), true
	default:
		return over*c.slope - over, true
	}
}

// ProcessSample compresses one sample.
func (c *Compressor) ProcessSample(x float64) float64 {
	env := c.detector.Process(math.Abs(x))
	c.envelopeDB = core.GainToDB(core.Clamp(env, minDetectorLevel, 1))

	target, engaged := c.targetGR(c.envelopeDB)
	coeff := c.releaseCoeff
	if engaged && target < c.grDB {
		coeff = c.attackCoeff
	}
	c.grDB = target + coeff*(c.grDB-target)
	return x * core.DBToGain(c.grDB) * c.level
}

// Process compresses left and mirrors it to right.
func (c *Compressor) Process(left, right []float64) {
	if !c.Begin(left, right) {
		return
	}
	for i, x := range left {
		left[i] = c.ProcessSample(x)
	}
	core.Mirror(left, right)
	c.End(left, right)
}
