package effects

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/dsp/filter/onepole"
)

// Drive parameter indices, shared by OverDrive and Distortion.
const (
	DriveLevel = iota
	DriveGain
	DriveTreble
	DriveBass
)

const (
	driveToneMin = 800.0
	driveToneMax = 8000.0
	driveBassMin = 400.0
	driveBassMax = 40.0

	overDriveBandFreq = 5000.0
	overDrivePostFreq = 7000.0

	distortionBandFreq = 4000.0
	distortionPostFreq = 6000.0
	distortionGainMin  = 10.0
	distortionGainMax  = 60.0
	distortionDCFreq   = 10.0
)

// drive is the filter-shaper-filter chain both drive effects share:
// pre high-pass (bass), fixed band low-pass, gain, shaper, tone low-pass,
// fixed second-order low-pass, level.
type drive struct {
	*effector.Base

	pre   *onepole.HighPass
	band  *onepole.LowPass
	tone  *onepole.LowPass
	post  *onepole.LowPass2
	dcCut *onepole.HighPass

	gain  float64
	level float64

	shape   func(float64) float64
	gainLaw func(pot float64) float64
}

func newDrive(cfg core.ProcessorConfig, id effector.ID, name string, color effector.Color, bandFreq, postFreq float64) (*drive, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &drive{
		Base: effector.NewBase(id, name, color, cfg.BlockSize,
			effector.NewParam("LEVEL", 0, 100, 50, 1),
			effector.NewParam("GAIN", 0, 100, 50, 1),
			effector.NewParam("TREBLE", 0, 100, 50, 1),
			effector.NewParam("BASS", 0, 100, 50, 1),
		),
		pre:  onepole.NewHighPass(cfg.SampleRate, driveBassMin),
		band: onepole.NewLowPass(cfg.SampleRate, bandFreq),
		tone: onepole.NewLowPass(cfg.SampleRate, driveToneMax),
		post: onepole.NewLowPass2(cfg.SampleRate, postFreq),
	}, nil
}

func (d *drive) update(n int) {
	switch n {
	case DriveLevel:
		d.level = core.LogPot(d.Value(DriveLevel), -50, 0)
	case DriveGain:
		d.gain = d.gainLaw(d.Value(DriveGain))
	case DriveTreble:
		d.tone.Set(core.LogScale(d.Value(DriveTreble), driveToneMin, driveToneMax))
	case DriveBass:
		d.pre.Set(core.LogScale(d.Value(DriveBass), driveBassMin, driveBassMax))
	}
}

// Process distorts left and mirrors it to right.
func (d *drive) Process(left, right []float64) {
	if !d.Begin(left, right) {
		return
	}
	for i, x := range left {
		x = d.band.Process(d.pre.Process(x))
		x = d.shape(d.gain * x)
		x = d.post.Process(d.tone.Process(x))
		if d.dcCut != nil {
			x = d.dcCut.Process(x)
		}
		left[i] = x
	}
	vecmath.ScaleBlockInPlace(left, d.level)
	core.Mirror(left, right)
	d.End(left, right)
}

// OverDrive is a soft, tube-like saturation.
type OverDrive struct {
	*drive
}

// NewOverDrive returns an OverDrive with all controls at mid travel.
func NewOverDrive(cfg core.ProcessorConfig) (*OverDrive, error) {
	d, err := newDrive(cfg, effector.IDOverDrive, "OVERDRIVE", effector.Color{R: 255, G: 160},
		overDriveBandFreq, overDrivePostFreq)
	if err != nil {
		return nil, err
	}
	d.shape = atanShape
	d.gainLaw = func(pot float64) float64 { return core.LogPot(pot, 0, 50) }
	d.OnUpdate(d.update)
	return &OverDrive{drive: d}, nil
}

// Distortion is a hard, asymmetric clipper.
type Distortion struct {
	*drive
}

// NewDistortion returns a Distortion with all controls at mid travel.
func NewDistortion(cfg core.ProcessorConfig) (*Distortion, error) {
	d, err := newDrive(cfg, effector.IDDistortion, "DISTORTION", effector.Color{R: 255},
		distortionBandFreq, distortionPostFreq)
	if err != nil {
		return nil, err
	}
	d.shape = asymmetricClip
	d.gainLaw = func(pot float64) float64 {
		return core.LogPot(pot, distortionGainMin, distortionGainMax)
	}
	d.dcCut = onepole.NewHighPass(cfg.SampleRate, distortionDCFreq)
	d.OnUpdate(d.update)
	return &Distortion{drive: d}, nil
}

// atanShape saturates smoothly toward ±1.
func atanShape(x float64) float64 {
	return math.Atan(x) * (2 / math.Pi)
}

// asymmetricClip bends the positive half over a quadratic knee up to 1 and
// clips the negative half earlier at -0.5, adding even harmonics.
func asymmetricClip(x float64) float64 {
	switch {
	case x >= 2:
		return 1
	case x >= 0:
		return x - x*x/4
	case x > -1:
		return x + x*x/2
	default:
		return -0.5
	}
}
