package pitch

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-pedal/dsp/filter/onepole"
)

const (
	// DefaultMinFreq and DefaultMaxFreq bound the detectable range.
	DefaultMinFreq = 25.0
	DefaultMaxFreq = 1400.0

	inputCutoff    = 1500.0
	noiseThreshold = 0.005
	historyLen     = 3
	agreement      = 0.03
	staleMs        = 500.0
)

// Estimator tracks the fundamental of a monophonic signal.
//
// Samples are collected into two alternating buffers. While one fills, the
// sign bitstream of the other is correlated against itself a few lags at a
// time, so the correlation is complete when the filling buffer is. Each
// completed buffer yields one estimate; three agreeing estimates publish a
// frequency.
type Estimator struct {
	sampleRate float64
	minPeriod  float64
	maxPeriod  float64
	lo, hi     int

	size  int
	half  int
	stale uint64

	lpf  *onepole.LowPass2
	buf  [2][]float64
	bits [2][]uint32
	cur  int

	filled   int
	havePrev bool
	lastBit  bool

	corr []int
	done int

	history [historyLen]float64
	nhist   int

	tick      uint64
	freq      float64
	updated   uint64
	published bool
}

// NewEstimator returns an estimator for fundamentals in [minFreq, maxFreq].
func NewEstimator(sampleRate, minFreq, maxFreq float64) (*Estimator, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("pitch: sample rate must be > 0: %f", sampleRate)
	}
	if !(minFreq > 0) || !(maxFreq > minFreq) || maxFreq >= sampleRate/2 {
		return nil, fmt.Errorf("pitch: invalid range [%f, %f] Hz at %f Hz", minFreq, maxFreq, sampleRate)
	}

	e := &Estimator{
		sampleRate: sampleRate,
		minPeriod:  sampleRate / maxFreq,
		maxPeriod:  sampleRate / minFreq,
		stale:      uint64(math.Round(staleMs * sampleRate / 1000)),
		lpf:        onepole.NewLowPass2(sampleRate, math.Min(inputCutoff, 0.45*sampleRate)),
	}
	e.size = 64 * int(math.Ceil(2*e.maxPeriod/64))
	e.half = e.size / 2
	e.lo = int(math.Ceil(e.minPeriod))
	e.hi = min(int(math.Floor(e.maxPeriod)), e.half-1)
	for i := range e.buf {
		e.buf[i] = make([]float64, e.size)
		e.bits[i] = make([]uint32, e.size/32)
	}
	e.corr = make([]int, e.half)
	return e, nil
}

// BufferSize returns the number of samples per analysis buffer.
func (e *Estimator) BufferSize() int { return e.size }

// Process feeds a block of samples.
func (e *Estimator) Process(block []float64) {
	for _, x := range block {
		e.Push(x)
	}
}

// Push feeds one sample.
func (e *Estimator) Push(x float64) {
	y := e.lpf.Process(x)
	c := e.cur
	e.buf[c][e.filled] = y

	switch {
	case y > 0:
		e.lastBit = true
	case y < -noiseThreshold:
		e.lastBit = false
	}
	if e.lastBit {
		e.bits[c][e.filled>>5] |= 1 << uint(e.filled&31)
	}
	e.filled++
	e.tick++

	if e.havePrev {
		prev := e.bits[1-c]
		target := (e.half*e.filled + e.size - 1) / e.size
		for ; e.done < target; e.done++ {
			e.corr[e.done] = correlate(prev, e.done, e.half)
		}
	}

	if e.filled == e.size {
		if e.havePrev {
			e.analyze(e.buf[1-c])
		}
		e.cur = 1 - c
		clear(e.bits[e.cur])
		e.filled = 0
		e.done = 0
		e.havePrev = true
	}
}

// correlate counts the bits of words[0:n] that differ from words[lag:lag+n].
// n must be a multiple of 32.
func correlate(words []uint32, lag, n int) int {
	count := 0
	for j := 0; j < n/32; j++ {
		count += bits.OnesCount32(words[j] ^ extract(words, lag+32*j))
	}
	return count
}

// extract returns the 32 bits starting at bit offset off.
func extract(words []uint32, off int) uint32 {
	w := off >> 5
	s := uint(off & 31)
	v := words[w] >> s
	if s != 0 && w+1 < len(words) {
		v |= words[w+1] << (32 - s)
	}
	return v
}

// analyze turns the finished correlation of buf into one estimate.
func (e *Estimator) analyze(buf []float64) {
	if vecmath.MaxAbs(buf) < noiseThreshold {
		return
	}

	lag := e.lo
	minCorr, maxCorr := e.corr[e.lo], e.corr[e.lo]
	for l := e.lo + 1; l <= e.hi; l++ {
		c := e.corr[l]
		if c < minCorr {
			minCorr, lag = c, l
		}
		maxCorr = max(maxCorr, c)
	}

	period := e.subHarmonic(lag, minCorr, maxCorr)
	period = e.refine(buf, period)
	if period > 0 {
		e.consensus(e.sampleRate / period)
	}
}

// subHarmonic returns lag divided by the largest divisor whose every
// multiple of lag/div correlates about as well as lag itself. Candidates
// below the minimum period are never tested.
func (e *Estimator) subHarmonic(lag, minCorr, maxCorr int) float64 {
	tol := max(2, (maxCorr-minCorr)/8)
	for div := lag / e.lo; div >= 2; div-- {
		if e.divides(lag, div, minCorr+tol) {
			return float64(lag) / float64(div)
		}
	}
	return float64(lag)
}

func (e *Estimator) divides(lag, div, limit int) bool {
	for k := 1; k < div; k++ {
		m := int(math.Round(float64(k*lag) / float64(div)))
		best := math.MaxInt
		for l := max(m-1, e.lo); l <= min(m+1, e.hi); l++ {
			best = min(best, e.corr[l])
		}
		if best > limit {
			return false
		}
	}
	return true
}

// refine measures the period between rising zero crossings spanning as
// many whole periods as fit in buf. It returns lag when no pair is found.
func (e *Estimator) refine(buf []float64, lag float64) float64 {
	start, ok := risingCrossing(buf, 1, len(buf))
	if !ok {
		return lag
	}
	n := int((float64(len(buf)-1) - start) / lag)
	for ; n >= 1; n-- {
		target := start + float64(n)*lag
		from := max(int(target-lag/2), 1)
		to := min(int(target+lag/2)+1, len(buf))
		if end, ok := nearestRisingCrossing(buf, from, to, target); ok {
			return (end - start) / float64(n)
		}
	}
	return lag
}

// risingCrossing returns the interpolated position of the first rising zero
// crossing in buf[from-1:to].
func risingCrossing(buf []float64, from, to int) (float64, bool) {
	for i := from; i < to; i++ {
		if buf[i-1] <= 0 && buf[i] > 0 {
			return crossingAt(buf, i), true
		}
	}
	return 0, false
}

func nearestRisingCrossing(buf []float64, from, to int, target float64) (float64, bool) {
	best, found := 0.0, false
	for i := from; i < to; i++ {
		if buf[i-1] <= 0 && buf[i] > 0 {
			p := crossingAt(buf, i)
			if !found || math.Abs(p-target) < math.Abs(best-target) {
				best, found = p, true
			}
		}
	}
	return best, found
}

func crossingAt(buf []float64, i int) float64 {
	a, b := buf[i-1], buf[i]
	return float64(i-1) + a/(a-b)
}

// consensus publishes the mean of the last three estimates when they all
// lie within ±3 % of it.
func (e *Estimator) consensus(freq float64) {
	copy(e.history[:], e.history[1:])
	e.history[historyLen-1] = freq
	if e.nhist < historyLen {
		e.nhist++
		if e.nhist < historyLen {
			return
		}
	}
	mean := 0.0
	for _, f := range e.history {
		mean += f
	}
	mean /= historyLen
	for _, f := range e.history {
		if math.Abs(f-mean) > agreement*mean {
			return
		}
	}
	e.freq = mean
	e.updated = e.tick
	e.published = true
}

// Frequency returns the last published frequency in Hz, or 0 before the
// first publish.
func (e *Estimator) Frequency() float64 { return e.freq }

// Updated returns the sample tick of the last publish.
func (e *Estimator) Updated() uint64 { return e.updated }

// Tick returns the number of samples fed so far.
func (e *Estimator) Tick() uint64 { return e.tick }

// Stale reports whether nothing has been published for more than 500 ms.
func (e *Estimator) Stale() bool {
	return !e.published || e.tick-e.updated > e.stale
}

// Reset forgets all input and the published estimate.
func (e *Estimator) Reset() {
	for i := range e.buf {
		clear(e.buf[i])
		clear(e.bits[i])
	}
	clear(e.corr)
	e.lpf.Reset()
	e.cur, e.filled, e.done, e.nhist = 0, 0, 0, 0
	e.havePrev, e.lastBit, e.published = false, false, false
	e.tick, e.updated, e.freq = 0, 0, 0
}
