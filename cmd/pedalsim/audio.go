package main

import (
	"fmt"
	"math"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

const resampleQuality = 4

// readWAV decodes a WAV file to mono at sampleRate. Stereo input is
// averaged.
func readWAV(name string, sampleRate int) ([]float64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stream, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	defer stream.Close()

	var s beep.Streamer = stream
	if int(format.SampleRate) != sampleRate {
		s = beep.Resample(resampleQuality, format.SampleRate, beep.SampleRate(sampleRate), stream)
	}

	var mono []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			mono = append(mono, 0.5*(frame[0]+frame[1]))
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return mono, nil
}

// frameStreamer plays back a rendered stereo signal.
type frameStreamer struct {
	left, right []float64
	pos         int
}

func (fs *frameStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if fs.pos >= len(fs.left) {
		return 0, false
	}
	for n < len(samples) && fs.pos < len(fs.left) {
		samples[n][0] = fs.left[fs.pos]
		samples[n][1] = fs.right[fs.pos]
		n++
		fs.pos++
	}
	return n, true
}

func (fs *frameStreamer) Err() error { return nil }

// writeWAV stores a 16-bit stereo WAV file.
func writeWAV(name string, sampleRate int, left, right []float64) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	format := beep.Format{SampleRate: beep.SampleRate(sampleRate), NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, &frameStreamer{left: left, right: right}, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return f.Close()
}

// tone returns a sine burst used when no input file is given.
func tone(freq, seconds, amplitude float64, sampleRate int) []float64 {
	out := make([]float64, int(seconds*float64(sampleRate)))
	step := 2 * math.Pi * freq / float64(sampleRate)
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}
