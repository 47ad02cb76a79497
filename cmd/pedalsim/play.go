//go:build !headless

package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

// play renders the stereo signal to the default audio device and waits
// until it has drained.
func play(sampleRate int, left, right []float64) error {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return err
	}
	<-ready

	pcm := make([]byte, 8*len(left))
	for i := range left {
		binary.LittleEndian.PutUint32(pcm[8*i:], math.Float32bits(float32(left[i])))
		binary.LittleEndian.PutUint32(pcm[8*i+4:], math.Float32bits(float32(right[i])))
	}

	p := ctx.NewPlayer(bytes.NewReader(pcm))
	defer p.Close()
	p.Play()
	for p.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return p.Err()
}
