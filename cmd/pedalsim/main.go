// Command pedalsim runs audio through the effect chain offline.
//
// Usage:
//
//	pedalsim [flags] [effect[:PARAM=value...][:~PARAM...] ...]
//
// Up to three effect specs fill the chain slots in order. Without -in a
// sine tone is processed.
//
// Examples:
//
//	pedalsim -list
//	pedalsim -in guitar.wav -out wet.wav overdrive:GAIN=70 chorus reverb:MIX=40
//	pedalsim -tone 110 tuner
//	pedalsim -tilt 0.3,0,1 autowah:~SENS
//	pedalsim -sram-port /dev/ttyUSB0 -in riff.wav -play delayspi:TIME=450
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-pedal/dsp/effectchain"
	"github.com/cwbudde/algo-pedal/dsp/sram"
)

const bridgeTimeout = 200 * time.Millisecond

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

type options struct {
	in, out       string
	freq, seconds float64
	list          bool
	patchIn       string
	patchOut      string
	sramPort      string
	sramBaud      int
	sramSize      int
	play          bool
	spectrumSize  int
	tilt          string
	verbose       bool
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, error) {
	fs := flag.NewFlagSet("pedalsim", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.in, "in", "", "input WAV file (default: sine tone)")
	fs.StringVar(&o.out, "out", "", "output WAV file")
	fs.Float64Var(&o.freq, "tone", 110, "test tone frequency in Hz")
	fs.Float64Var(&o.seconds, "dur", 2, "test tone duration in seconds")
	fs.BoolVar(&o.list, "list", false, "list available effects")
	fs.StringVar(&o.patchIn, "patch-in", "", "load chain settings from a patch file")
	fs.StringVar(&o.patchOut, "patch-out", "", "save chain settings to a patch file")
	fs.StringVar(&o.sramPort, "sram-port", "", "serial device of an external RAM bridge (default: in-memory RAM)")
	fs.IntVar(&o.sramBaud, "sram-baud", 115200, "baud rate of the RAM bridge")
	fs.IntVar(&o.sramSize, "sram-size", 1<<19, "external RAM size in bytes, 0 disables it")
	fs.BoolVar(&o.play, "play", false, "play the result on the default audio device")
	fs.IntVar(&o.spectrumSize, "spectrum", 0, "print the output spectrum peak using this FFT size")
	fs.StringVar(&o.tilt, "tilt", "", "motion sensor vector x,y,z applied before processing")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: pedalsim [flags] [effect[:PARAM=value...][:~PARAM...] ...]\n\n")
		fmt.Fprintf(stderr, "Runs audio through up to three chained effects.\n")
		fmt.Fprintf(stderr, "A ~ before a parameter links it to the motion sensor.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  pedalsim -list\n")
		fmt.Fprintf(stderr, "  pedalsim -in guitar.wav -out wet.wav overdrive:GAIN=70 chorus reverb:MIX=40\n")
		fmt.Fprintf(stderr, "  pedalsim -tone 110 tuner\n")
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > effectchain.MaxSlots {
		return nil, nil, fmt.Errorf("at most %d effects, got %d", effectchain.MaxSlots, fs.NArg())
	}
	return o, fs.Args(), nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, specs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(logrus.InfoLevel)
	if o.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if o.list {
		return printList(stdout, effectchain.DefaultRegistry())
	}

	slots := make([]slotSpec, len(specs))
	for i, spec := range specs {
		if slots[i], err = parseSlot(spec); err != nil {
			return err
		}
	}

	ctx := effectchain.DefaultContext()
	ram, err := openRAM(o, log)
	if err != nil {
		return err
	}
	if ram != nil {
		ctx.RAM = ram
		if c, ok := ram.(io.Closer); ok {
			defer c.Close()
		}
	}

	chain, err := effectchain.New(ctx, effectchain.WithLogger(log))
	if err != nil {
		return err
	}
	if o.patchIn != "" {
		if err := loadPatch(chain, o.patchIn); err != nil {
			return err
		}
	}
	for i, s := range slots {
		if err := s.apply(chain, i); err != nil {
			return err
		}
	}
	if o.tilt != "" {
		v, err := parseVector(o.tilt)
		if err != nil {
			return err
		}
		chain.ApplyGyro(v)
	}

	rate := int(ctx.SampleRate)
	var in []float64
	if o.in != "" {
		if in, err = readWAV(o.in, rate); err != nil {
			return err
		}
	} else {
		in = tone(o.freq, o.seconds, 0.5, rate)
	}

	left := append([]float64(nil), in...)
	right := append([]float64(nil), in...)
	start := time.Now()
	chain.Process(left, right)
	log.WithFields(logrus.Fields{
		"samples": len(in),
		"elapsed": time.Since(start),
	}).Debug("processed")

	if err := printChain(stdout, chain); err != nil {
		return err
	}
	printLevels(stdout, in, left, right)
	printTuners(stdout, chain)
	if o.spectrumSize > 0 {
		if err := printSpectrum(stdout, left, ctx.SampleRate, o.spectrumSize); err != nil {
			return err
		}
	}

	if o.out != "" {
		if err := writeWAV(o.out, rate, left, right); err != nil {
			return err
		}
	}
	if o.patchOut != "" {
		if err := savePatch(chain, o.patchOut); err != nil {
			return err
		}
	}
	if o.play {
		return play(rate, left, right)
	}
	return nil
}

func openRAM(o *options, log logrus.FieldLogger) (sram.Transport, error) {
	if o.sramPort != "" {
		b, err := sram.OpenBridge(o.sramPort, o.sramBaud, bridgeTimeout, o.sramSize)
		if err != nil {
			return nil, err
		}
		log.WithField("port", o.sramPort).Info("external RAM bridge open")
		return b, nil
	}
	if o.sramSize <= 0 {
		return nil, nil
	}
	return sram.NewMemory(o.sramSize), nil
}

func loadPatch(c *effectchain.Chain, name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	var p effectchain.Patch
	if err := p.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := c.Restore(p); err != nil && !errors.Is(err, effectchain.ErrUnavailable) {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func savePatch(c *effectchain.Chain, name string) error {
	data, err := c.Snapshot().MarshalBinary()
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}
