package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/cwbudde/algo-pedal/dsp/effectchain"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/dsp/spectrum"
)

var (
	headColor = color.New(color.Bold)
	offColor  = color.New(color.FgHiBlack)
	warnColor = color.New(color.FgYellow)
)

// tuner is satisfied by the tuner effect.
type tuner interface {
	Frequency() float64
	Note() string
	Cents() float64
}

func printList(w io.Writer, reg *effectchain.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Effect\tCategory\tParameters\n")
	fmt.Fprintf(tw, "------\t--------\t----------\n")
	for _, id := range reg.IDs() {
		fx, err := reg.New(effectchain.DefaultContext(), id)
		if err != nil {
			fmt.Fprintf(tw, "%s\t%s\t(needs external RAM)\n", id, id.Category())
			continue
		}
		names := make([]string, fx.ParamCount())
		for n := range names {
			names[n] = fx.ParamName(n)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", id, id.Category(), strings.Join(names, " "))
	}
	return tw.Flush()
}

func printChain(w io.Writer, c *effectchain.Chain) error {
	headColor.Fprintf(w, "Chain\n")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for slot := range effectchain.MaxSlots {
		fx := c.Effector(slot)
		fmt.Fprintf(tw, "%d\t%s\t%s\n", slot+1, fx.Name(), paramText(fx))
	}
	return tw.Flush()
}

func paramText(fx effector.Effector) string {
	var sb strings.Builder
	for n := range fx.ParamCount() {
		if n > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fx.ParamName(n))
		sb.WriteByte('=')
		sb.WriteString(fx.ValueText(n))
		if fx.GyroEnabled(n) {
			sb.WriteByte('~')
		}
	}
	if !fx.Active() {
		sb.WriteString(offColor.Sprint(" (off)"))
	}
	return sb.String()
}

func rmsDB(x []float64) float64 {
	if len(x) == 0 {
		return math.Inf(-1)
	}
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return spectrum.DBFS(math.Sqrt(sum / float64(len(x))))
}

func printLevels(w io.Writer, in, left, right []float64) {
	headColor.Fprintf(w, "Levels\n")
	fmt.Fprintf(w, "  in   %7.2f dBFS rms\n", rmsDB(in))
	fmt.Fprintf(w, "  out  %7.2f / %7.2f dBFS rms (L/R)\n", rmsDB(left), rmsDB(right))
}

func printSpectrum(w io.Writer, x []float64, sampleRate float64, size int) error {
	a, err := spectrum.NewAnalyzer(size, sampleRate)
	if err != nil {
		return err
	}
	s, err := a.Average(x)
	if err != nil {
		return err
	}
	p := s.Peak()
	headColor.Fprintf(w, "Spectrum\n")
	if math.IsInf(p.LevelDB, -1) {
		fmt.Fprintf(w, "  silent\n")
		return nil
	}
	fmt.Fprintf(w, "  peak %.1f Hz at %.2f dBFS (bin %.2f Hz)\n", p.Frequency, p.LevelDB, s.BinWidth)
	return nil
}

func printTuners(w io.Writer, c *effectchain.Chain) {
	for slot := range effectchain.MaxSlots {
		t, ok := c.Effector(slot).(tuner)
		if !ok {
			continue
		}
		headColor.Fprintf(w, "Tuner\n")
		if t.Frequency() == 0 {
			warnColor.Fprintf(w, "  no pitch\n")
			continue
		}
		fmt.Fprintf(w, "  %s %+.0f cents (%.2f Hz)\n", t.Note(), t.Cents(), t.Frequency())
	}
}
