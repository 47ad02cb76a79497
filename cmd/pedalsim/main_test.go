package main

import (
	"bytes"
	"errors"
	"flag"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/cwbudde/algo-pedal/dsp/effectchain"
	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/dsp/effects/modulation"
)

func init() {
	color.NoColor = true
}

func TestParseSlot(t *testing.T) {
	s, err := parseSlot("overdrive:GAIN=70:level=40:~treble")
	if err != nil {
		t.Fatal(err)
	}
	if s.id != effector.IDOverDrive {
		t.Fatalf("id = %v, want OverDrive", s.id)
	}
	want := []paramValue{{"GAIN", 70}, {"LEVEL", 40}}
	if len(s.values) != len(want) {
		t.Fatalf("values = %v, want %v", s.values, want)
	}
	for i := range want {
		if s.values[i] != want[i] {
			t.Fatalf("values[%d] = %v, want %v", i, s.values[i], want[i])
		}
	}
	if len(s.gyro) != 1 || s.gyro[0] != "TREBLE" {
		t.Fatalf("gyro = %v, want [TREBLE]", s.gyro)
	}
}

func TestParseSlotErrors(t *testing.T) {
	for _, spec := range []string{"fuzz", "chorus:RATE", "chorus:RATE=fast"} {
		if _, err := parseSlot(spec); !errors.Is(err, errSpec) {
			t.Errorf("parseSlot(%q) err = %v, want errSpec", spec, err)
		}
	}
}

func TestParseVector(t *testing.T) {
	v, err := parseVector("0.5, -1,2")
	if err != nil {
		t.Fatal(err)
	}
	if v != (effector.Vector{X: 0.5, Y: -1, Z: 2}) {
		t.Fatalf("v = %+v", v)
	}
	for _, s := range []string{"1,2", "a,b,c", ""} {
		if _, err := parseVector(s); err == nil {
			t.Errorf("parseVector(%q) succeeded", s)
		}
	}
}

func TestApplyUnknownParam(t *testing.T) {
	c, err := effectchain.New(effectchain.DefaultContext())
	if err != nil {
		t.Fatal(err)
	}
	s, err := parseSlot("booster:DRIVE=3")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.apply(c, 0); !errors.Is(err, errSpec) {
		t.Fatalf("err = %v, want errSpec", err)
	}
}

func TestRunList(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-list"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	for id := effector.ID(0); id < effector.IDCount; id++ {
		if !strings.Contains(stdout.String(), id.String()) {
			t.Errorf("list lacks %s", id)
		}
	}
	if !strings.Contains(stdout.String(), "needs external RAM") {
		t.Error("DelaySpi should be listed as needing external RAM")
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-h"}, &stdout, &stderr); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("err = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(stderr.String(), "Usage: pedalsim") {
		t.Fatal("usage not printed")
	}
}

func TestRunTooManySlots(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"booster", "booster", "booster", "booster"}, &stdout, &stderr); err == nil {
		t.Fatal("four slots accepted")
	}
}

func TestRunTuner(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-tone", "110", "-sram-size", "0", "tuner"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "A2") {
		t.Fatalf("tuner note missing:\n%s", stdout.String())
	}
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")
	patch := filepath.Join(dir, "chain.patch")

	const rate = 44433
	src := tone(440, 0.5, 0.25, rate)
	if err := writeWAV(in, rate, src, src); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	args := []string{
		"-in", in, "-out", out, "-patch-out", patch, "-spectrum", "4096",
		"booster:LEVEL=6", "chorus:~RATE", "delayspi:TIME=200",
	}
	if err := run(args, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}
	report := stdout.String()
	for _, want := range []string{"BOOSTER", "CHORUS", "DELAY SPI", "LEVEL=6dB", "RATE=30~", "Spectrum"} {
		if !strings.Contains(report, want) {
			t.Errorf("report lacks %q:\n%s", want, report)
		}
	}

	got, err := readWAV(out, rate)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(src) {
		t.Fatalf("output length = %d, want %d", len(got), len(src))
	}
	peak := 0.0
	for _, v := range got {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak < 0.05 || math.IsNaN(peak) {
		t.Fatalf("output peak = %g", peak)
	}

	data, err := os.ReadFile(patch)
	if err != nil {
		t.Fatal(err)
	}
	var p effectchain.Patch
	if err := p.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if p.Slots[0].EffectID != effector.IDBooster || p.Slots[2].EffectID != effector.IDDelaySpi {
		t.Fatalf("patch slots = %v, %v", p.Slots[0].EffectID, p.Slots[2].EffectID)
	}
	if !p.Slots[1].GyroFlags[modulation.ChorusRate] {
		t.Fatal("chorus RATE gyro flag not saved")
	}

	stdout.Reset()
	if err := run([]string{"-patch-in", patch, "-sram-size", "0", "-dur", "0.2"}, &stdout, &stderr); err != nil {
		t.Fatalf("restore without RAM: %v", err)
	}
	if !strings.Contains(stdout.String(), "BYPASS") {
		t.Fatalf("slot without RAM should be bypassed:\n%s", stdout.String())
	}
}

func TestRunBadPatch(t *testing.T) {
	name := filepath.Join(t.TempDir(), "bad.patch")
	if err := os.WriteFile(name, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-patch-in", name}, &stdout, &stderr); !errors.Is(err, effectchain.ErrPatchFormat) {
		t.Fatalf("err = %v, want ErrPatchFormat", err)
	}
}
