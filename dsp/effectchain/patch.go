package effectchain

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-pedal/dsp/effector"
	"github.com/cwbudde/algo-pedal/internal/crc16"
)

// MaxParams is the number of parameter values stored per slot.
const MaxParams = 6

const (
	patchVersion   = 1
	slotRecordSize = 2 + 8*MaxParams
)

// PatchSize is the length of an encoded Patch.
const PatchSize = 1 + MaxSlots*slotRecordSize + 2

var (
	// ErrPatchChecksum is returned when an encoded patch fails its CRC.
	ErrPatchChecksum = errors.New("patch checksum mismatch")

	// ErrPatchFormat is returned for an encoded patch of the wrong length
	// or version.
	ErrPatchFormat = errors.New("malformed patch")
)

// SlotRecord is the saved state of one slot. Entries past the effect's
// parameter count are zero.
type SlotRecord struct {
	EffectID  effector.ID
	GyroFlags [MaxParams]bool
	Values    [MaxParams]float64
}

// Patch is the saved state of a whole chain.
type Patch struct {
	Slots [MaxSlots]SlotRecord
}

// MarshalBinary encodes p as a version byte, one record per slot and a
// CRC16 of everything before it, all little-endian. A record is the effect
// ID, a byte of gyro flags (bit n for parameter n) and six float64 values.
func (p Patch) MarshalBinary() ([]byte, error) {
	buf := make([]byte, PatchSize)
	buf[0] = patchVersion
	off := 1
	for _, s := range p.Slots {
		buf[off] = byte(s.EffectID)
		var flags byte
		for n, on := range s.GyroFlags {
			if on {
				flags |= 1 << n
			}
		}
		buf[off+1] = flags
		for n, v := range s.Values {
			binary.LittleEndian.PutUint64(buf[off+2+8*n:], math.Float64bits(v))
		}
		off += slotRecordSize
	}
	binary.LittleEndian.PutUint16(buf[off:], crc16.Checksum(buf[:off]))
	return buf, nil
}

// UnmarshalBinary decodes data written by MarshalBinary.
func (p *Patch) UnmarshalBinary(data []byte) error {
	if len(data) != PatchSize {
		return fmt.Errorf("effectchain: %w: %d bytes, want %d", ErrPatchFormat, len(data), PatchSize)
	}
	body := data[:PatchSize-2]
	if got, want := crc16.Checksum(body), binary.LittleEndian.Uint16(data[PatchSize-2:]); got != want {
		return fmt.Errorf("effectchain: %w: %#04x, want %#04x", ErrPatchChecksum, got, want)
	}
	if body[0] != patchVersion {
		return fmt.Errorf("effectchain: %w: version %d", ErrPatchFormat, body[0])
	}

	var out Patch
	off := 1
	for i := range out.Slots {
		s := &out.Slots[i]
		s.EffectID = effector.ID(body[off])
		if s.EffectID >= effector.IDCount {
			return fmt.Errorf("effectchain: slot %d: %w: id %d", i, ErrUnknownEffect, body[off])
		}
		flags := body[off+1]
		for n := range s.GyroFlags {
			s.GyroFlags[n] = flags&(1<<n) != 0
		}
		for n := range s.Values {
			s.Values[n] = math.Float64frombits(binary.LittleEndian.Uint64(body[off+2+8*n:]))
		}
		off += slotRecordSize
	}
	*p = out
	return nil
}

// Snapshot records the effect, gyro links and parameter values of every
// slot.
func (c *Chain) Snapshot() Patch {
	var p Patch
	for i, fx := range c.slots {
		s := &p.Slots[i]
		s.EffectID = fx.ID()
		for n := 0; n < min(fx.ParamCount(), MaxParams); n++ {
			s.GyroFlags[n] = fx.GyroEnabled(n)
			s.Values[n] = fx.Param(n).Value
		}
	}
	return p
}

// Restore installs the effects of p and replays their settings, which
// recomputes every derived coefficient. Slots whose effect is already in
// place keep their running state. Unavailable effects leave their slot
// bypassed; the errors are joined and returned after all slots are done.
func (c *Chain) Restore(p Patch) error {
	var errs []error
	names := make([]string, 0, MaxSlots)
	for i, s := range p.Slots {
		names = append(names, s.EffectID.String())
		if c.slots[i].ID() != s.EffectID {
			if err := c.SetEffect(i, s.EffectID); err != nil {
				errs = append(errs, err)
				continue
			}
		}
		fx := c.slots[i]
		for n := 0; n < min(fx.ParamCount(), MaxParams); n++ {
			fx.SetParamValue(n, s.Values[n])
			fx.SetGyroEnable(n, s.GyroFlags[n])
		}
	}
	c.log.WithFields(logrus.Fields{
		"slots":  names,
		"errors": len(errs),
	}).Info("patch restored")
	return errors.Join(errs...)
}
