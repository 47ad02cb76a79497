// Package sram moves delay-line samples to and from external serial RAM.
//
// Every transfer is one frame: a command byte, a 3-byte address and the
// payload. Transport hides where the frame goes: a simulated Memory for
// tests and host rendering, an SPIDevice on a microcontroller bus, or a
// Bridge that relays frames over a UART to a board that owns the RAM.
package sram

import (
	"errors"
	"fmt"
)

// Command selects the transfer direction.
type Command byte

const (
	// CmdWrite sends the payload to the device.
	CmdWrite Command = 2
	// CmdRead fills the payload from the device.
	CmdRead Command = 3
)

func (c Command) String() string {
	switch c {
	case CmdWrite:
		return "write"
	case CmdRead:
		return "read"
	default:
		return fmt.Sprintf("Command(%d)", byte(c))
	}
}

// AddressSpace is the number of bytes reachable with a 3-byte address.
const AddressSpace = 1 << 24

// HeaderSize is the length of the command and address prefix.
const HeaderSize = 4

// ByteOrder is the order of the three address bytes on the wire.
type ByteOrder int

const (
	// LittleEndian sends the least significant address byte first.
	LittleEndian ByteOrder = iota
	// BigEndian sends the most significant address byte first, as 23LC
	// series parts expect.
	BigEndian
)

var (
	// ErrAddressRange reports a transfer that does not fit the device.
	ErrAddressRange = errors.New("sram: address out of range")
	// ErrCommand reports an unknown command byte.
	ErrCommand = errors.New("sram: unknown command")
	// ErrInjected is returned by Memory while fault injection is active.
	ErrInjected = errors.New("sram: injected transfer failure")
)

// Transport performs one synchronous transfer. For CmdRead the payload is
// filled in place; for CmdWrite it is sent unchanged.
type Transport interface {
	Transfer(cmd Command, addr uint32, payload []byte) error
}

// Sizer is implemented by transports that know their capacity in bytes.
type Sizer interface {
	Size() int
}

// PutHeader encodes cmd and addr into dst, which must hold HeaderSize bytes.
func PutHeader(dst []byte, cmd Command, addr uint32, order ByteOrder) {
	_ = dst[HeaderSize-1]
	dst[0] = byte(cmd)
	switch order {
	case BigEndian:
		dst[1] = byte(addr >> 16)
		dst[2] = byte(addr >> 8)
		dst[3] = byte(addr)
	default:
		dst[1] = byte(addr)
		dst[2] = byte(addr >> 8)
		dst[3] = byte(addr >> 16)
	}
}

// ParseHeader decodes a frame header written by PutHeader.
func ParseHeader(src []byte, order ByteOrder) (Command, uint32) {
	_ = src[HeaderSize-1]
	cmd := Command(src[0])
	if order == BigEndian {
		return cmd, uint32(src[1])<<16 | uint32(src[2])<<8 | uint32(src[3])
	}
	return cmd, uint32(src[1]) | uint32(src[2])<<8 | uint32(src[3])<<16
}

func checkRange(addr uint32, n, size int) error {
	if int(addr)+n > size {
		return fmt.Errorf("%w: [%#06x, %#06x) beyond %d bytes", ErrAddressRange, addr, int(addr)+n, size)
	}
	return nil
}

func checkCommand(cmd Command) error {
	if cmd != CmdRead && cmd != CmdWrite {
		return fmt.Errorf("%w: %d", ErrCommand, byte(cmd))
	}
	return nil
}
