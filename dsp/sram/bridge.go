package sram

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"

	"github.com/cwbudde/algo-pedal/internal/crc16"
)

// Bridge frame layout.
//
//	request:  sync | cmd | addr[3] | len[2] | payload (writes only) | crc[2]
//	response: status | payload (successful reads only) | crc[2]
//
// A non-zero status carries no payload.
//
// Multi-byte fields are little-endian. The CRC covers every byte after the
// sync byte of a request and every byte before the CRC of a response.
const (
	BridgeSync       byte = 0x7E
	BridgeStatusOK   byte = 0x00
	MaxBridgePayload      = 0xFFFF

	bridgeRequestHeader = 1 + HeaderSize + 2
)

var (
	// ErrBridgeChecksum reports a corrupted response frame.
	ErrBridgeChecksum = errors.New("sram: bridge response checksum mismatch")
	// ErrBridgeStatus reports a transfer the remote board refused.
	ErrBridgeStatus = errors.New("sram: bridge transfer rejected")
)

// Bridge relays frames over a byte stream, normally a UART, to a board that
// owns the RAM and answers each request with a response frame.
type Bridge struct {
	port   io.ReadWriter
	closer io.Closer
	size   int
	frame  []byte
}

// OpenBridge opens the serial device name and returns a Bridge over it.
// Reads that see no data within timeout fail the transfer.
func OpenBridge(name string, baud int, timeout time.Duration, size int) (*Bridge, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("sram: open bridge %s: %w", name, err)
	}
	b := NewBridge(port, size)
	b.closer = port
	return b, nil
}

// NewBridge returns a Bridge over an already open stream. size is the RAM
// capacity in bytes on the far side.
func NewBridge(port io.ReadWriter, size int) *Bridge {
	return &Bridge{
		port: port,
		size: min(max(size, 0), AddressSpace),
	}
}

// Close closes the serial port when the Bridge opened it.
func (b *Bridge) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// Size returns the far-side RAM capacity in bytes.
func (b *Bridge) Size() int { return b.size }

// Transfer implements Transport.
func (b *Bridge) Transfer(cmd Command, addr uint32, payload []byte) error {
	if err := checkCommand(cmd); err != nil {
		return err
	}
	if len(payload) > MaxBridgePayload {
		return fmt.Errorf("%w: payload of %d bytes exceeds bridge frame", ErrAddressRange, len(payload))
	}
	if err := checkRange(addr, len(payload), b.size); err != nil {
		return err
	}

	req := b.buffer(bridgeRequestHeader + len(payload) + 2)
	req[0] = BridgeSync
	PutHeader(req[1:], cmd, addr, LittleEndian)
	binary.LittleEndian.PutUint16(req[1+HeaderSize:], uint16(len(payload)))
	n := bridgeRequestHeader
	if cmd == CmdWrite {
		n += copy(req[n:], payload)
	}
	binary.LittleEndian.PutUint16(req[n:], crc16.Checksum(req[1:n]))
	n += 2
	if _, err := b.port.Write(req[:n]); err != nil {
		return fmt.Errorf("sram: bridge %s at %#06x: %w", cmd, addr, err)
	}

	respLen := 1 + 2
	if cmd == CmdRead {
		respLen += len(payload)
	}
	resp := b.buffer(respLen)
	if _, err := io.ReadFull(b.port, resp[:1]); err != nil {
		return fmt.Errorf("sram: bridge %s at %#06x: read status: %w", cmd, addr, err)
	}
	if resp[0] != BridgeStatusOK {
		respLen = 3
	}
	if _, err := io.ReadFull(b.port, resp[1:respLen]); err != nil {
		return fmt.Errorf("sram: bridge %s at %#06x: read response: %w", cmd, addr, err)
	}
	body := resp[:respLen-2]
	if crc16.Checksum(body) != binary.LittleEndian.Uint16(resp[respLen-2:]) {
		return ErrBridgeChecksum
	}
	if resp[0] != BridgeStatusOK {
		return fmt.Errorf("%w: %s at %#06x, status %#02x", ErrBridgeStatus, cmd, addr, resp[0])
	}
	if cmd == CmdRead {
		copy(payload, body[1:])
	}
	return nil
}

func (b *Bridge) buffer(n int) []byte {
	if cap(b.frame) < n {
		b.frame = make([]byte, n)
	}
	return b.frame[:n]
}
