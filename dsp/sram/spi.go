package sram

import (
	"fmt"

	"tinygo.org/x/drivers"
)

// SPIDevice talks to a serial SRAM on a shared SPI bus. Select is called
// with true before the frame and false after it; it drives the chip-select
// line of the part.
type SPIDevice struct {
	bus      drivers.SPI
	selectFn func(active bool)
	order    ByteOrder
	size     int

	header  [HeaderSize]byte
	scratch []byte
}

// SPIOption configures an SPIDevice.
type SPIOption func(*SPIDevice)

// WithByteOrder sets the wire order of the address bytes.
func WithByteOrder(order ByteOrder) SPIOption {
	return func(d *SPIDevice) { d.order = order }
}

// WithSize sets the device capacity in bytes.
func WithSize(size int) SPIOption {
	return func(d *SPIDevice) { d.size = min(max(size, 0), AddressSpace) }
}

// NewSPIDevice wraps bus. The capacity defaults to the full 3-byte address
// space.
func NewSPIDevice(bus drivers.SPI, selectFn func(active bool), opts ...SPIOption) *SPIDevice {
	d := &SPIDevice{
		bus:      bus,
		selectFn: selectFn,
		size:     AddressSpace,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Size returns the device capacity in bytes.
func (d *SPIDevice) Size() int { return d.size }

// Transfer implements Transport. Reads clock out zeros while filling the
// payload, since the bus is full duplex.
func (d *SPIDevice) Transfer(cmd Command, addr uint32, payload []byte) error {
	if err := checkCommand(cmd); err != nil {
		return err
	}
	if err := checkRange(addr, len(payload), d.size); err != nil {
		return err
	}
	PutHeader(d.header[:], cmd, addr, d.order)

	if d.selectFn != nil {
		d.selectFn(true)
		defer d.selectFn(false)
	}
	if err := d.bus.Tx(d.header[:], nil); err != nil {
		return fmt.Errorf("sram: spi %s header: %w", cmd, err)
	}
	if cmd == CmdWrite {
		if err := d.bus.Tx(payload, nil); err != nil {
			return fmt.Errorf("sram: spi write %d bytes: %w", len(payload), err)
		}
		return nil
	}
	if cap(d.scratch) < len(payload) {
		d.scratch = make([]byte, len(payload))
	}
	tx := d.scratch[:len(payload)]
	clear(tx)
	if err := d.bus.Tx(tx, payload); err != nil {
		return fmt.Errorf("sram: spi read %d bytes: %w", len(payload), err)
	}
	return nil
}
