// Package crc16 computes the CCITT CRC16 used to frame SRAM bridge traffic
// and to seal stored patches. It is the reflected variant with an initial
// value of 0xFFFF, the same checksum Klipper-style MCU links append to their
// messages.
package crc16

// Checksum returns the CRC16 of data.
func Checksum(data []byte) uint16 {
	return Update(0xFFFF, data)
}

// Update continues a running CRC16 with data.
func Update(crc uint16, data []byte) uint16 {
	for _, b := range data {
		b ^= uint8(crc & 0xFF)
		b ^= b << 4
		b16 := uint16(b)
		crc = (b16<<8 | crc>>8) ^ (b16 >> 4) ^ (b16 << 3)
	}
	return crc
}
