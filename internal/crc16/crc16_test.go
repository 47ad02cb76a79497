package crc16

import "testing"

func TestChecksumKnownValues(t *testing.T) {
	tests := []struct {
		data []byte
		want uint16
	}{
		{nil, 0xFFFF},
		{[]byte("123456789"), 0x6F91},
	}
	for _, tc := range tests {
		if got := Checksum(tc.data); got != tc.want {
			t.Fatalf("Checksum(%q) = %#04x, want %#04x", tc.data, got, tc.want)
		}
	}
}

func TestUpdateIsIncremental(t *testing.T) {
	data := []byte{0x03, 0x10, 0x20, 0x30, 0xAA, 0x55}
	whole := Checksum(data)
	split := Update(Checksum(data[:2]), data[2:])
	if whole != split {
		t.Fatalf("incremental CRC %#04x != whole %#04x", split, whole)
	}
}

func TestChecksumDetectsBitFlip(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	crc := Checksum(data)
	data[1] ^= 0x08
	if Checksum(data) == crc {
		t.Fatal("single bit flip not detected")
	}
}
