package delay

import (
	"encoding/binary"
	"math"
)

// Sample is a storage format for delayed audio. Narrow formats trade
// resolution for memory: int8 and int16 hold values scaled by 127 and 32767
// and saturate at full scale, float32 stores the value as is.
type Sample interface {
	int8 | int16 | float32
}

// Encode converts an audio value to storage format T.
func Encode[T Sample](v float64) T {
	var s T
	switch p := any(&s).(type) {
	case *int8:
		*p = int8(math.Round(saturate(v) * 127))
	case *int16:
		*p = int16(math.Round(saturate(v) * 32767))
	case *float32:
		*p = float32(v)
	}
	return s
}

// Decode converts a stored value back to an audio value.
func Decode[T Sample](s T) float64 {
	switch v := any(s).(type) {
	case int8:
		return float64(v) / 127
	case int16:
		return float64(v) / 32767
	case float32:
		return float64(v)
	}
	return 0
}

// SampleSize returns the number of bytes one T occupies in external memory.
func SampleSize[T Sample]() int {
	var s T
	switch any(s).(type) {
	case int8:
		return 1
	case int16:
		return 2
	default:
		return 4
	}
}

// putSample writes s little-endian into dst.
func putSample[T Sample](dst []byte, s T) {
	switch v := any(s).(type) {
	case int8:
		dst[0] = byte(v)
	case int16:
		binary.LittleEndian.PutUint16(dst, uint16(v))
	case float32:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
	}
}

// getSample reads a little-endian T from src.
func getSample[T Sample](src []byte) T {
	var s T
	switch p := any(&s).(type) {
	case *int8:
		*p = int8(src[0])
	case *int16:
		*p = int16(binary.LittleEndian.Uint16(src))
	case *float32:
		*p = math.Float32frombits(binary.LittleEndian.Uint32(src))
	}
	return s
}

func saturate(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	if v != v {
		return 0
	}
	return v
}

// Capacity returns the number of samples needed to delay by up to
// maxTimeMs at sampleRate: 1 + floor(maxTimeMs*sampleRate/1000).
func Capacity(maxTimeMs, sampleRate float64) int {
	return 1 + int(math.Floor(maxTimeMs*sampleRate/1000))
}
