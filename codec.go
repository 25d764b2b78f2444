package zarr

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Chunk payloads are the raw concatenation of elements in row-major
// caller order, little-endian, at the dtype's fixed width. Encoding does
// not check the element count against a chunk shape; the caller supplies
// the exact count for full or edge-truncated chunks.

// EncodeUint16 serializes values as 2-byte little-endian groups.
func EncodeUint16(values []uint16) []byte {
	buf := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(buf[2*i:], v)
	}
	return buf
}

// EncodeFloat64 serializes values as 8-byte little-endian IEEE 754 groups.
func EncodeFloat64(values []float64) []byte {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return buf
}

// EncodeScalarFloat64 serializes a single statistic value as an 8-byte
// payload, for arrays whose chunk shape reduces to one cell.
func EncodeScalarFloat64(v float64) []byte {
	return EncodeFloat64([]float64{v})
}

// DecodeUint16 is the inverse of EncodeUint16.
func DecodeUint16(data []byte) ([]uint16, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: uint16 payload length %d is not a multiple of 2", ErrValidation, len(data))
	}
	values := make([]uint16, len(data)/2)
	for i := range values {
		values[i] = binary.LittleEndian.Uint16(data[2*i:])
	}
	return values, nil
}

// DecodeFloat64 is the inverse of EncodeFloat64.
func DecodeFloat64(data []byte) ([]float64, error) {
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("%w: float64 payload length %d is not a multiple of 8", ErrValidation, len(data))
	}
	values := make([]float64, len(data)/8)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[8*i:]))
	}
	return values, nil
}
