package zarr

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeUint16(t *testing.T) {
	values := []uint16{7, 0, 65535, 258}
	d := EncodeUint16(values)
	require.Len(t, d, 8)

	// 2-byte little-endian groups in caller order
	require.Equal(t, []byte{7, 0}, d[0:2])
	require.Equal(t, []byte{0, 0}, d[2:4])
	require.Equal(t, []byte{0xff, 0xff}, d[4:6])
	require.Equal(t, []byte{2, 1}, d[6:8])

	back, err := DecodeUint16(d)
	require.NoError(t, err)
	require.Equal(t, values, back)
}

func TestEncodeFloat64(t *testing.T) {
	values := []float64{0, 1.5, -273.15, math.Pi}
	d := EncodeFloat64(values)
	require.Len(t, d, 32)

	for i, v := range values {
		bits := binary.LittleEndian.Uint64(d[8*i:])
		require.Equal(t, v, math.Float64frombits(bits))
	}

	back, err := DecodeFloat64(d)
	require.NoError(t, err)
	require.Equal(t, values, back)
}

func TestEncodeScalarFloat64(t *testing.T) {
	d := EncodeScalarFloat64(42.25)
	require.Len(t, d, 8)
	require.Equal(t, 42.25, math.Float64frombits(binary.LittleEndian.Uint64(d)))
}

func TestDecodeRejectsRaggedPayloads(t *testing.T) {
	_, err := DecodeUint16([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrValidation)

	_, err = DecodeFloat64(make([]byte, 12))
	require.ErrorIs(t, err, ErrValidation)
}

func TestEncodeEmpty(t *testing.T) {
	require.Empty(t, EncodeUint16(nil))
	require.Empty(t, EncodeFloat64(nil))
}
