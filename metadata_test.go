package zarr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewArrayMeta(t *testing.T) {
	m, err := NewArrayMeta([]uint64{1, 1, 1, 100, 100}, []uint64{1, 1, 1, 50, 50}, Uint16LE)
	require.NoError(t, err)
	require.Equal(t, ZarrFormatVersion, m.ZarrFormat)
	require.Equal(t, []uint64{1, 1, 1, 100, 100}, m.Shape)
	require.Equal(t, []uint64{1, 1, 1, 50, 50}, m.Chunks)
	require.Equal(t, OrderRowMajor, m.Order)
	require.Nil(t, m.Compressor)
	require.Nil(t, m.FillValue)
}

func TestNewArrayMetaValidation(t *testing.T) {
	cases := []struct {
		name   string
		shape  []uint64
		chunks []uint64
	}{
		{"rank mismatch", []uint64{10, 10}, []uint64{5}},
		{"zero shape dim", []uint64{0, 10}, []uint64{5, 5}},
		{"zero chunk dim", []uint64{10, 10}, []uint64{5, 0}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewArrayMeta(c.shape, c.chunks, Uint16LE)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestArrayMetaSerialization(t *testing.T) {
	m, err := NewArrayMeta([]uint64{100, 100}, []uint64{50, 50}, Uint16LE)
	require.NoError(t, err)

	d, err := marshalRecord(m)
	require.NoError(t, err)

	// the typestr must land on disk as the literal "<u2", never the
	// HTML-escaped "\u003cu2"
	require.Contains(t, string(d), `"dtype":"<u2"`)
	require.NotContains(t, string(d), `\u003c`)

	// the key set and the null compressor/fill_value are load-bearing for
	// external readers
	rec := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(d, &rec))
	require.Len(t, rec, 7)
	for _, key := range []string{"zarr_format", "shape", "chunks", "dtype", "compressor", "fill_value", "order"} {
		require.Contains(t, rec, key)
	}
	require.Equal(t, "null", string(rec["compressor"]))
	require.Equal(t, "null", string(rec["fill_value"]))
	require.Equal(t, `"<u2"`, string(rec["dtype"]))
	require.Equal(t, `"C"`, string(rec["order"]))
	require.Equal(t, "2", string(rec["zarr_format"]))

	back := &ArrayMeta{}
	require.NoError(t, json.Unmarshal(d, back))
	require.Equal(t, m.Shape, back.Shape)
	require.Equal(t, m.Chunks, back.Chunks)
	require.Equal(t, m.Dtype, back.Dtype)
}

func TestForeignMetadataDecodes(t *testing.T) {
	// written by another implementation, compressor declared
	const foreign = `{
		"zarr_format": 2,
		"shape": [10000, 10000],
		"chunks": [1000, 1000],
		"dtype": "<f8",
		"compressor": {"id": "zstd"},
		"fill_value": null,
		"order": "C"
	}`

	m := &ArrayMeta{}
	require.NoError(t, json.Unmarshal([]byte(foreign), m))
	require.Equal(t, Float64LE, m.Dtype)
	require.NotNil(t, m.Compressor)
	require.Equal(t, "zstd", m.Compressor.ID)
}

func TestCropAttrs(t *testing.T) {
	attrs := NewCropAttrs(10, 20, 30, 40)
	require.Equal(t, []string{"t", "c", "z", "y", "x"}, attrs.AxisNames)

	d, err := marshalRecord(attrs)
	require.NoError(t, err)
	require.JSONEq(t, `{"axis_names":["t","c","z","y","x"],"bbox":{"x":10,"y":20,"w":30,"h":40}}`, string(d))
}

func TestBackgroundAttrs(t *testing.T) {
	d, err := marshalRecord(NewBackgroundAttrs())
	require.NoError(t, err)
	require.JSONEq(t, `{"axis_names":["t","c","z"],"description":"Median of pixels outside all crop bounding boxes"}`, string(d))
}

func TestParseDtype(t *testing.T) {
	for _, s := range []string{"<u2", "<f8", "<i4", ">u8", "|b1"} {
		dt, err := ParseDtype(s)
		require.NoError(t, err, s)
		require.Equal(t, s, dt.String())
	}

	for _, s := range []string{"", "u2", "<x2", "<u"} {
		_, err := ParseDtype(s)
		require.Error(t, err, s)
	}
}

func TestProfileDtypeStrings(t *testing.T) {
	require.Equal(t, "<u2", Uint16LE.String())
	require.Equal(t, "<f8", Float64LE.String())
}
