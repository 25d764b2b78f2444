package zarr

import (
	"io"

	"github.com/qri-io/dataset/compression"
)

// CompressionMeta describes the compression codec declared on a .zarray
// record. The write profile never sets one: a nil *CompressionMeta
// serializes as null, which is what the external reader expects.
type CompressionMeta struct {
	ID      string `json:"id"`
	Cname   string `json:"cname,omitempty"`
	Clevel  int    `json:"clevel,omitempty"`
	Shuffle int    `json:"shuffle,omitempty"`
}

// Decompressor wraps r with the codec's decompressor. A nil receiver
// means uncompressed chunks and passes r through unchanged, letting
// Array.Open consume foreign arrays that do declare a codec.
func (m *CompressionMeta) Decompressor(r io.ReadCloser) (io.ReadCloser, error) {
	if m == nil {
		return r, nil
	}
	return compression.Decompressor(m.ID, r)
}
