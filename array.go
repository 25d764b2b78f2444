package zarr

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Array is typed whole-chunk access to one array in a Store. The
// metadata is loaded once at open/create time and never changes.
type Array struct {
	path  Path
	store Store
	meta  *ArrayMeta
}

// Open reads an existing array's .zarray record from the store. Arrays
// written by foreign implementations open fine as long as their dtype is
// a basic typestr; a declared compressor is honored on the read path.
func Open(store Store, path string) (*Array, error) {
	p, err := NewPath(path)
	if err != nil {
		return nil, err
	}

	mp := p.Join(string(MTArray)).String()
	f, err := store.Get(mp)
	if err != nil {
		return nil, errors.Wrapf(err, "opening array at %q", path)
	}
	defer f.Close()

	meta := &ArrayMeta{}
	if err := json.NewDecoder(f).Decode(meta); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", mp)
	}
	// foreign metadata is untrusted: a zero chunk dimension or rank
	// mismatch would poison every later grid computation
	if err := validateShape(meta.Shape, meta.Chunks); err != nil {
		return nil, errors.Wrapf(err, "invalid metadata at %s", mp)
	}

	return &Array{path: p, store: store, meta: meta}, nil
}

// CreateArray validates meta and persists it to the store, returning the
// opened array.
func CreateArray(store Store, path string, meta *ArrayMeta) (*Array, error) {
	p, err := NewPath(path)
	if err != nil {
		return nil, err
	}
	if err := validateShape(meta.Shape, meta.Chunks); err != nil {
		return nil, err
	}

	sink := &StoreSink{Store: store}
	if err := sink.CreateArray(p.String(), meta); err != nil {
		return nil, err
	}

	return &Array{path: p, store: store, meta: meta}, nil
}

func (a *Array) Meta() *ArrayMeta { return a.meta }

func (a *Array) Path() string { return a.path.String() }

// WriteChunkUint16 encodes and stores one whole chunk. The value count
// must equal the chunk's (edge-truncated) element count.
func (a *Array) WriteChunkUint16(coords []uint64, values []uint16) error {
	if a.meta.Dtype != Uint16LE {
		return fmt.Errorf("%w: array holds %s (%s) values, not %s", ErrValidation, a.meta.Dtype, a.meta.Dtype.BasicType.Human(), Uint16LE)
	}
	key, err := a.checkedChunkKey(coords, uint64(len(values)))
	if err != nil {
		return err
	}
	return (&StoreSink{Store: a.store}).WriteChunk(a.path.String(), key, EncodeUint16(values))
}

// WriteChunkFloat64 encodes and stores one whole chunk. The value count
// must equal the chunk's (edge-truncated) element count.
func (a *Array) WriteChunkFloat64(coords []uint64, values []float64) error {
	if a.meta.Dtype != Float64LE {
		return fmt.Errorf("%w: array holds %s (%s) values, not %s", ErrValidation, a.meta.Dtype, a.meta.Dtype.BasicType.Human(), Float64LE)
	}
	key, err := a.checkedChunkKey(coords, uint64(len(values)))
	if err != nil {
		return err
	}
	return (&StoreSink{Store: a.store}).WriteChunk(a.path.String(), key, EncodeFloat64(values))
}

// ReadChunkUint16 loads one whole chunk. An absent chunk key reads as a
// zero-filled buffer: the profile writes a null fill value, which the
// compatible ecosystem defines as zero.
func (a *Array) ReadChunkUint16(coords []uint64) ([]uint16, error) {
	if a.meta.Dtype != Uint16LE {
		return nil, fmt.Errorf("%w: array holds %s (%s) values, not %s", ErrValidation, a.meta.Dtype, a.meta.Dtype.BasicType.Human(), Uint16LE)
	}
	key, err := a.meta.ChunkKey(coords)
	if err != nil {
		return nil, err
	}
	n := a.meta.ChunkElemCount(coords)
	data, err := a.readChunkBytes(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return make([]uint16, n), nil
		}
		return nil, err
	}
	values, err := DecodeUint16(data)
	if err != nil {
		return nil, err
	}
	if uint64(len(values)) != n {
		return nil, fmt.Errorf("%w: chunk holds %d elements, expected %d", ErrValidation, len(values), n)
	}
	return values, nil
}

// ReadChunkFloat64 loads one whole chunk, zero-filled when absent.
func (a *Array) ReadChunkFloat64(coords []uint64) ([]float64, error) {
	if a.meta.Dtype != Float64LE {
		return nil, fmt.Errorf("%w: array holds %s (%s) values, not %s", ErrValidation, a.meta.Dtype, a.meta.Dtype.BasicType.Human(), Float64LE)
	}
	key, err := a.meta.ChunkKey(coords)
	if err != nil {
		return nil, err
	}
	n := a.meta.ChunkElemCount(coords)
	data, err := a.readChunkBytes(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return make([]float64, n), nil
		}
		return nil, err
	}
	values, err := DecodeFloat64(data)
	if err != nil {
		return nil, err
	}
	if uint64(len(values)) != n {
		return nil, fmt.Errorf("%w: chunk holds %d elements, expected %d", ErrValidation, len(values), n)
	}
	return values, nil
}

func (a *Array) checkedChunkKey(coords []uint64, count uint64) (string, error) {
	key, err := a.meta.ChunkKey(coords)
	if err != nil {
		return "", err
	}
	if want := a.meta.ChunkElemCount(coords); count != want {
		return "", fmt.Errorf("%w: got %d elements for chunk %s, expected %d", ErrValidation, count, key, want)
	}
	return key, nil
}

func (a *Array) readChunkBytes(key string) ([]byte, error) {
	f, err := a.store.Get(a.path.Join(key).String())
	if err != nil {
		return nil, err
	}
	r, err := a.meta.Compressor.Decompressor(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "opening chunk %s", key)
	}
	defer r.Close()
	return io.ReadAll(r)
}
