package zarr

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cropstack/zarr/util/logger"
)

// ArraySink is the capability shared by the two array-writing paths:
// create an array, write whole-chunk payloads, attach an attributes
// sidecar. DirSink writes the filesystem layout directly; StoreSink goes
// through a Store. Callers pick one per array tree; nothing here holds
// process-wide state.
type ArraySink interface {
	// CreateArray persists the .zarray record for a new array at
	// arrayPath, creating directories as needed and overwriting any
	// existing record.
	CreateArray(arrayPath string, meta *ArrayMeta) error
	// WriteChunk stores payload under arrayPath/key, fully replacing any
	// existing chunk file.
	WriteChunk(arrayPath, key string, payload []byte) error
	// WriteAttributes persists the .zattrs sidecar for arrayPath,
	// overwriting any existing one. There is no merge.
	WriteAttributes(arrayPath string, attrs MetaTyper) error
}

// DirSink writes arrays directly under a root directory. This is the
// interoperability path: the exact bytes it lays down are what the
// external reader consumes.
type DirSink struct {
	Root string
}

var _ ArraySink = (*DirSink)(nil)

func (s *DirSink) CreateArray(arrayPath string, meta *ArrayMeta) error {
	if err := validateShape(meta.Shape, meta.Chunks); err != nil {
		return err
	}
	data, err := marshalRecord(meta)
	if err != nil {
		return err
	}

	dir := filepath.Join(s.Root, arrayPath)
	if err := os.MkdirAll(dir, dirPermissionBits); err != nil {
		return fmt.Errorf("%w: creating array dir %s: %v", ErrIO, dir, err)
	}
	if err := writeFileAtomic(filepath.Join(dir, string(MTArray)), bytes.NewReader(data)); err != nil {
		return err
	}

	logger.L.WithField("prefix", "zarr").
		Debugf("created array %s shape=%v chunks=%v dtype=%s", arrayPath, meta.Shape, meta.Chunks, meta.Dtype)
	return nil
}

func (s *DirSink) WriteChunk(arrayPath, key string, payload []byte) error {
	path := filepath.Join(s.Root, arrayPath, key)
	if err := writeFileAtomic(path, bytes.NewReader(payload)); err != nil {
		return err
	}
	logger.L.WithField("prefix", "zarr").
		Debugf("wrote chunk %s/%s (%d bytes)", arrayPath, key, len(payload))
	return nil
}

func (s *DirSink) WriteAttributes(arrayPath string, attrs MetaTyper) error {
	data, err := marshalRecord(attrs)
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.Root, arrayPath, string(MTAttributes)), bytes.NewReader(data))
}

// StoreSink writes arrays through a Store, sharing one layout and byte
// encoding with DirSink.
type StoreSink struct {
	Store Store
}

var _ ArraySink = (*StoreSink)(nil)

func (s *StoreSink) CreateArray(arrayPath string, meta *ArrayMeta) error {
	if err := validateShape(meta.Shape, meta.Chunks); err != nil {
		return err
	}
	data, err := marshalRecord(meta)
	if err != nil {
		return err
	}
	return s.put(arrayPath, string(MTArray), data)
}

func (s *StoreSink) WriteChunk(arrayPath, key string, payload []byte) error {
	return s.put(arrayPath, key, payload)
}

func (s *StoreSink) WriteAttributes(arrayPath string, attrs MetaTyper) error {
	data, err := marshalRecord(attrs)
	if err != nil {
		return err
	}
	return s.put(arrayPath, string(MTAttributes), data)
}

func (s *StoreSink) put(arrayPath, name string, data []byte) error {
	p, err := NewPath(arrayPath)
	if err != nil {
		return err
	}
	return s.Store.Put(p.Join(name).String(), bytes.NewReader(data))
}

// CreateArrayUint16 creates an uncompressed little-endian uint16 array
// and returns its metadata for subsequent chunk addressing.
func CreateArrayUint16(sink ArraySink, arrayPath string, shape, chunks []uint64) (*ArrayMeta, error) {
	meta, err := NewArrayMeta(shape, chunks, Uint16LE)
	if err != nil {
		return nil, err
	}
	if err := sink.CreateArray(arrayPath, meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// CreateArrayFloat64 creates an uncompressed little-endian float64 array
// and returns its metadata for subsequent chunk addressing.
func CreateArrayFloat64(sink ArraySink, arrayPath string, shape, chunks []uint64) (*ArrayMeta, error) {
	meta, err := NewArrayMeta(shape, chunks, Float64LE)
	if err != nil {
		return nil, err
	}
	if err := sink.CreateArray(arrayPath, meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// WriteChunkUint16 encodes values and stores them under the key for
// coords. The element count is the caller's obligation: full chunks take
// the declared chunk shape's count, edge chunks the truncated one.
func WriteChunkUint16(sink ArraySink, arrayPath string, meta *ArrayMeta, coords []uint64, values []uint16) error {
	key, err := meta.ChunkKey(coords)
	if err != nil {
		return err
	}
	return sink.WriteChunk(arrayPath, key, EncodeUint16(values))
}

// WriteChunkFloat64Scalar stores a single-statistic chunk: an 8-byte
// payload for arrays whose chunk shape reduces to one cell.
func WriteChunkFloat64Scalar(sink ArraySink, arrayPath string, meta *ArrayMeta, coords []uint64, value float64) error {
	key, err := meta.ChunkKey(coords)
	if err != nil {
		return err
	}
	return sink.WriteChunk(arrayPath, key, EncodeScalarFloat64(value))
}

// WriteCropAttrs attaches the bounding-box sidecar to a per-crop array.
func WriteCropAttrs(sink ArraySink, arrayPath string, x, y, w, h uint32) error {
	return sink.WriteAttributes(arrayPath, NewCropAttrs(x, y, w, h))
}

// WriteBackgroundAttrs attaches the descriptive sidecar to the
// background-statistics array.
func WriteBackgroundAttrs(sink ArraySink, arrayPath string) error {
	return sink.WriteAttributes(arrayPath, NewBackgroundAttrs())
}
