package zarr

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type MetaType string

const (
	// MTAttributes stores userland metadata keyed by array name
	MTAttributes MetaType = ".zattrs"
	// MTArray is the key for storing metadata on an array store
	MTArray MetaType = ".zarray"
	// MTGroup is the key for storing group definitions on an array store
	MTGroup MetaType = ".zgroup"
)

// MetaTyper is any record stored under one of the dotted sidecar keys.
type MetaTyper interface {
	MetaType() MetaType
}

// ZarrFormatVersion is the storage specification version written to every
// .zarray record. Part of the interoperability contract: external readers
// reject other values.
const ZarrFormatVersion = 2

// OrderRowMajor is the "C" byte layout marker: the last dimension varies
// fastest. The write profile is fixed to row-major.
const OrderRowMajor = "C"

// Each array requires essential configuration metadata to be stored,
// enabling correct interpretation of the stored data.
// This metadata is encoded using JSON and stored as the value of the
// ".zarray" key within an array store.
//
// The key set is fixed. Compressor and fill value are always null in
// records written by this package; readers in the compatible ecosystem
// treat a null fill value as zero, so an absent chunk reads as
// zero-filled. ArrayMeta is never mutated after creation.
type ArrayMeta struct {
	// An integer defining the version of the storage specification to which
	// the array store adheres.
	ZarrFormat int `json:"zarr_format"`
	// A list of integers defining the length of each dimension of the array.
	Shape []uint64 `json:"shape"`
	// A list of integers defining the length of each dimension of a chunk of
	// the array. Note that all chunks within a zarr array have the same shape.
	Chunks []uint64 `json:"chunks"`
	// A string defining a valid data type for the array.
	Dtype Dtype `json:"dtype"`
	// The primary compression codec, or null if no compressor is used.
	Compressor *CompressionMeta `json:"compressor"`
	// A scalar value providing the default value to use for uninitialized
	// portions of the array, or null if no fill_value is to be used.
	FillValue interface{} `json:"fill_value"`
	// Either "C" or "F", defining the layout of bytes within each chunk of
	// the array.
	Order string `json:"order"`
}

func (ArrayMeta) MetaType() MetaType { return MTArray }

// NewArrayMeta builds the metadata record for a new uncompressed row-major
// array. Shape and chunk shape must have equal rank and strictly positive
// dimensions.
func NewArrayMeta(shape, chunks []uint64, dtype Dtype) (*ArrayMeta, error) {
	if err := validateShape(shape, chunks); err != nil {
		return nil, err
	}
	return &ArrayMeta{
		ZarrFormat: ZarrFormatVersion,
		Shape:      shape,
		Chunks:     chunks,
		Dtype:      dtype,
		Order:      OrderRowMajor,
	}, nil
}

func validateShape(shape, chunks []uint64) error {
	if len(shape) != len(chunks) {
		return fmt.Errorf("%w: shape rank %d does not match chunk shape rank %d", ErrValidation, len(shape), len(chunks))
	}
	for i, s := range shape {
		if s == 0 {
			return fmt.Errorf("%w: shape dimension %d is zero", ErrValidation, i)
		}
		if chunks[i] == 0 {
			return fmt.Errorf("%w: chunk shape dimension %d is zero", ErrValidation, i)
		}
	}
	return nil
}

// marshalRecord encodes a sidecar record, folding encoder failures into
// the serialization taxonomy. Unreachable for the fixed schema, but the
// outcome stays modeled.
//
// HTML escaping must stay off: typestrs start with "<" and external
// readers expect the literal byte, not "<".
func marshalRecord(rec MetaTyper) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("%w: encoding %s record: %v", ErrSerialization, rec.MetaType(), err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Axis name lists carried on the two .zattrs variants.
var (
	cropAxisNames       = []string{"t", "c", "z", "y", "x"}
	backgroundAxisNames = []string{"t", "c", "z"}
)

// BackgroundDescription is the fixed text on the background-statistics
// array sidecar.
const BackgroundDescription = "Median of pixels outside all crop bounding boxes"

// BBox is a crop bounding box in pixel units.
type BBox struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
	W uint32 `json:"w"`
	H uint32 `json:"h"`
}

// CropAttrs is the .zattrs variant attached to per-crop arrays.
type CropAttrs struct {
	AxisNames []string `json:"axis_names"`
	BBox      BBox     `json:"bbox"`
}

func (CropAttrs) MetaType() MetaType { return MTAttributes }

func NewCropAttrs(x, y, w, h uint32) CropAttrs {
	return CropAttrs{
		AxisNames: cropAxisNames,
		BBox:      BBox{X: x, Y: y, W: w, H: h},
	}
}

// BackgroundAttrs is the .zattrs variant attached to the
// background-statistics array.
type BackgroundAttrs struct {
	AxisNames   []string `json:"axis_names"`
	Description string   `json:"description"`
}

func (BackgroundAttrs) MetaType() MetaType { return MTAttributes }

func NewBackgroundAttrs() BackgroundAttrs {
	return BackgroundAttrs{
		AxisNames:   backgroundAxisNames,
		Description: BackgroundDescription,
	}
}
