package zarr

import "errors"

var (
	// ErrValidation is returned when shape, chunk shape, or chunk
	// coordinates violate the array's declared structure.
	ErrValidation = errors.New("validation")

	// ErrIO is returned when a directory or file operation against the
	// backing filesystem fails. State on disk is unspecified after an
	// ErrIO: writes are not transactional across files.
	ErrIO = errors.New("io failure")

	// ErrSerialization is returned when a metadata or attributes record
	// cannot be encoded. Unreachable under the fixed schema, but kept as
	// a modeled outcome.
	ErrSerialization = errors.New("serialization")

	// ErrNotFound is returned by stores when a key has no value. An
	// absent chunk key is not an error condition for readers: with a
	// null fill value the chunk reads as zero-filled.
	ErrNotFound = errors.New("not found")
)
