// Package zarr writes chunked N-dimensional arrays in a constrained
// zarr v2 profile: JSON .zarray metadata, optional .zattrs sidecars, and
// one file per chunk under dot-joined decimal keys, with uncompressed
// little-endian row-major payloads. The on-disk bytes are the contract:
// trees written here must stay readable by independent zarr v2 readers,
// so the schema and layout are fixed rather than configurable.
//
// Two writing paths exist. DirSink is the hand-rolled direct-filesystem
// writer used for interoperable trees; Array layers typed whole-chunk
// access over the Store abstraction. Both produce identical bytes for
// the profile's two dtypes.
package zarr

import "strings"

// Path is a logical location in a store, split on "/".
type Path []string

// NewPath normalizes a posix-style path: backslashes become slashes,
// leading/trailing separators are stripped, and runs of separators
// collapse, so equivalent spellings address the same store keys.
func NewPath(posix string) (Path, error) {
	posix = strings.ReplaceAll(posix, "\\", "/")
	parts := strings.Split(posix, "/")
	p := make(Path, 0, len(parts))
	for _, el := range parts {
		if el != "" {
			p = append(p, el)
		}
	}
	return p, nil
}

func (p Path) String() string {
	return strings.Join(p, "/")
}

func (p Path) Join(elems ...string) Path {
	joined := make(Path, 0, len(p)+len(elems))
	joined = append(joined, p...)
	return append(joined, elems...)
}
