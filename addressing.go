package zarr

import (
	"fmt"
	"strconv"
	"strings"
)

// chunkKeySeparator joins the decimal coordinate values of a chunk key.
// Arrays in this profile always use the "." separator, producing flat
// keys of the form "0.0".
const chunkKeySeparator = "."

// ChunkKeyFor derives the storage key for a chunk coordinate tuple:
// decimal values joined in order, no zero padding. The mapping is
// forward-only and injective for a fixed rank; key comparison implies no
// coordinate ordering. Callers holding array metadata should prefer
// ArrayMeta.ChunkKey, which also validates the coordinates.
func ChunkKeyFor(coords []uint64) string {
	if len(coords) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, c := range coords {
		if i > 0 {
			sb.WriteString(chunkKeySeparator)
		}
		sb.WriteString(strconv.FormatUint(c, 10))
	}
	return sb.String()
}

// ChunkKey validates coords against the array's chunk grid and returns
// the storage key. Rank must equal the array rank and every coordinate
// must lie inside the grid.
func (m *ArrayMeta) ChunkKey(coords []uint64) (string, error) {
	if len(coords) != len(m.Shape) {
		return "", fmt.Errorf("%w: chunk coordinate rank %d does not match array rank %d", ErrValidation, len(coords), len(m.Shape))
	}
	grid := m.GridShape()
	for i, c := range coords {
		if c >= grid[i] {
			return "", fmt.Errorf("%w: chunk coordinate %d out of range on axis %d (grid size %d)", ErrValidation, c, i, grid[i])
		}
	}
	return ChunkKeyFor(coords), nil
}

// GridShape is the number of chunks along each dimension:
// ceil(shape[i] / chunks[i]).
func (m *ArrayMeta) GridShape() []uint64 {
	grid := make([]uint64, len(m.Shape))
	for i := range m.Shape {
		grid[i] = (m.Shape[i] + m.Chunks[i] - 1) / m.Chunks[i]
	}
	return grid
}

// ChunkElemCount is the number of elements in the chunk at coords,
// accounting for truncation at the upper edges of the array.
func (m *ArrayMeta) ChunkElemCount(coords []uint64) uint64 {
	n := uint64(1)
	for i := range m.Chunks {
		dim := m.Chunks[i]
		if rem := m.Shape[i] - coords[i]*m.Chunks[i]; rem < dim {
			dim = rem
		}
		n *= dim
	}
	return n
}
