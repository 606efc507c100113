package rag

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrDimensionMismatch is returned when a vector does not match the
	// index dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	errBadIndexFile = errors.New("malformed index file")
)

// indexMagic identifies the on-disk index format.
var indexMagic = [8]byte{'F', 'L', 'A', 'T', 'I', 'D', 'X', '1'}

// Neighbor is one nearest-neighbor hit: the position of a vector in the
// index and its squared Euclidean distance to the query.
type Neighbor struct {
	Position int
	Distance float32
}

// FlatIndex is an exact nearest-neighbor index over fixed-dimension
// vectors, searched by brute-force Euclidean distance. Vector position in
// the index is the retrieval identifier. The index is read-only after
// ingestion; no internal locking is provided.
type FlatIndex struct {
	dim     int
	vectors [][]float32
}

// NewFlatIndex creates an empty index for vectors of the given dimension.
func NewFlatIndex(dim int) (*FlatIndex, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid index dimension %d", dim)
	}
	return &FlatIndex{dim: dim}, nil
}

// Add appends vectors to the index, preserving order.
func (ix *FlatIndex) Add(vectors ...[]float32) error {
	for _, v := range vectors {
		if len(v) != ix.dim {
			return fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, ix.dim, len(v))
		}
	}
	ix.vectors = append(ix.vectors, vectors...)
	return nil
}

// Len returns the number of indexed vectors.
func (ix *FlatIndex) Len() int { return len(ix.vectors) }

// Dimension returns the vector dimension of the index.
func (ix *FlatIndex) Dimension() int { return ix.dim }

// Search returns the k nearest vectors to the query, nearest first. At most
// min(k, Len()) neighbors are returned. The order of equidistant vectors is
// implementation-defined.
func (ix *FlatIndex) Search(query []float32, k int) ([]Neighbor, error) {
	if len(query) != ix.dim {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, ix.dim, len(query))
	}
	if k <= 0 || len(ix.vectors) == 0 {
		return nil, nil
	}
	if k > len(ix.vectors) {
		k = len(ix.vectors)
	}

	// Selection over a bounded result slice keeps this O(n*k); corpora are
	// small enough that a heap is not worth the code.
	nearest := make([]Neighbor, 0, k)
	for pos, v := range ix.vectors {
		d := squaredL2(query, v)
		if len(nearest) < k {
			nearest = insertNeighbor(nearest, Neighbor{Position: pos, Distance: d})
			continue
		}
		if d < nearest[k-1].Distance {
			nearest = insertNeighbor(nearest[:k-1], Neighbor{Position: pos, Distance: d})
		}
	}
	return nearest, nil
}

// insertNeighbor inserts n into the distance-sorted slice, keeping ties in
// first-seen order.
func insertNeighbor(sorted []Neighbor, n Neighbor) []Neighbor {
	i := len(sorted)
	for i > 0 && sorted[i-1].Distance > n.Distance {
		i--
	}
	sorted = append(sorted, Neighbor{})
	copy(sorted[i+1:], sorted[i:])
	sorted[i] = n
	return sorted
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// WriteTo serializes the index: magic, dimension, count, then the vectors
// as little-endian float32 values.
func (ix *FlatIndex) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64

	if _, err := bw.Write(indexMagic[:]); err != nil {
		return written, err
	}
	written += int64(len(indexMagic))

	header := []uint32{uint32(ix.dim), uint32(len(ix.vectors))}
	for _, h := range header {
		if err := binary.Write(bw, binary.LittleEndian, h); err != nil {
			return written, err
		}
		written += 4
	}
	for _, v := range ix.vectors {
		if err := binary.Write(bw, binary.LittleEndian, v); err != nil {
			return written, err
		}
		written += int64(4 * len(v))
	}
	return written, bw.Flush()
}

// ReadFlatIndex deserializes an index written by WriteTo.
func ReadFlatIndex(r io.Reader) (*FlatIndex, error) {
	br := bufio.NewReader(r)

	var magic [8]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, fmt.Errorf("read index magic: %w", err)
	}
	if magic != indexMagic {
		return nil, errBadIndexFile
	}

	var dim, count uint32
	if err := binary.Read(br, binary.LittleEndian, &dim); err != nil {
		return nil, fmt.Errorf("read index dimension: %w", err)
	}
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read index count: %w", err)
	}

	ix, err := NewFlatIndex(int(dim))
	if err != nil {
		return nil, errBadIndexFile
	}
	ix.vectors = make([][]float32, 0, count)
	for i := uint32(0); i < count; i++ {
		v := make([]float32, dim)
		if err := binary.Read(br, binary.LittleEndian, v); err != nil {
			return nil, fmt.Errorf("read vector %d: %w", i, err)
		}
		ix.vectors = append(ix.vectors, v)
	}
	return ix, nil
}
