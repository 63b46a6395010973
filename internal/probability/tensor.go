package probability

import (
	"encoding/json"
	"fmt"
)

// Tensor is a dense row-major array of Rank axes, each of length Size.
// Axis 0 is first place, axis 1 second place and so on.
type Tensor struct {
	Rank int
	Size int
	Data []float64
}

// NewTensor allocates a zeroed tensor.
func NewTensor(rank, size int) *Tensor {
	total := 1
	for i := 0; i < rank; i++ {
		total *= size
	}
	return &Tensor{Rank: rank, Size: size, Data: make([]float64, total)}
}

// Len returns the number of stored entries.
func (t *Tensor) Len() int {
	return len(t.Data)
}

func (t *Tensor) offset(idx []int) int {
	if len(idx) != t.Rank {
		panic(fmt.Sprintf("probability: %d indices for rank %d tensor", len(idx), t.Rank))
	}
	off := 0
	for _, i := range idx {
		if i < 0 || i >= t.Size {
			panic(fmt.Sprintf("probability: index %d out of range [0,%d)", i, t.Size))
		}
		off = off*t.Size + i
	}
	return off
}

// decode writes the index tuple of the entry at off into idx.
func (t *Tensor) decode(off int, idx []int) {
	for a := t.Rank - 1; a >= 0; a-- {
		idx[a] = off % t.Size
		off /= t.Size
	}
}

// At returns the entry at the given index tuple.
func (t *Tensor) At(idx ...int) float64 {
	return t.Data[t.offset(idx)]
}

// Set stores v at the given index tuple.
func (t *Tensor) Set(v float64, idx ...int) {
	t.Data[t.offset(idx)] = v
}

// Sum adds every entry.
func (t *Tensor) Sum() float64 {
	total := 0.0
	for _, v := range t.Data {
		total += v
	}
	return total
}

// SumDistinct adds the entries whose indices are pairwise distinct.
func (t *Tensor) SumDistinct() float64 {
	idx := make([]int, t.Rank)
	total := 0.0
	for off, v := range t.Data {
		t.decode(off, idx)
		if distinct(idx) {
			total += v
		}
	}
	return total
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.Data))
	copy(data, t.Data)
	return &Tensor{Rank: t.Rank, Size: t.Size, Data: data}
}

// Transpose returns a new tensor whose axis a is axis perm[a] of t.
func (t *Tensor) Transpose(perm []int) *Tensor {
	if len(perm) != t.Rank {
		panic(fmt.Sprintf("probability: permutation of length %d for rank %d tensor", len(perm), t.Rank))
	}
	out := NewTensor(t.Rank, t.Size)
	idx := make([]int, t.Rank)
	src := make([]int, t.Rank)
	for off := range out.Data {
		out.decode(off, idx)
		for a, p := range perm {
			src[p] = idx[a]
		}
		out.Data[off] = t.Data[t.offset(src)]
	}
	return out
}

// addInPlace adds o to t entry by entry.
func (t *Tensor) addInPlace(o *Tensor) {
	for i, v := range o.Data {
		t.Data[i] += v
	}
}

// Nested converts the tensor into nested slices, one level per axis.
func (t *Tensor) Nested() interface{} {
	var build func(depth, base int) interface{}
	build = func(depth, base int) interface{} {
		if depth == t.Rank-1 {
			row := make([]float64, t.Size)
			copy(row, t.Data[base*t.Size:(base+1)*t.Size])
			return row
		}
		out := make([]interface{}, t.Size)
		for i := range out {
			out[i] = build(depth+1, base*t.Size+i)
		}
		return out
	}
	if t.Rank == 0 {
		return t.Data[0]
	}
	return build(0, 0)
}

// MarshalJSON encodes the tensor as nested arrays.
func (t *Tensor) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Nested())
}

func distinct(idx []int) bool {
	for a := 0; a < len(idx); a++ {
		for b := a + 1; b < len(idx); b++ {
			if idx[a] == idx[b] {
				return false
			}
		}
	}
	return true
}
