package probability

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialTensor(rank, size int) *Tensor {
	t := NewTensor(rank, size)
	for i := range t.Data {
		t.Data[i] = float64(i)
	}
	return t
}

func TestTensorIndexing(t *testing.T) {
	tt := sequentialTensor(3, 4)

	assert.Equal(t, 64, tt.Len())
	assert.Equal(t, float64(1*16+2*4+3), tt.At(1, 2, 3))

	tt.Set(-1, 0, 0, 1)
	assert.Equal(t, -1.0, tt.Data[1])

	assert.Panics(t, func() { tt.At(1, 2) })
	assert.Panics(t, func() { tt.At(0, 0, 4) })
}

func TestTensorTranspose(t *testing.T) {
	m := sequentialTensor(2, 3)
	mt := m.Transpose([]int{1, 0})
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, m.At(j, i), mt.At(i, j))
		}
	}

	c := sequentialTensor(3, 3)
	ct := c.Transpose([]int{2, 0, 1})
	// Axis a of the result is axis perm[a] of the source.
	assert.Equal(t, c.At(0, 1, 2), ct.At(2, 0, 1))
	assert.Equal(t, c.At(2, 2, 0), ct.At(0, 2, 2))
}

func TestTensorSumDistinct(t *testing.T) {
	m := NewTensor(2, 3)
	for i := range m.Data {
		m.Data[i] = 1
	}
	assert.Equal(t, 9.0, m.Sum())
	assert.Equal(t, 6.0, m.SumDistinct())
}

func TestTensorClone(t *testing.T) {
	m := sequentialTensor(2, 2)
	c := m.Clone()
	c.Set(100, 0, 0)
	assert.Equal(t, 0.0, m.At(0, 0))
}

func TestTensorJSON(t *testing.T) {
	m := sequentialTensor(2, 2)
	raw, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `[[0,1],[2,3]]`, string(raw))

	v := sequentialTensor(1, 3)
	raw, err = json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `[0,1,2]`, string(raw))

	c := sequentialTensor(3, 2)
	raw, err = json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `[[[0,1],[2,3]],[[4,5],[6,7]]]`, string(raw))
}

func TestSumAxis(t *testing.T) {
	c := sequentialTensor(3, 2)

	over0 := sumAxis(c, 0)
	assert.Equal(t, c.At(0, 1, 0)+c.At(1, 1, 0), over0.At(1, 0))

	over1 := sumAxis(c, 1)
	assert.Equal(t, c.At(1, 0, 1)+c.At(1, 1, 1), over1.At(1, 1))
}

func TestSymmetrize(t *testing.T) {
	c := sequentialTensor(3, 3)
	s := symmetrize(c, permutations3)

	want := c.At(0, 1, 2) + c.At(0, 2, 1) + c.At(1, 0, 2) + c.At(1, 2, 0) + c.At(2, 0, 1) + c.At(2, 1, 0)
	assert.Equal(t, want, s.At(2, 0, 1))
	assert.Equal(t, s.At(0, 1, 2), s.At(1, 2, 0))
}

func TestPermutationTables(t *testing.T) {
	for _, table := range [][][]int{permutations3, permutations4} {
		seen := make(map[string]bool)
		for _, p := range table {
			raw, _ := json.Marshal(p)
			assert.False(t, seen[string(raw)], "duplicate permutation %v", p)
			seen[string(raw)] = true
			assert.True(t, distinct(p))
		}
	}
	assert.Len(t, permutations3, 6)
	assert.Len(t, permutations4, 24)
}
