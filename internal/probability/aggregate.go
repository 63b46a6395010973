package probability

// symmetrize sums t over every axis permutation in perms, turning exact-order
// probabilities into unordered-set probabilities.
func symmetrize(t *Tensor, perms [][]int) *Tensor {
	out := NewTensor(t.Rank, t.Size)
	for _, p := range perms {
		out.addInPlace(t.Transpose(p))
	}
	return out
}

// symmetricPair returns t + t^T for a rank-2 tensor.
func symmetricPair(t *Tensor) *Tensor {
	out := t.Clone()
	out.addInPlace(t.Transpose([]int{1, 0}))
	return out
}

// sumAxis marginalises t over one axis, keeping the remaining axes in order.
func sumAxis(t *Tensor, axis int) *Tensor {
	out := NewTensor(t.Rank-1, t.Size)
	idx := make([]int, t.Rank)
	for off, v := range t.Data {
		if v == 0 {
			continue
		}
		t.decode(off, idx)
		dst := 0
		for a, i := range idx {
			if a == axis {
				continue
			}
			dst = dst*t.Size + i
		}
		out.Data[dst] += v
	}
	return out
}

// Marginals holds each competitor's probability of finishing in a given position.
type Marginals struct {
	First  []float64 `json:"first"`
	Second []float64 `json:"second"`
	Third  []float64 `json:"third"`
}

// Place returns the probability of finishing in the top three.
func (m *Marginals) Place() []float64 {
	out := make([]float64, len(m.First))
	for i := range out {
		out[i] = m.First[i] + m.Second[i] + m.Third[i]
	}
	return out
}

func (e *Engine) marginals() *Marginals {
	second := sumAxis(e.order(2), 0)
	third := sumAxis(sumAxis(e.order(3), 0), 0)
	return &Marginals{
		First:  e.order(1).Clone().Data,
		Second: second.Data,
		Third:  third.Data,
	}
}

func (e *Engine) place() *Tensor {
	out := NewTensor(1, e.Size())
	copy(out.Data, e.marginals().Place())
	return out
}

// placeQuinella is the probability that both members of a pair finish in the top
// three, in any of the three position pairings.
func (e *Engine) placeQuinella() *Tensor {
	t3 := e.order(3)
	out := symmetricPair(e.order(2))
	out.addInPlace(symmetricPair(sumAxis(t3, 1)))
	out.addInPlace(symmetricPair(sumAxis(t3, 0)))
	return out
}
