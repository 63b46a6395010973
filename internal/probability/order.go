package probability

import "math"

// denominatorEpsilon is the magnitude below which a conditional denominator is
// treated as zero. Such entries resolve to probability 0.
const denominatorEpsilon = 1e-12

// firstOrder wraps the rank-1 weights as the first-place tensor.
func firstOrder(r []float64) *Tensor {
	t := NewTensor(1, len(r))
	copy(t.Data, r)
	return t
}

// extend builds the order tensor one level deeper than prev:
//
//	next[i..., m] = prev[i...] * r[m] / (1 - sum(r[i...]))
//
// for every m not already among i..., which is Harville's conditional step using the
// rank-corrected weights r of the new level. Entries with repeated indices stay 0.
func extend(prev *Tensor, r []float64) *Tensor {
	n := prev.Size
	next := NewTensor(prev.Rank+1, n)
	idx := make([]int, prev.Rank)
	for off, p := range prev.Data {
		if p == 0 {
			continue
		}
		prev.decode(off, idx)

		denom := 1.0
		for _, i := range idx {
			denom -= r[i]
		}
		if math.Abs(denom) < denominatorEpsilon {
			continue
		}

		scale := p / denom
		base := off * n
		for m := 0; m < n; m++ {
			if contains(idx, m) {
				continue
			}
			next.Data[base+m] = scale * r[m]
		}
	}
	return next
}

func contains(idx []int, v int) bool {
	for _, i := range idx {
		if i == v {
			return true
		}
	}
	return false
}
