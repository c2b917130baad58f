package walker

import "slices"

// Builder holds index weights and constructs a [Table] from them.
//
// The weight at position i is the relative likelihood of the table producing
// index i. A weight of 0 means the index is never produced. For example,
// weights [2, 1, 7, 0] give indices 0 through 3 sampling probabilities of
// 0.2, 0.1, 0.7, and 0.
type Builder struct {
	weights []uint32
}

// NewBuilder creates a builder from integer index weights.
// The builder copies weights, so the caller may reuse the slice.
func NewBuilder(weights []uint32) *Builder {
	return &Builder{weights: slices.Clone(weights)}
}

// NewFloatBuilder creates a builder from relative proportions.
// Negative weights are treated as zero, which would exclude those indices
// from sampling anyway.
func NewFloatBuilder(weights []float64) *Builder {
	return &Builder{weights: quantize(weights)}
}

// Inverse remaps the builder's weights to bias sampling away from the
// originally heavy categories: the minimum and maximum weights trade places,
// and every other weight x becomes max-x. When all weights are equal there
// is nothing to flip and the weights are unchanged. Inverse returns b for
// chaining with [Builder.Build].
func (b *Builder) Inverse() *Builder {
	if len(b.weights) == 0 {
		return b
	}
	mn, mx := b.weights[0], b.weights[0]
	for _, w := range b.weights[1:] {
		mn, mx = min(mn, w), max(mx, w)
	}
	if mn == mx {
		return b
	}
	for i, w := range b.weights {
		switch w {
		case mx:
			b.weights[i] = mn
		case mn:
			b.weights[i] = mx
		default:
			b.weights[i] = mx - w
		}
	}
	return b
}

// Build constructs the alias table.
//
// If the weights sum to zero, including when there are no weights at all,
// the result is a uniform table over all indices rather than an error: every
// slot self-aliases with acceptance probability 0. Sampling a table built
// from no weights panics, since there is no index to produce.
func (b *Builder) Build() *Table {
	aliases, probs := calcTable(normalize(b.weights))
	return &Table{aliases: aliases, probs: probs}
}

// calcTable fills the alias and probability arrays by two-stack
// redistribution. Weights at or below the mean each claim one slot and
// record how much of the slot's mass belongs to an above-mean alias; the
// alias keeps circulating until its own remainder fits in a slot. Pop order
// is LIFO on both lists, which fixes which pairings occur but not the
// sampled distribution.
func calcTable(weights []uint64) (aliases []int, probs []float64) {
	n := len(weights)
	aliases = make([]int, n)
	probs = make([]float64, n)
	var sum uint64
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		for i := range aliases {
			aliases[i] = i
		}
		return aliases, probs
	}
	// The mean is exact because normalize scaled every weight by n.
	mean := sum / uint64(n)
	type item struct {
		idx int
		w   uint64
	}
	var below, above []item
	for i, w := range weights {
		if w <= mean {
			below = append(below, item{i, w})
		} else {
			above = append(above, item{i, w})
		}
	}
	for len(below) > 0 {
		cur := below[len(below)-1]
		below = below[:len(below)-1]
		if len(above) == 0 {
			// Leftover mass. Self-alias to absorb the remainder.
			aliases[cur.idx] = cur.idx
			probs[cur.idx] = float64(cur.w) / float64(mean)
			continue
		}
		al := above[len(above)-1]
		above = above[:len(above)-1]
		diff := mean - cur.w
		aliases[cur.idx] = al.idx
		probs[cur.idx] = float64(diff) / float64(mean)
		al.w -= diff
		if al.w <= mean {
			below = append(below, al)
		} else {
			above = append(above, al)
		}
	}
	return aliases, probs
}
