package walker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGCDNonzero(t *testing.T) {
	cases := []struct {
		name    string
		weights []uint32
		want    uint32
	}{
		{
			name:    "empty",
			weights: nil,
			want:    0,
		},
		{
			name:    "zeros",
			weights: []uint32{0, 0, 0},
			want:    0,
		},
		{
			name:    "common",
			weights: []uint32{4, 20, 32},
			want:    4,
		},
		{
			name:    "coprime",
			weights: []uint32{77, 9, 25},
			want:    1,
		},
		{
			name:    "skip-zero",
			weights: []uint32{11, 0, 22},
			want:    11,
		},
		{
			name:    "single",
			weights: []uint32{6},
			want:    6,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := gcdNonzero(c.weights); got != c.want {
				t.Errorf("wrong gcd of %v: want %d, got %d", c.weights, c.want, got)
			}
		})
	}
}

func TestQuantize(t *testing.T) {
	cases := []struct {
		name    string
		weights []float64
		want    []uint32
	}{
		{
			name:    "empty",
			weights: nil,
			want:    []uint32{},
		},
		{
			name:    "zeros",
			weights: []float64{0, 0},
			want:    []uint32{0, 0},
		},
		{
			name:    "proportions",
			weights: []float64{0.1, 0.2, 0.3, 0.4},
			want:    []uint32{1, 2, 3, 4},
		},
		{
			name:    "coin",
			weights: []float64{0.55, 0.45},
			want:    []uint32{11, 9},
		},
		{
			name:    "negative-clamped",
			weights: []float64{-1, 0.5},
			want:    []uint32{0, 1},
		},
		{
			name:    "integral",
			weights: []float64{2, 1, 7, 0},
			want:    []uint32{2, 1, 7, 0},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := quantize(c.weights)
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("wrong quantized weights (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInverseWeights(t *testing.T) {
	cases := []struct {
		name    string
		weights []uint32
		want    []uint32
	}{
		{
			name:    "empty",
			weights: nil,
			want:    nil,
		},
		{
			// Max 7 and min 0 trade places; interior x becomes 7-x.
			name:    "weighted",
			weights: []uint32{2, 1, 7, 0},
			want:    []uint32{5, 6, 0, 7},
		},
		{
			name:    "all-equal",
			weights: []uint32{3, 3, 3},
			want:    []uint32{3, 3, 3},
		},
		{
			name:    "repeated-extremes",
			weights: []uint32{1, 5, 1, 5},
			want:    []uint32{5, 1, 5, 1},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := NewBuilder(c.weights).Inverse()
			if diff := cmp.Diff(c.want, b.weights); diff != "" {
				t.Errorf("wrong inverted weights (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name    string
		weights []uint32
		want    []uint64
	}{
		{
			name:    "empty",
			weights: nil,
			want:    []uint64{},
		},
		{
			name:    "scaled",
			weights: []uint32{2, 1, 7, 0},
			want:    []uint64{8, 4, 28, 0},
		},
		{
			name:    "single",
			weights: []uint32{5},
			want:    []uint64{5},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := normalize(c.weights)
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("wrong normalized weights (-want +got):\n%s", diff)
			}
			var sum uint64
			for _, w := range got {
				sum += w
			}
			if n := uint64(len(got)); n != 0 && sum%n != 0 {
				t.Errorf("sum %d not divisible by %d categories", sum, n)
			}
		})
	}
}
