//-------------------------------------------------------------------------
//
// shopgen - Synthetic E-commerce Analytics
//
// Copyright (c) 2025 - 2026, the shopgen authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import "sort"

// WeightedSampler draws record indices with probability proportional to a
// fixed weight per record. It precomputes cumulative weights once and
// samples with a binary search, so repeated draws over a large static
// population (customers weighted by segment activity) are O(log n).
type WeightedSampler struct {
	cum   []float64
	total float64
}

// NewWeightedSampler builds a sampler over the given weights. Non-positive
// weights make the corresponding index unselectable.
func NewWeightedSampler(weights []float64) *WeightedSampler {
	s := &WeightedSampler{cum: make([]float64, len(weights))}
	for i, w := range weights {
		if w > 0 {
			s.total += w
		}
		s.cum[i] = s.total
	}
	return s
}

// Len returns the population size.
func (s *WeightedSampler) Len() int {
	return len(s.cum)
}

// Sample draws one index. Returns -1 when the sampler is empty or all
// weights are non-positive.
func (s *WeightedSampler) Sample(f *Faker) int {
	if len(s.cum) == 0 || s.total <= 0 {
		return -1
	}
	r := f.Uniform() * s.total
	return sort.SearchFloat64s(s.cum, r)
}

// SampleDistinct draws n distinct indices from [0,m) uniformly without
// replacement. When n >= m it returns all m indices in random order.
func SampleDistinct(f *Faker, n, m int) []int {
	if m <= 0 || n <= 0 {
		return nil
	}
	if n > m {
		n = m
	}
	return f.Perm(m)[:n]
}
