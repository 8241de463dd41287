//-------------------------------------------------------------------------
//
// shopgen - Synthetic E-commerce Analytics
//
// Copyright (c) 2025 - 2026, the shopgen authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"math"
	"testing"
)

func TestWeightedSamplerDistribution(t *testing.T) {
	f := NewFakerWithSeed(1)
	s := NewWeightedSampler([]float64{0.3, 0.5, 0.7, 0.9})

	if s.Len() != 4 {
		t.Fatalf("Expected Len 4, got %d", s.Len())
	}

	counts := make([]int, 4)
	const n = 200000
	for i := 0; i < n; i++ {
		idx := s.Sample(f)
		if idx < 0 || idx > 3 {
			t.Fatalf("Sample out of range: %d", idx)
		}
		counts[idx]++
	}

	total := 0.3 + 0.5 + 0.7 + 0.9
	for i, w := range []float64{0.3, 0.5, 0.7, 0.9} {
		got := float64(counts[i]) / n
		want := w / total
		if math.Abs(got-want) > 0.01 {
			t.Errorf("index %d: rate %f, want ~%f", i, got, want)
		}
	}
}

func TestWeightedSamplerEmpty(t *testing.T) {
	f := NewFakerWithSeed(1)

	if idx := NewWeightedSampler(nil).Sample(f); idx != -1 {
		t.Errorf("Empty sampler should return -1, got %d", idx)
	}
	if idx := NewWeightedSampler([]float64{0, 0}).Sample(f); idx != -1 {
		t.Errorf("All-zero weights should return -1, got %d", idx)
	}
}

func TestWeightedSamplerZeroWeightNeverDrawn(t *testing.T) {
	f := NewFakerWithSeed(1)
	s := NewWeightedSampler([]float64{1, 0, 1})

	for i := 0; i < 10000; i++ {
		if s.Sample(f) == 1 {
			t.Fatal("Zero-weight index was drawn")
		}
	}
}

func TestSampleDistinct(t *testing.T) {
	f := NewFakerWithSeed(1)

	got := SampleDistinct(f, 5, 100)
	if len(got) != 5 {
		t.Fatalf("Expected 5 indices, got %d", len(got))
	}
	seen := make(map[int]bool)
	for _, idx := range got {
		if idx < 0 || idx >= 100 {
			t.Errorf("Index out of range: %d", idx)
		}
		if seen[idx] {
			t.Errorf("Duplicate index: %d", idx)
		}
		seen[idx] = true
	}
}

func TestSampleDistinctBoundedByPopulation(t *testing.T) {
	f := NewFakerWithSeed(1)

	got := SampleDistinct(f, 10, 3)
	if len(got) != 3 {
		t.Fatalf("Expected draw bounded to 3, got %d", len(got))
	}

	if got := SampleDistinct(f, 5, 0); got != nil {
		t.Errorf("Empty population should return nil, got %v", got)
	}
	if got := SampleDistinct(f, 0, 5); got != nil {
		t.Errorf("Zero draw count should return nil, got %v", got)
	}
}
