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
	"time"
)

func TestNewFaker(t *testing.T) {
	f := NewFaker()
	if f == nil {
		t.Fatal("NewFaker returned nil")
	}
	if f.faker == nil || f.rng == nil {
		t.Fatal("faker fields not initialized")
	}
}

func TestNewFakerWithSeed(t *testing.T) {
	seed := uint64(12345)
	f1 := NewFakerWithSeed(seed)
	f2 := NewFakerWithSeed(seed)

	// Same seed should produce same sequence on both streams
	for i := 0; i < 10; i++ {
		v1 := f1.Int(0, 1000)
		v2 := f2.Int(0, 1000)
		if v1 != v2 {
			t.Errorf("Same seed produced different ints: %d != %d", v1, v2)
		}
	}
	if n1, n2 := f1.FirstName(), f2.FirstName(); n1 != n2 {
		t.Errorf("Same seed produced different names: %s != %s", n1, n2)
	}
}

func TestFakerTextFields(t *testing.T) {
	f := NewFakerWithSeed(1)

	checks := map[string]string{
		"FirstName":   f.FirstName(),
		"LastName":    f.LastName(),
		"Email":       f.Email(),
		"Street":      f.Street(),
		"City":        f.City(),
		"Country":     f.Country(),
		"Zip":         f.Zip(),
		"Company":     f.Company(),
		"Word":        f.Word(),
		"ProductName": f.ProductName(),
	}
	for name, v := range checks {
		if v == "" {
			t.Errorf("%s returned empty string", name)
		}
	}
}

func TestFakerInt(t *testing.T) {
	f := NewFakerWithSeed(1)
	for i := 0; i < 100; i++ {
		v := f.Int(5, 10)
		if v < 5 || v > 10 {
			t.Errorf("Int(5,10) out of range: %d", v)
		}
	}
	if v := f.Int(3, 3); v != 3 {
		t.Errorf("Int(3,3) should be 3, got %d", v)
	}
}

func TestFakerUniformRange(t *testing.T) {
	f := NewFakerWithSeed(1)
	for i := 0; i < 100; i++ {
		v := f.UniformRange(0.05, 0.15)
		if v < 0.05 || v >= 0.15 {
			t.Errorf("UniformRange out of range: %f", v)
		}
	}
}

func TestFakerExponentialMean(t *testing.T) {
	f := NewFakerWithSeed(1)
	const n = 200000
	var sum float64
	for i := 0; i < n; i++ {
		v := f.Exponential(30)
		if v < 0 {
			t.Fatalf("Exponential returned negative value: %f", v)
		}
		sum += v
	}
	mean := sum / n
	if math.Abs(mean-30) > 1 {
		t.Errorf("Exponential(30) sample mean %f too far from 30", mean)
	}
}

func TestFakerClippedNormal(t *testing.T) {
	f := NewFakerWithSeed(1)
	for i := 0; i < 10000; i++ {
		v := f.ClippedNormal(0.4, 0.1, 0.1, 0.8)
		if v < 0.1 || v > 0.8 {
			t.Errorf("ClippedNormal out of bounds: %f", v)
		}
	}
}

func TestFakerLogNormal(t *testing.T) {
	f := NewFakerWithSeed(1)
	for i := 0; i < 1000; i++ {
		if v := f.LogNormal(3, 1); v <= 0 {
			t.Errorf("LogNormal must be positive, got %f", v)
		}
	}
}

func TestFakerPoisson(t *testing.T) {
	f := NewFakerWithSeed(1)

	if v := f.Poisson(0); v != 0 {
		t.Errorf("Poisson(0) should be 0, got %d", v)
	}

	const n = 100000
	var sum int
	for i := 0; i < n; i++ {
		v := f.Poisson(3)
		if v < 0 {
			t.Fatalf("Poisson returned negative value: %d", v)
		}
		sum += v
	}
	mean := float64(sum) / n
	if math.Abs(mean-3) > 0.05 {
		t.Errorf("Poisson(3) sample mean %f too far from 3", mean)
	}
}

func TestFakerChance(t *testing.T) {
	f := NewFakerWithSeed(1)
	const n = 100000
	hits := 0
	for i := 0; i < n; i++ {
		if f.Chance(0.85) {
			hits++
		}
	}
	rate := float64(hits) / n
	if math.Abs(rate-0.85) > 0.01 {
		t.Errorf("Chance(0.85) hit rate %f too far from 0.85", rate)
	}
}

func TestFakerDateWithin(t *testing.T) {
	f := NewFakerWithSeed(1)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 1000; i++ {
		d := f.DateWithin(start, end)
		if d.Before(start) || d.After(end) {
			t.Errorf("DateWithin out of range: %v", d)
		}
	}

	if d := f.DateWithin(end, start); !d.Equal(end) {
		t.Errorf("Inverted range should return start, got %v", d)
	}
}

func TestChoose(t *testing.T) {
	f := NewFakerWithSeed(1)
	items := []string{"a", "b", "c"}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[Choose(f, items)] = true
	}
	if len(seen) != 3 {
		t.Errorf("Choose over 100 draws should hit all 3 items, hit %d", len(seen))
	}

	if v := Choose(f, []string{}); v != "" {
		t.Errorf("Choose on empty slice should return zero value, got %q", v)
	}
}

func TestChooseWeighted(t *testing.T) {
	f := NewFakerWithSeed(1)
	items := []string{"common", "rare"}
	weights := []float64{0.9, 0.1}

	counts := make(map[string]int)
	const n = 100000
	for i := 0; i < n; i++ {
		counts[ChooseWeighted(f, items, weights)]++
	}

	rate := float64(counts["common"]) / n
	if math.Abs(rate-0.9) > 0.01 {
		t.Errorf("Weighted choice rate %f too far from 0.9", rate)
	}
}
