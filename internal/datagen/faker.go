//-------------------------------------------------------------------------
//
// shopgen - Synthetic E-commerce Analytics
//
// Copyright (c) 2025 - 2026, the shopgen authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen provides the seeded random source used by the dataset
// generator: fake demographic data via gofakeit plus the statistical
// distributions the generation procedure draws from.
package datagen

import (
	"math"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker bundles a gofakeit instance for textual fields with a plain rand
// source for numeric distributions. Both are derived from one seed, and the
// generator consumes them in a fixed order, so a run is fully reproducible.
// Faker is not safe for concurrent use; generation is single-threaded.
type Faker struct {
	faker *gofakeit.Faker
	rng   *rand.Rand
}

// NewFaker creates a new Faker with a time-based seed.
func NewFaker() *Faker {
	return NewFakerWithSeed(uint64(time.Now().UnixNano()))
}

// NewFakerWithSeed creates a new Faker with a specific seed for
// reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
		rng:   rand.New(rand.NewSource(int64(seed))),
	}
}

// FirstName generates a random first name.
func (f *Faker) FirstName() string {
	return f.faker.FirstName()
}

// LastName generates a random last name.
func (f *Faker) LastName() string {
	return f.faker.LastName()
}

// Email generates a random email address.
func (f *Faker) Email() string {
	return f.faker.Email()
}

// Street generates a random street address.
func (f *Faker) Street() string {
	return f.faker.Street()
}

// City generates a random city name.
func (f *Faker) City() string {
	return f.faker.City()
}

// Country generates a random country name.
func (f *Faker) Country() string {
	return f.faker.Country()
}

// Zip generates a random postal code.
func (f *Faker) Zip() string {
	return f.faker.Zip()
}

// Company generates a random company name.
func (f *Faker) Company() string {
	return f.faker.Company()
}

// Word generates a random word.
func (f *Faker) Word() string {
	return f.faker.Word()
}

// ProductName generates a random product name.
func (f *Faker) ProductName() string {
	return f.faker.ProductName()
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	if max <= min {
		return min
	}
	return min + f.rng.Intn(max-min+1)
}

// Uniform draws from U[0,1).
func (f *Faker) Uniform() float64 {
	return f.rng.Float64()
}

// UniformRange draws from U[min,max).
func (f *Faker) UniformRange(min, max float64) float64 {
	return min + f.rng.Float64()*(max-min)
}

// Chance returns true with probability p.
func (f *Faker) Chance(p float64) bool {
	return f.rng.Float64() < p
}

// Exponential draws from an exponential distribution with the given mean.
func (f *Faker) Exponential(mean float64) float64 {
	return f.rng.ExpFloat64() * mean
}

// Normal draws from a normal distribution with the given mean and
// standard deviation.
func (f *Faker) Normal(mean, stddev float64) float64 {
	return f.rng.NormFloat64()*stddev + mean
}

// ClippedNormal draws from Normal(mean, stddev) clipped to [min, max].
func (f *Faker) ClippedNormal(mean, stddev, min, max float64) float64 {
	v := f.Normal(mean, stddev)
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// LogNormal draws from a log-normal distribution where the underlying
// normal has the given mu and sigma.
func (f *Faker) LogNormal(mu, sigma float64) float64 {
	return math.Exp(f.Normal(mu, sigma))
}

// Poisson draws from a Poisson distribution with the given rate. Uses
// Knuth's multiplication method, which is fine for the small rates the
// generator needs (lambda <= 10).
func (f *Faker) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= f.rng.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

// DateWithin draws a date uniformly between start and end.
func (f *Faker) DateWithin(start, end time.Time) time.Time {
	span := end.Unix() - start.Unix()
	if span <= 0 {
		return start
	}
	return time.Unix(start.Unix()+f.rng.Int63n(span), 0).UTC()
}

// Perm returns a random permutation of [0,n).
func (f *Faker) Perm(n int) []int {
	return f.rng.Perm(n)
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.Int(0, len(items)-1)]
}

// ChooseWeighted returns a random element using the given probability
// weights. Weights need not sum to one; they are treated as relative.
func ChooseWeighted[T any](f *Faker, items []T, weights []float64) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	var total float64
	for _, w := range weights {
		total += w
	}
	r := f.Uniform() * total
	var cumulative float64
	for i, w := range weights {
		cumulative += w
		if r < cumulative {
			return items[i]
		}
	}
	return items[len(items)-1]
}
