/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package stats implements the descriptive statistics used by the
// evaluation pipeline: mean, mode, sample standard deviation, Pearson
// correlation, and unweighted Cohen's Kappa.
//
// Every function is a pure reduction over its inputs. Degenerate inputs
// (too few samples, zero variance) return explicit errors rather than a
// misleading numeric placeholder: a standard deviation of a single sample
// is undefined, not zero, and a correlation of a flat vector is undefined,
// not one.
package stats

import (
	"cmp"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInsufficientData indicates fewer data points than the statistic
	// requires (e.g. sample stdev over fewer than 2 values).
	ErrInsufficientData = errors.New("insufficient data")

	// ErrZeroVariance indicates a degenerate input whose variance is zero,
	// making the statistic undefined (Pearson correlation, Cohen's Kappa).
	ErrZeroVariance = errors.New("zero variance")
)

// Mean returns the arithmetic average of xs.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("mean of empty slice: %w", ErrInsufficientData)
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs)), nil
}

// Mode returns the most frequent value in xs. Ties are broken by
// preferring the lowest value, which keeps the result deterministic.
func Mode[T cmp.Ordered](xs []T) (T, error) {
	var zero T
	if len(xs) == 0 {
		return zero, fmt.Errorf("mode of empty slice: %w", ErrInsufficientData)
	}

	counts := make(map[T]int, len(xs))
	for _, x := range xs {
		counts[x]++
	}

	var best T
	bestCount := 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best = v
			bestCount = c
		}
	}
	return best, nil
}

// SampleStdev returns the sample standard deviation (N-1 denominator) of xs.
// Fewer than 2 samples is undefined: the run counts here are small and fixed
// at configuration time, so the sample formula is used throughout.
func SampleStdev(xs []float64) (float64, error) {
	if len(xs) < 2 {
		return 0, fmt.Errorf("sample stdev requires at least 2 values, got %d: %w", len(xs), ErrInsufficientData)
	}
	mean, err := Mean(xs)
	if err != nil {
		return 0, err
	}
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1)), nil
}

// MinMax returns the smallest and largest values in xs.
func MinMax(xs []float64) (minVal, maxVal float64, err error) {
	if len(xs) == 0 {
		return 0, 0, fmt.Errorf("min/max of empty slice: %w", ErrInsufficientData)
	}
	minVal, maxVal = xs[0], xs[0]
	for _, x := range xs[1:] {
		minVal = min(minVal, x)
		maxVal = max(maxVal, x)
	}
	return minVal, maxVal, nil
}

// Pearson returns the Pearson correlation coefficient of the paired
// vectors x and y. The correlation is undefined (not 0, not 1) when there
// are fewer than 2 pairs or when either vector has zero variance.
func Pearson(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("paired vectors differ in length: %d vs %d", len(x), len(y))
	}
	if len(x) < 2 {
		return 0, fmt.Errorf("correlation requires at least 2 pairs, got %d: %w", len(x), ErrInsufficientData)
	}

	meanX, err := Mean(x)
	if err != nil {
		return 0, err
	}
	meanY, err := Mean(y)
	if err != nil {
		return 0, err
	}

	var num, ssX, ssY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		num += dx * dy
		ssX += dx * dx
		ssY += dy * dy
	}
	if ssX == 0 || ssY == 0 {
		return 0, fmt.Errorf("correlation of a constant vector: %w", ErrZeroVariance)
	}
	return num / math.Sqrt(ssX*ssY), nil
}

// CohensKappa returns the unweighted Cohen's Kappa for two raters'
// categorical scores: observed agreement minus expected-by-chance
// agreement, normalized by one minus expected-by-chance agreement. The
// chance term is derived from each rater's marginal frequencies over the
// categories actually observed.
//
// Kappa is undefined when either rater assigns a single constant category
// throughout: a constant rater carries no information against which
// chance-corrected agreement can be measured.
func CohensKappa(a, b []int) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("rater score lists differ in length: %d vs %d", len(a), len(b))
	}
	if len(a) < 2 {
		return 0, fmt.Errorf("kappa requires at least 2 paired scores, got %d: %w", len(a), ErrInsufficientData)
	}

	n := float64(len(a))

	countsA := make(map[int]int)
	countsB := make(map[int]int)
	agreed := 0
	for i := range a {
		countsA[a[i]]++
		countsB[b[i]]++
		if a[i] == b[i] {
			agreed++
		}
	}
	if len(countsA) < 2 || len(countsB) < 2 {
		return 0, fmt.Errorf("kappa with a constant rater: %w", ErrZeroVariance)
	}

	po := float64(agreed) / n

	// Expected agreement from marginal distributions over observed categories.
	categories := make(map[int]struct{}, len(countsA)+len(countsB))
	for c := range countsA {
		categories[c] = struct{}{}
	}
	for c := range countsB {
		categories[c] = struct{}{}
	}
	var pe float64
	for c := range categories {
		pe += (float64(countsA[c]) / n) * (float64(countsB[c]) / n)
	}

	// With both raters non-constant, pe < 1 always holds.
	return (po - pe) / (1 - pe), nil
}

// MeanAbsoluteError returns the average absolute difference of the paired
// vectors x and y.
func MeanAbsoluteError(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("paired vectors differ in length: %d vs %d", len(x), len(y))
	}
	if len(x) == 0 {
		return 0, fmt.Errorf("mean absolute error of empty input: %w", ErrInsufficientData)
	}
	var sum float64
	for i := range x {
		sum += math.Abs(x[i] - y[i])
	}
	return sum / float64(len(x)), nil
}
