package service

import (
	"math"
	"sort"
)

// confidenceThreshold is the global acceptance cutoff for a candidate
// frequency. Candidates scoring below it are discarded.
const confidenceThreshold = 0.50

// occurrenceSaturation is the occurrence count at which the confidence boost
// tops out. More occurrences beyond this add nothing.
const occurrenceSaturation = 8

// ConfidenceScore combines interval consistency (dominant), the share of
// intervals that fit the pattern at all, and a secondary occurrence-count
// boost reflecting reduced chance of coincidental alignment. Result is in
// [0,1] and monotonically non-decreasing in occurrence count.
func ConfidenceScore(consistency, matchedRatio float64, occurrences int) float64 {
	boost := 0.70 + 0.30*math.Min(float64(occurrences)/occurrenceSaturation, 1.0)
	return clamp01(consistency * matchedRatio * boost)
}

// MedianCents returns the median of a set of signed amounts in minor units.
// The median is robust against one-off fee anomalies that would skew a mean.
// For an even count the two middle values are averaged.
func MedianCents(amounts []int64) int64 {
	if len(amounts) == 0 {
		return 0
	}
	sorted := make([]int64, len(amounts))
	copy(sorted, amounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// RelativeAmountVariance is the population standard deviation of the amounts
// divided by the absolute mean: 0 means identical amounts, and a merchant
// whose charges drift a few percent scores a few hundredths. Returns 0 for
// fewer than two amounts or a zero mean.
func RelativeAmountVariance(amounts []int64) float64 {
	if len(amounts) < 2 {
		return 0
	}
	var sum float64
	for _, a := range amounts {
		sum += float64(a)
	}
	mean := sum / float64(len(amounts))
	if mean == 0 {
		return 0
	}

	var sumSqDev float64
	for _, a := range amounts {
		d := float64(a) - mean
		sumSqDev += d * d
	}
	stdDev := math.Sqrt(sumSqDev / float64(len(amounts)))
	return stdDev / math.Abs(mean)
}
