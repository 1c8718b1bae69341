package service

import (
	"math"
	"time"

	"github.com/hausbuch/backend/internal/model"
)

// frequencyBand is the acceptance window, in days, around a candidate
// frequency's nominal period. An interval inside the band is in-pattern; an
// interval near an integer multiple of the period is a gap (skipped
// occurrences); anything else is a mismatch.
type frequencyBand struct {
	min, max float64
}

var frequencyBands = map[model.Frequency]frequencyBand{
	model.FrequencyWeekly:    {5, 9},
	model.FrequencyBiweekly:  {12, 16},
	model.FrequencyMonthly:   {27, 34},
	model.FrequencyQuarterly: {80, 100},
	model.FrequencyYearly:    {330, 400},
}

// maxGapMultiple bounds how many consecutive skipped occurrences an interval
// may represent before it is treated as a pattern break.
const maxGapMultiple = 6

// recencyWindowMonths is how far back the most recent occurrence may lie for
// a pattern to still be considered current.
const recencyWindowMonths = 12

// minConsistencyFloor is the conservative consistency assigned when fewer
// than two in-pattern intervals exist, instead of an undefined value.
const minConsistencyFloor = 0.30

// IntervalStats summarizes how well a chronologically sorted date series fits
// one candidate frequency.
type IntervalStats struct {
	// OccurrenceCount is the number of dates participating in at least one
	// in-pattern or gap interval. Occurrences on either side of a gap still
	// count; isolated mismatched dates do not.
	OccurrenceCount int
	// AverageIntervalDays is the mean of the in-pattern intervals.
	AverageIntervalDays float64
	// IntervalConsistency is 1 when every in-pattern interval equals the
	// nominal period exactly, decaying to 0 at the edge of the band.
	IntervalConsistency float64
	// MatchedRatio is the share of intervals classified in-pattern or gap.
	MatchedRatio float64
	// RecentActivity is true when the latest date falls within the trailing
	// recency window.
	RecentActivity bool
	// Matched flags, index-aligned with the input dates, mark which
	// occurrences back the pattern. Amount statistics are computed over
	// matched occurrences only.
	Matched []bool
}

// AnalyzeIntervals evaluates a sorted date series against one candidate
// frequency. Gap intervals are excluded from the consistency calculation but
// their endpoints still count as occurrences, so a subscription with a few
// missed months keeps its occurrence history without collapsing confidence.
func AnalyzeIntervals(dates []time.Time, freq model.Frequency, now time.Time) IntervalStats {
	stats := IntervalStats{Matched: make([]bool, len(dates))}
	if len(dates) == 0 {
		return stats
	}

	cutoff := now.AddDate(0, -recencyWindowMonths, 0)
	stats.RecentActivity = dates[len(dates)-1].After(cutoff)

	if len(dates) == 1 {
		stats.OccurrenceCount = 1
		stats.Matched[0] = true
		stats.IntervalConsistency = minConsistencyFloor
		return stats
	}

	band := frequencyBands[freq]
	period := freq.PeriodDays()
	halfBand := (band.max - band.min) / 2

	var inPattern []float64
	matchedIntervals := 0
	totalIntervals := 0
	for i := 1; i < len(dates); i++ {
		days := dates[i].Sub(dates[i-1]).Hours() / 24
		if days <= 0 {
			// Same-day duplicates carry no interval information.
			continue
		}
		totalIntervals++
		switch classifyInterval(days, period, band, halfBand) {
		case intervalInPattern:
			inPattern = append(inPattern, days)
			stats.Matched[i-1] = true
			stats.Matched[i] = true
			matchedIntervals++
		case intervalGap:
			stats.Matched[i-1] = true
			stats.Matched[i] = true
			matchedIntervals++
		}
	}

	for _, m := range stats.Matched {
		if m {
			stats.OccurrenceCount++
		}
	}
	if totalIntervals > 0 {
		stats.MatchedRatio = float64(matchedIntervals) / float64(totalIntervals)
	}

	if len(inPattern) < 2 {
		stats.IntervalConsistency = minConsistencyFloor
		if len(inPattern) == 1 {
			stats.AverageIntervalDays = inPattern[0]
		}
		return stats
	}

	var sum, sumSqDev float64
	for _, d := range inPattern {
		sum += d
		rel := (d - period) / period
		sumSqDev += rel * rel
	}
	stats.AverageIntervalDays = sum / float64(len(inPattern))

	// Normalize the RMS relative deviation by the band half-width so that
	// consistency is exactly 1 at the nominal period and reaches 0 at the
	// edge of the acceptance band.
	rmsRelDev := math.Sqrt(sumSqDev / float64(len(inPattern)))
	maxRelDev := halfBand / period
	stats.IntervalConsistency = clamp01(1 - rmsRelDev/maxRelDev)

	return stats
}

type intervalClass int

const (
	intervalMismatch intervalClass = iota
	intervalInPattern
	intervalGap
)

func classifyInterval(days, period float64, band frequencyBand, halfBand float64) intervalClass {
	if days >= band.min && days <= band.max {
		return intervalInPattern
	}
	for k := 2.0; k <= maxGapMultiple; k++ {
		if math.Abs(days-k*period) <= halfBand {
			return intervalGap
		}
	}
	return intervalMismatch
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
