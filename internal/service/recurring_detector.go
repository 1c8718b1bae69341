package service

import (
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hausbuch/backend/internal/model"
)

// lookbackMonths bounds the transaction history a detection run considers.
const lookbackMonths = 36

// minAccountTransactions is the global minimum number of usable transactions
// an account needs before detection is attempted at all.
const minAccountTransactions = 3

// minOccurrences is the per-frequency minimum occurrence count. Short periods
// accumulate occurrences fast, so they demand more evidence; three yearly
// occurrences already span the whole lookback window.
var minOccurrences = map[model.Frequency]int{
	model.FrequencyWeekly:    5,
	model.FrequencyBiweekly:  4,
	model.FrequencyMonthly:   3,
	model.FrequencyQuarterly: 3,
	model.FrequencyYearly:    3,
}

// merchantGroup collects one account's transactions for a single merchant key
// and direction, the unit recurrence detection operates on.
type merchantGroup struct {
	merchantPattern string
	txType          model.TransactionType
	transactions    []*model.Transaction
}

// DetectRecurringPatterns analyzes an account's transaction history for
// recurring patterns. It is pure: no I/O, no clock reads; persistence fields
// (ID, CreatedAt, UpdatedAt) are left zero for the caller to fill.
//
// Debit and credit flows from the same counterparty are never merged: each
// (merchant key, type) group is evaluated independently against every
// candidate frequency and yields at most one pattern, the highest-confidence
// accepted candidate with ties going to the shorter period.
func DetectRecurringPatterns(accountID string, txns []*model.Transaction, now time.Time, log *logrus.Logger) []*model.RecurringTransaction {
	groups := groupByMerchant(accountID, txns, log)

	usable := 0
	for _, g := range groups {
		usable += len(g.transactions)
	}
	if usable < minAccountTransactions {
		return nil
	}

	var results []*model.RecurringTransaction
	for _, group := range groups {
		if rt := detectGroup(accountID, group, now); rt != nil {
			results = append(results, rt)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].ConfidenceScore != results[j].ConfidenceScore {
			return results[i].ConfidenceScore > results[j].ConfidenceScore
		}
		return results[i].MerchantPattern < results[j].MerchantPattern
	})
	return results
}

// groupByMerchant buckets transactions by (merchant key, type). Malformed
// rows (no date or zero amount) are skipped with a warning rather than
// aborting the whole run: one corrupt import row must not block detection
// for an entire account.
func groupByMerchant(accountID string, txns []*model.Transaction, log *logrus.Logger) map[string]*merchantGroup {
	groups := make(map[string]*merchantGroup)
	for _, tx := range txns {
		if tx.Date.IsZero() || tx.AmountCents == 0 {
			if log != nil {
				log.WithFields(logrus.Fields{
					"accountId":     accountID,
					"transactionId": tx.ID,
				}).Warn("skipping malformed transaction in recurrence detection")
			}
			continue
		}
		pattern := NormalizeMerchant(tx.Counterparty, tx.Description)
		if pattern == "" {
			continue
		}
		key := pattern + "|" + string(tx.Type)
		g, ok := groups[key]
		if !ok {
			g = &merchantGroup{merchantPattern: pattern, txType: tx.Type}
			groups[key] = g
		}
		g.transactions = append(g.transactions, tx)
	}
	return groups
}

// detectGroup evaluates every candidate frequency for one merchant group and
// returns the best accepted pattern, or nil when none qualifies.
func detectGroup(accountID string, group *merchantGroup, now time.Time) *model.RecurringTransaction {
	txns := group.transactions
	if len(txns) < 2 {
		return nil
	}

	sort.Slice(txns, func(i, j int) bool { return txns[i].Date.Before(txns[j].Date) })

	dates := make([]time.Time, len(txns))
	for i, tx := range txns {
		dates[i] = tx.Date
	}

	var best *IntervalStats
	var bestFreq model.Frequency
	var bestConfidence float64
	for _, freq := range model.Frequencies {
		stats := AnalyzeIntervals(dates, freq, now)
		if stats.OccurrenceCount < minOccurrences[freq] {
			continue
		}
		if !stats.RecentActivity {
			continue
		}
		confidence := ConfidenceScore(stats.IntervalConsistency, stats.MatchedRatio, stats.OccurrenceCount)
		if confidence < confidenceThreshold {
			continue
		}
		// Strictly greater: evaluation order runs shortest period first, so
		// a tie keeps the shorter period (more data points per unit time).
		if best == nil || confidence > bestConfidence {
			s := stats
			best = &s
			bestFreq = freq
			bestConfidence = confidence
		}
	}
	if best == nil {
		return nil
	}

	var amounts []int64
	var lastMatched time.Time
	for i, tx := range txns {
		if best.Matched[i] {
			amounts = append(amounts, tx.AmountCents)
			lastMatched = tx.Date
		}
	}

	return &model.RecurringTransaction{
		AccountID:            accountID,
		MerchantPattern:      group.merchantPattern,
		DisplayName:          displayName(txns),
		PredictedAmountCents: MedianCents(amounts),
		AmountVariance:       RelativeAmountVariance(amounts),
		Frequency:            bestFreq,
		ConfidenceScore:      bestConfidence,
		IntervalConsistency:  best.IntervalConsistency,
		OccurrenceCount:      best.OccurrenceCount,
		LastOccurrence:       lastMatched,
		NextExpected:         bestFreq.Next(lastMatched),
		IsActive:             true,
		Type:                 group.txType,
	}
}

// displayName derives a human-friendly label from the most recent
// transaction, preferring the free-text description over a bare IBAN.
func displayName(txns []*model.Transaction) string {
	latest := txns[len(txns)-1]
	if d := strings.TrimSpace(latest.Description); d != "" {
		return d
	}
	return strings.TrimSpace(latest.Counterparty)
}
