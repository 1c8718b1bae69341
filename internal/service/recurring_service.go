package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/hausbuch/backend/internal/model"
	"github.com/hausbuch/backend/internal/store"
)

// RecurringService owns detection orchestration and the read paths over
// persisted recurring transactions.
type RecurringService struct {
	store store.Store
	locks *accountLocks
	log   *logrus.Logger
	now   func() time.Time
}

// NewRecurringService creates a RecurringService backed by the given store.
func NewRecurringService(st store.Store, log *logrus.Logger) *RecurringService {
	return &RecurringService{
		store: st,
		locks: newAccountLocks(),
		log:   log,
		now:   time.Now,
	}
}

// DetectForAccount runs recurrence detection over the account's bounded
// transaction history and persists the result.
//
// Default mode merges: candidates matching an existing pattern by (account,
// merchant key, type) update its statistics in place while preserving the
// user-set display name, category and active flag. Force mode deletes every
// existing pattern for the account first and inserts the fresh detection,
// discarding user overrides; the store performs delete+insert atomically.
//
// "No patterns found" is an empty result, never an error.
func (s *RecurringService) DetectForAccount(ctx context.Context, accountID string, force bool) ([]*model.RecurringTransaction, error) {
	unlock := s.locks.Lock(accountID)
	defer unlock()

	now := s.now()
	since := now.AddDate(0, -lookbackMonths, 0)

	txns, err := s.store.ListTransactionsForAccount(ctx, accountID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction history: %w", err)
	}

	candidates := DetectRecurringPatterns(accountID, txns, now, s.log)

	if force {
		for _, rt := range candidates {
			rt.ID = uuid.New().String()
			rt.CreatedAt = now
			rt.UpdatedAt = now
		}
		if err := s.store.SaveRecurringTransactions(ctx, accountID, candidates, true); err != nil {
			return nil, fmt.Errorf("failed to persist detection run: %w", err)
		}
		return candidates, nil
	}

	existing, err := s.store.ListRecurringTransactions(ctx, accountID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing patterns: %w", err)
	}
	existingByKey := make(map[string]*model.RecurringTransaction, len(existing))
	for _, rt := range existing {
		existingByKey[rt.Key()] = rt
	}

	for _, rt := range candidates {
		if prev, ok := existingByKey[rt.Key()]; ok {
			// Refresh statistics, keep identity and user overrides. A
			// deactivated pattern stays deactivated: detection must not
			// silently resurrect a user's soft delete.
			rt.ID = prev.ID
			rt.CreatedAt = prev.CreatedAt
			rt.DisplayName = prev.DisplayName
			rt.CategoryID = prev.CategoryID
			rt.IsActive = prev.IsActive
		} else {
			rt.ID = uuid.New().String()
			rt.CreatedAt = now
		}
		rt.UpdatedAt = now
	}

	if len(candidates) > 0 {
		if err := s.store.SaveRecurringTransactions(ctx, accountID, candidates, false); err != nil {
			return nil, fmt.Errorf("failed to persist detection run: %w", err)
		}
	}
	return candidates, nil
}

// DetectionRunSummary reports a detection sweep across all accounts.
type DetectionRunSummary struct {
	AccountsProcessed int `json:"accountsProcessed"`
	PatternsDetected  int `json:"patternsDetected"`
	ErrorCount        int `json:"errorCount"`
}

// DetectAllAccounts runs detection for every account that has transactions.
// It is designed to be called by a scheduler without user interaction; a
// failure on one account is logged and counted, not propagated, so a single
// bad account cannot starve the rest of the sweep.
func (s *RecurringService) DetectAllAccounts(ctx context.Context, force bool) (*DetectionRunSummary, error) {
	accountIDs, err := s.store.ListAccountIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	summary := &DetectionRunSummary{}
	for _, accountID := range accountIDs {
		detected, err := s.DetectForAccount(ctx, accountID, force)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"accountId": accountID,
			}).WithError(err).Error("detection failed for account")
			summary.ErrorCount++
			continue
		}
		summary.AccountsProcessed++
		summary.PatternsDetected += len(detected)
	}

	s.log.WithFields(logrus.Fields{
		"accounts": summary.AccountsProcessed,
		"patterns": summary.PatternsDetected,
		"errors":   summary.ErrorCount,
	}).Info("detection sweep completed")
	return summary, nil
}

// ListForAccount returns the account's recurring transactions, optionally
// filtered by frequency and active state.
func (s *RecurringService) ListForAccount(ctx context.Context, accountID string, freq *model.Frequency, activeOnly bool) ([]*model.RecurringTransaction, error) {
	records, err := s.store.ListRecurringTransactions(ctx, accountID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring transactions: %w", err)
	}
	if freq == nil {
		return records, nil
	}
	filtered := records[:0]
	for _, rt := range records {
		if rt.Frequency == *freq {
			filtered = append(filtered, rt)
		}
	}
	return filtered, nil
}

// RecurringSummary aggregates an account's recurring transactions.
type RecurringSummary struct {
	TotalCount         int   `json:"totalCount"`
	ActiveCount        int   `json:"activeCount"`
	MonthlyDebitCents  int64 `json:"monthlyDebitCents"`
	MonthlyCreditCents int64 `json:"monthlyCreditCents"`
}

// Summary normalizes each active pattern's predicted amount to a monthly
// figure (a weekly pattern contributes ~4.35 occurrences per month) and
// totals debits and credits separately as positive magnitudes.
func (s *RecurringService) Summary(ctx context.Context, accountID string) (*RecurringSummary, error) {
	records, err := s.store.ListRecurringTransactions(ctx, accountID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring transactions: %w", err)
	}

	summary := &RecurringSummary{TotalCount: len(records)}
	monthDays := decimal.NewFromFloat(model.FrequencyMonthly.PeriodDays())
	debit := decimal.Zero
	credit := decimal.Zero
	for _, rt := range records {
		if !rt.IsActive {
			continue
		}
		summary.ActiveCount++
		monthly := decimal.NewFromInt(rt.PredictedAmountCents).
			Mul(monthDays).
			Div(decimal.NewFromFloat(rt.Frequency.PeriodDays())).
			Abs()
		if rt.Type == model.TransactionTypeDebit {
			debit = debit.Add(monthly)
		} else {
			credit = credit.Add(monthly)
		}
	}
	summary.MonthlyDebitCents = debit.Round(0).IntPart()
	summary.MonthlyCreditCents = credit.Round(0).IntPart()
	return summary, nil
}

// UpcomingOccurrence is one projected charge or deposit within the horizon.
type UpcomingOccurrence struct {
	Date                   time.Time             `json:"date"`
	RecurringTransactionID string                `json:"recurringTransactionId"`
	DisplayName            string                `json:"displayName"`
	AmountCents            int64                 `json:"amountCents"`
	Frequency              model.Frequency       `json:"frequency"`
	Type                   model.TransactionType `json:"type"`
}

// maxProjectedOccurrences caps projection per pattern so a stale nextExpected
// far in the past cannot spin the loop.
const maxProjectedOccurrences = 120

// Upcoming projects occurrences of active patterns over the next `days`
// days, sorted by date. Overdue occurrences (expected but not yet seen) are
// included at their expected date.
func (s *RecurringService) Upcoming(ctx context.Context, accountID string, days int) ([]*UpcomingOccurrence, error) {
	records, err := s.store.ListRecurringTransactions(ctx, accountID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring transactions: %w", err)
	}

	horizon := s.now().AddDate(0, 0, days)
	var result []*UpcomingOccurrence
	for _, rt := range records {
		date := rt.NextExpected
		for i := 0; i < maxProjectedOccurrences && !date.After(horizon); i++ {
			result = append(result, &UpcomingOccurrence{
				Date:                   date,
				RecurringTransactionID: rt.ID,
				DisplayName:            rt.DisplayName,
				AmountCents:            rt.PredictedAmountCents,
				Frequency:              rt.Frequency,
				Type:                   rt.Type,
			})
			date = rt.Frequency.Next(date)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].DisplayName < result[j].DisplayName
	})
	return result, nil
}

// PatternOverrides carries the user-editable fields of a pattern. Nil fields
// are left unchanged.
type PatternOverrides struct {
	DisplayName *string
	CategoryID  *string
	IsActive    *bool
}

// UpdateOverrides applies user overrides to one pattern. Returns (nil, nil)
// when the pattern does not exist for the account.
func (s *RecurringService) UpdateOverrides(ctx context.Context, accountID, id string, overrides PatternOverrides) (*model.RecurringTransaction, error) {
	rt, err := s.store.GetRecurringTransaction(ctx, accountID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recurring transaction: %w", err)
	}
	if rt == nil {
		return nil, nil
	}

	if overrides.DisplayName != nil {
		rt.DisplayName = *overrides.DisplayName
	}
	if overrides.CategoryID != nil {
		rt.CategoryID = *overrides.CategoryID
	}
	if overrides.IsActive != nil {
		rt.IsActive = *overrides.IsActive
	}
	rt.UpdatedAt = s.now()

	if err := s.store.UpdateRecurringTransaction(ctx, rt); err != nil {
		return nil, fmt.Errorf("failed to update recurring transaction: %w", err)
	}
	return rt, nil
}
