package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hausbuch/backend/internal/model"
	"github.com/hausbuch/backend/internal/store"
)

// baselineMonths is the trailing window used to estimate non-recurring
// spending and income.
const baselineMonths = 3

// ForecastMonth is the projection for one future calendar month.
type ForecastMonth struct {
	Month                 string `json:"month"`
	RecurringDebitCents   int64  `json:"recurringDebitCents"`
	RecurringCreditCents  int64  `json:"recurringCreditCents"`
	BaselineNetCents      int64  `json:"baselineNetCents"`
	ProjectedNetCents     int64  `json:"projectedNetCents"`
	ProjectedBalanceCents int64  `json:"projectedBalanceCents"`
}

// ForecastService projects monthly cashflow from active recurring patterns
// plus a trailing average of non-recurring actuals. It only reads what the
// detector keeps current: predicted amount, next expected date and frequency.
type ForecastService struct {
	store store.Store
	now   func() time.Time
}

// NewForecastService creates a ForecastService backed by the given store.
func NewForecastService(st store.Store) *ForecastService {
	return &ForecastService{store: st, now: time.Now}
}

// MonthlyForecast projects the next `months` calendar months, starting with
// the month after the current one. Recurring occurrences are scheduled from
// each pattern's next expected date; everything else is carried forward as
// the average monthly net of recent transactions not attributable to an
// active pattern.
func (s *ForecastService) MonthlyForecast(ctx context.Context, accountID string, months int, openingBalanceCents int64) ([]*ForecastMonth, error) {
	now := s.now()

	patterns, err := s.store.ListRecurringTransactions(ctx, accountID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring transactions: %w", err)
	}

	baselineNet, err := s.baselineNetCents(ctx, accountID, patterns, now)
	if err != nil {
		return nil, err
	}

	horizon := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months+1, 0)

	// Bucket projected recurring occurrences by calendar month.
	debitByMonth := make(map[string]decimal.Decimal)
	creditByMonth := make(map[string]decimal.Decimal)
	for _, rt := range patterns {
		date := rt.NextExpected
		for i := 0; i < maxProjectedOccurrences && date.Before(horizon); i++ {
			key := date.Format("2006-01")
			amount := decimal.NewFromInt(rt.PredictedAmountCents).Abs()
			if rt.Type == model.TransactionTypeDebit {
				debitByMonth[key] = debitByMonth[key].Add(amount)
			} else {
				creditByMonth[key] = creditByMonth[key].Add(amount)
			}
			date = rt.Frequency.Next(date)
		}
	}

	balance := decimal.NewFromInt(openingBalanceCents)
	result := make([]*ForecastMonth, 0, months)
	for i := 1; i <= months; i++ {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)
		key := monthStart.Format("2006-01")

		debit := debitByMonth[key]
		credit := creditByMonth[key]
		net := credit.Sub(debit).Add(baselineNet)
		balance = balance.Add(net)

		result = append(result, &ForecastMonth{
			Month:                 key,
			RecurringDebitCents:   debit.Round(0).IntPart(),
			RecurringCreditCents:  credit.Round(0).IntPart(),
			BaselineNetCents:      baselineNet.Round(0).IntPart(),
			ProjectedNetCents:     net.Round(0).IntPart(),
			ProjectedBalanceCents: balance.Round(0).IntPart(),
		})
	}
	return result, nil
}

// baselineNetCents averages the monthly net of recent transactions that do
// not belong to any active recurring pattern, so the recurring portion is
// not double counted.
func (s *ForecastService) baselineNetCents(ctx context.Context, accountID string, patterns []*model.RecurringTransaction, now time.Time) (decimal.Decimal, error) {
	since := now.AddDate(0, -baselineMonths, 0)
	txns, err := s.store.ListTransactionsForAccount(ctx, accountID, since)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load recent transactions: %w", err)
	}

	recurringKeys := make(map[string]bool, len(patterns))
	for _, rt := range patterns {
		recurringKeys[rt.Key()] = true
	}

	net := decimal.Zero
	for _, tx := range txns {
		key := NormalizeMerchant(tx.Counterparty, tx.Description) + "|" + string(tx.Type)
		if recurringKeys[key] {
			continue
		}
		net = net.Add(decimal.NewFromInt(tx.AmountCents))
	}
	return net.Div(decimal.NewFromInt(baselineMonths)), nil
}
